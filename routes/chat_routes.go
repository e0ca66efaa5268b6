package routes

import (
	"iskra_server/controllers"
	"iskra_server/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up routes for chat operations under /api/chat
func RegisterChatRoutes(r *mux.Router, chatService *services.ChatService) {
	controller := controllers.NewChatController(chatService)

	chatRouter := r.PathPrefix("/api/chat").Subrouter()

	chatRouter.HandleFunc("/messages", controller.HandleGetMessages).Methods("GET")
	chatRouter.HandleFunc("/sendMessage", controller.HandleSendMessage).Methods("POST")
	chatRouter.HandleFunc("/markAsRead", controller.HandleMarkMessagesAsRead).Methods("POST")
	chatRouter.HandleFunc("/typing", controller.HandleSetTyping).Methods("POST")
	chatRouter.HandleFunc("/conversations", controller.HandleGetConversations).Methods("GET")
}
