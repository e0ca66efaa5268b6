package routes

import (
	"iskra_server/controllers"
	"iskra_server/services"

	"github.com/gorilla/mux"
)

// RegisterActionRoutes sets up routes for like/dislike operations under /api/action
func RegisterActionRoutes(r *mux.Router, actionService *services.ActionService) {
	controller := controllers.NewActionController(actionService)

	actionRouter := r.PathPrefix("/api/action").Subrouter()

	actionRouter.HandleFunc("/action", controller.HandleAction).Methods("POST")
}
