package routes

import (
	"iskra_server/controllers"
	"iskra_server/services"

	"github.com/gorilla/mux"
)

// RegisterAdminBotRoutes sets up routes for bot administration under /api/admin/bots
func RegisterAdminBotRoutes(r *mux.Router, admin *services.BotAdminService, responder *services.BotResponderService) {
	controller := controllers.NewAdminBotController(admin, responder)

	adminRouter := r.PathPrefix("/api/admin/bots").Subrouter()

	adminRouter.HandleFunc("/create", controller.HandleCreateBots).Methods("POST")
	adminRouter.HandleFunc("/list", controller.HandleListBots).Methods("GET")
	adminRouter.HandleFunc("/updatePhotos", controller.HandleUpdateBotPhotos).Methods("POST")
	adminRouter.HandleFunc("/cleanup", controller.HandleCleanupBots).Methods("POST")
	adminRouter.HandleFunc("/deleteAll", controller.HandleDeleteBotUsers).Methods("POST")
	adminRouter.HandleFunc("/respond", controller.HandleRunResponder).Methods("POST")
}
