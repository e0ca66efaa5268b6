package routes

import (
	"iskra_server/controllers"
	"iskra_server/services"

	"github.com/gorilla/mux"
)

// RegisterProfileRoutes sets up routes for profile operations under /api/profiles
func RegisterProfileRoutes(r *mux.Router, profileService *services.ProfileService) {
	controller := controllers.NewProfileController(profileService)

	profileRouter := r.PathPrefix("/api/profiles").Subrouter()

	profileRouter.HandleFunc("", controller.HandleCreateProfile).Methods("POST")
	profileRouter.HandleFunc("/browse", controller.HandleBrowseProfiles).Methods("GET")
	profileRouter.HandleFunc("/{profileId}", controller.HandleGetProfile).Methods("GET")
	profileRouter.HandleFunc("/{profileId}", controller.HandleUpdateProfile).Methods("PUT")
	profileRouter.HandleFunc("/{profileId}", controller.HandleDeleteProfile).Methods("DELETE")
}
