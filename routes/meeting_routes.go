package routes

import (
	"iskra_server/controllers"
	"iskra_server/services"

	"github.com/gorilla/mux"
)

// RegisterMeetingRoutes sets up routes for the meeting workflow under /api/meeting
func RegisterMeetingRoutes(r *mux.Router, meetingService *services.MeetingService) {
	controller := controllers.NewMeetingController(meetingService)

	meetingRouter := r.PathPrefix("/api/meeting").Subrouter()

	meetingRouter.HandleFunc("/request", controller.HandleRequestMeeting).Methods("POST")
	meetingRouter.HandleFunc("/ready", controller.HandleMarkReady).Methods("POST")
	meetingRouter.HandleFunc("/confirm", controller.HandleConfirmMeeting).Methods("POST")
}
