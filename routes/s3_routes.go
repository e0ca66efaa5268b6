package routes

import (
	"iskra_server/controllers"
	"iskra_server/services"

	"github.com/gorilla/mux"
)

// RegisterS3Routes sets up routes for photo storage under /api/s3
func RegisterS3Routes(r *mux.Router, s3Service *services.S3Service) {
	controller := controllers.NewS3Controller(s3Service)

	s3Router := r.PathPrefix("/api/s3").Subrouter()

	s3Router.HandleFunc("/uploadUrl", controller.HandleGenerateUploadURL).Methods("POST")
	s3Router.HandleFunc("/readUrl", controller.HandleGenerateReadURL).Methods("GET")
}
