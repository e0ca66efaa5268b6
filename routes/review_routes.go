package routes

import (
	"iskra_server/controllers"
	"iskra_server/services"

	"github.com/gorilla/mux"
)

// RegisterReviewRoutes sets up routes for honesty reviews under /api/reviews
func RegisterReviewRoutes(r *mux.Router, reviewService *services.ReviewService, store *services.DynamoReviewStore) {
	controller := controllers.NewReviewController(reviewService, store)

	reviewRouter := r.PathPrefix("/api/reviews").Subrouter()

	reviewRouter.HandleFunc("", controller.HandleSubmitReview).Methods("POST")
	reviewRouter.HandleFunc("", controller.HandleGetReviews).Methods("GET")
}
