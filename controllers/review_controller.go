package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"iskra_server/models"
	"iskra_server/services"
)

// ReviewController struct
type ReviewController struct {
	ReviewService *services.ReviewService
	Store         *services.DynamoReviewStore
}

// NewReviewController initializes the review controller
func NewReviewController(service *services.ReviewService, store *services.DynamoReviewStore) *ReviewController {
	return &ReviewController{ReviewService: service, Store: store}
}

// HandleSubmitReview - Store a post-meeting honesty review
func (c *ReviewController) HandleSubmitReview(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ConversationID string `json:"conversationId"`
		ReviewerID     string `json:"reviewerId"`
		Rating         int    `json:"rating"`
		Comment        string `json:"comment"`
		Like           bool   `json:"like"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	review := models.Review{
		ConversationID: request.ConversationID,
		ReviewerID:     request.ReviewerID,
		Rating:         request.Rating,
		Comment:        request.Comment,
	}

	stored, err := c.ReviewService.SubmitReview(context.TODO(), review, request.Like)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReviewExists):
			http.Error(w, `{"error": "Review already submitted for this conversation"}`, http.StatusConflict)
		case errors.Is(err, services.ErrMeetingNotConfirmed):
			http.Error(w, `{"error": "Meeting is not confirmed yet"}`, http.StatusForbidden)
		case errors.Is(err, services.ErrNotParticipant):
			http.Error(w, `{"error": "User is not a participant of this conversation"}`, http.StatusForbidden)
		default:
			log.Printf("❌ Failed to submit review: %v", err)
			http.Error(w, `{"error": "Failed to submit review"}`, http.StatusBadRequest)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(stored)
}

// HandleGetReviews - List reviews left about a profile
func (c *ReviewController) HandleGetReviews(w http.ResponseWriter, r *http.Request) {
	profileID := r.URL.Query().Get("profileId")
	if profileID == "" {
		http.Error(w, `{"error": "profileId is required"}`, http.StatusBadRequest)
		return
	}

	reviews, err := c.Store.ListReviewsForProfile(context.TODO(), profileID)
	if err != nil {
		log.Printf("❌ Error fetching reviews: %v", err)
		http.Error(w, `{"error": "Failed to fetch reviews"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reviews)
}
