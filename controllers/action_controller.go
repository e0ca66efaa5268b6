package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"iskra_server/services"
)

// ActionController struct
type ActionController struct {
	ActionService *services.ActionService
}

// NewActionController initializes the action controller
func NewActionController(service *services.ActionService) *ActionController {
	return &ActionController{ActionService: service}
}

// HandleAction - Record a like or dislike swipe
func (c *ActionController) HandleAction(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID   string `json:"userId"`
		TargetID string `json:"targetId"`
		Action   string `json:"action"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if request.UserID == "" || request.TargetID == "" || request.Action == "" {
		http.Error(w, `{"error": "Missing required fields: userId, targetId, or action"}`, http.StatusBadRequest)
		return
	}

	result, err := c.ActionService.RegisterAction(context.TODO(), request.UserID, request.TargetID, request.Action)
	if err != nil {
		log.Printf("❌ Failed to register action: %v", err)
		http.Error(w, `{"error": "Failed to register action"}`, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
