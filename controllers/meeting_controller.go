package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"iskra_server/services"
)

// MeetingController struct
type MeetingController struct {
	MeetingService *services.MeetingService
}

// NewMeetingController initializes the meeting controller
func NewMeetingController(service *services.MeetingService) *MeetingController {
	return &MeetingController{MeetingService: service}
}

type meetingRequest struct {
	ConversationID string `json:"conversationId"`
	UserID         string `json:"userId"`
}

func decodeMeetingRequest(w http.ResponseWriter, r *http.Request) (meetingRequest, bool) {
	var request meetingRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return request, false
	}
	if request.ConversationID == "" || request.UserID == "" {
		http.Error(w, `{"error": "Missing required fields: conversationId or userId"}`, http.StatusBadRequest)
		return request, false
	}
	return request, true
}

// HandleRequestMeeting - One side requests a meeting; both requests confirm it
func (c *MeetingController) HandleRequestMeeting(w http.ResponseWriter, r *http.Request) {
	request, ok := decodeMeetingRequest(w, r)
	if !ok {
		return
	}

	conversation, err := c.MeetingService.RequestMeeting(context.TODO(), request.ConversationID, request.UserID)
	if err != nil {
		if errors.Is(err, services.ErrNotParticipant) {
			http.Error(w, `{"error": "User is not a participant of this conversation"}`, http.StatusForbidden)
			return
		}
		log.Printf("❌ Failed to request meeting: %v", err)
		http.Error(w, `{"error": "Failed to request meeting"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(conversation)
}

// HandleMarkReady - Flag the conversation as ready for a meeting
func (c *MeetingController) HandleMarkReady(w http.ResponseWriter, r *http.Request) {
	request, ok := decodeMeetingRequest(w, r)
	if !ok {
		return
	}

	conversation, err := c.MeetingService.MarkReadyForMeeting(context.TODO(), request.ConversationID, request.UserID)
	if err != nil {
		if errors.Is(err, services.ErrNotParticipant) {
			http.Error(w, `{"error": "User is not a participant of this conversation"}`, http.StatusForbidden)
			return
		}
		http.Error(w, `{"error": "Failed to update conversation"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(conversation)
}

// HandleConfirmMeeting - One side confirms the meeting actually happened
func (c *MeetingController) HandleConfirmMeeting(w http.ResponseWriter, r *http.Request) {
	request, ok := decodeMeetingRequest(w, r)
	if !ok {
		return
	}

	meeting, err := c.MeetingService.ConfirmMeetingHappened(context.TODO(), request.ConversationID, request.UserID)
	if err != nil {
		if errors.Is(err, services.ErrNotParticipant) {
			http.Error(w, `{"error": "User is not a participant of this conversation"}`, http.StatusForbidden)
			return
		}
		log.Printf("❌ Failed to confirm meeting: %v", err)
		http.Error(w, `{"error": "Failed to confirm meeting"}`, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(meeting)
}
