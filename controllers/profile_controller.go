package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"iskra_server/models"
	"iskra_server/services"

	"github.com/gorilla/mux"
)

// ProfileController struct
type ProfileController struct {
	ProfileService *services.ProfileService
}

// NewProfileController initializes the profile controller
func NewProfileController(service *services.ProfileService) *ProfileController {
	return &ProfileController{ProfileService: service}
}

// HandleCreateProfile - Create a new profile
func (c *ProfileController) HandleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	created, err := c.ProfileService.CreateProfile(context.TODO(), profile)
	if err != nil {
		log.Printf("❌ Failed to create profile: %v", err)
		http.Error(w, `{"error": "Failed to create profile"}`, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// HandleGetProfile - Fetch a profile by id
func (c *ProfileController) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	profileID := mux.Vars(r)["profileId"]
	if profileID == "" {
		http.Error(w, `{"error": "profileId is required"}`, http.StatusBadRequest)
		return
	}

	profile, err := c.ProfileService.GetProfile(context.TODO(), profileID)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			http.Error(w, `{"error": "Profile not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"error": "Failed to fetch profile"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// HandleUpdateProfile - Update an existing profile
func (c *ProfileController) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	profile.ID = mux.Vars(r)["profileId"]

	updated, err := c.ProfileService.UpdateProfile(context.TODO(), profile)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			http.Error(w, `{"error": "Profile not found"}`, http.StatusNotFound)
			return
		}
		log.Printf("❌ Failed to update profile: %v", err)
		http.Error(w, `{"error": "Failed to update profile"}`, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// HandleDeleteProfile - Delete a profile
func (c *ProfileController) HandleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	profileID := mux.Vars(r)["profileId"]

	if err := c.ProfileService.DeleteProfile(context.TODO(), profileID); err != nil {
		http.Error(w, `{"error": "Failed to delete profile"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}

// HandleBrowseProfiles - List swipe-feed candidates for a user
func (c *ProfileController) HandleBrowseProfiles(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	profiles, err := c.ProfileService.BrowseProfiles(context.TODO(), userID)
	if err != nil {
		log.Printf("❌ Failed to browse profiles: %v", err)
		http.Error(w, `{"error": "Failed to browse profiles"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profiles)
}
