package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"iskra_server/services"
)

// AdminBotController struct
type AdminBotController struct {
	BotAdminService *services.BotAdminService
	Responder       *services.BotResponderService
}

// NewAdminBotController initializes the admin bot controller
func NewAdminBotController(admin *services.BotAdminService, responder *services.BotResponderService) *AdminBotController {
	return &AdminBotController{BotAdminService: admin, Responder: responder}
}

// HandleCreateBots - Create a batch of bot profiles
func (c *AdminBotController) HandleCreateBots(w http.ResponseWriter, r *http.Request) {
	count := services.DefaultBotBatchSize
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, `{"error": "count must be a positive integer"}`, http.StatusBadRequest)
			return
		}
		count = parsed
	}

	bots, err := c.BotAdminService.CreateBots(r.Context(), count)
	if err != nil {
		log.Printf("❌ Failed to create bots: %v", err)
		http.Error(w, `{"error": "Failed to create bots"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"created": len(bots),
		"bots":    bots,
	})
}

// HandleListBots - List all bot profiles
func (c *AdminBotController) HandleListBots(w http.ResponseWriter, r *http.Request) {
	bots, err := c.BotAdminService.ListBots(r.Context())
	if err != nil {
		log.Printf("❌ Failed to list bots: %v", err)
		http.Error(w, `{"error": "Failed to list bots"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"count": len(bots),
		"bots":  bots,
	})
}

// HandleUpdateBotPhotos - Generate and attach an avatar for every bot
func (c *AdminBotController) HandleUpdateBotPhotos(w http.ResponseWriter, r *http.Request) {
	summary, err := c.BotAdminService.UpdateBotPhotos(r.Context())
	if err != nil {
		log.Printf("❌ Failed to update bot photos: %v", err)
		http.Error(w, `{"error": "Failed to update bot photos"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// HandleCleanupBots - Trim the bot pool down to the curated name sets
func (c *AdminBotController) HandleCleanupBots(w http.ResponseWriter, r *http.Request) {
	kept, deleted, err := c.BotAdminService.CleanupBots(r.Context())
	if err != nil {
		log.Printf("❌ Failed to clean up bots: %v", err)
		http.Error(w, `{"error": "Failed to clean up bots"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"kept": kept, "deleted": deleted})
}

// HandleDeleteBotUsers - Remove all bot profiles
func (c *AdminBotController) HandleDeleteBotUsers(w http.ResponseWriter, r *http.Request) {
	deleted, err := c.BotAdminService.DeleteBotUsers(r.Context())
	if err != nil {
		log.Printf("❌ Failed to delete bot users: %v", err)
		http.Error(w, `{"error": "Failed to delete bot users"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"deleted": deleted})
}

// HandleRunResponder - Run one bot responder pass: answer due replies, schedule new ones
func (c *AdminBotController) HandleRunResponder(w http.ResponseWriter, r *http.Request) {
	if c.Responder == nil {
		http.Error(w, `{"error": "OPENAI_API_KEY is not configured"}`, http.StatusInternalServerError)
		return
	}

	summary, err := c.Responder.RunPass(r.Context())
	if err != nil {
		log.Printf("❌ Responder pass failed: %v", err)
		http.Error(w, `{"error": "Responder pass failed"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}
