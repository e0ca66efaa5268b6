package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"iskra_server/services"
)

// S3Controller struct
type S3Controller struct {
	S3Service *services.S3Service
}

// NewS3Controller initializes the S3 controller
func NewS3Controller(service *services.S3Service) *S3Controller {
	return &S3Controller{S3Service: service}
}

// HandleGenerateUploadURL - Validate the upload and return a presigned PUT URL
func (c *S3Controller) HandleGenerateUploadURL(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID         string `json:"userId"`
		FileName       string `json:"fileName"`
		FileType       string `json:"fileType"`
		FileSize       int64  `json:"fileSize"`
		ExistingPhotos int    `json:"existingPhotos"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if request.UserID == "" || request.FileName == "" || request.FileType == "" {
		http.Error(w, `{"error": "Missing required fields: userId, fileName, or fileType"}`, http.StatusBadRequest)
		return
	}

	if err := services.ValidatePhotoUpload(request.FileType, request.FileSize, request.ExistingPhotos); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	url, key, err := c.S3Service.GenerateUploadURL(request.UserID, request.FileName, request.FileType)
	if err != nil {
		log.Printf("❌ Failed to presign upload: %v", err)
		http.Error(w, `{"error": "Failed to generate upload URL"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"uploadUrl": url, "key": key})
}

// HandleGenerateReadURL - Return a presigned GET URL for a stored photo
func (c *S3Controller) HandleGenerateReadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, `{"error": "key is required"}`, http.StatusBadRequest)
		return
	}

	url, err := c.S3Service.GenerateReadURL(key)
	if err != nil {
		log.Printf("❌ Failed to presign read: %v", err)
		http.Error(w, `{"error": "Failed to generate read URL"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"readUrl": url})
}
