package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/hszk-dev/ytapi/internal/domain/model"
	"github.com/hszk-dev/ytapi/internal/usecase"
)

const defaultListLimit = 100

// StorageRequest is the request body for transcript storage endpoints.
// Language applies to get/delete; Languages is the save-time preference list.
type StorageRequest struct {
	URL       string   `json:"url"`
	Language  string   `json:"language,omitempty"`
	Languages []string `json:"languages,omitempty"`
}

type StorageMutationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	VideoID string `json:"video_id,omitempty"`
}

type StoredTranscriptResponse struct {
	VideoID    string               `json:"video_id"`
	Transcript string               `json:"transcript"`
	Language   string               `json:"language,omitempty"`
	Metadata   *model.VideoMetadata `json:"metadata,omitempty"`
}

type StorageListResponse struct {
	Videos []*model.VideoMetadata `json:"videos"`
	Count  int                    `json:"count"`
}

// StorageHandler handles transcript storage HTTP requests.
type StorageHandler struct {
	svc usecase.StorageService
}

// NewStorageHandler creates a new StorageHandler.
func NewStorageHandler(svc usecase.StorageService) *StorageHandler {
	return &StorageHandler{svc: svc}
}

// Save handles POST /v1/transcripts/save
func (h *StorageHandler) Save(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeStorageRequest(w, r)
	if !ok {
		return
	}

	id, err := h.svc.SaveTranscript(r.Context(), req.URL, req.Languages)
	if err != nil {
		// Storage-disabled saves report failure in the body rather than a
		// hard error, mirroring the soft-failure policy of the layer.
		if errors.Is(err, usecase.ErrStorageDisabled) {
			JSON(w, http.StatusOK, StorageMutationResponse{
				Success: false,
				Message: "Storage is not enabled. Set REDIS_URL to enable it.",
				VideoID: id.String(),
			})
			return
		}
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, StorageMutationResponse{
		Success: true,
		Message: "Transcript saved successfully",
		VideoID: id.String(),
	})
}

// Get handles POST /v1/transcripts/get
func (h *StorageHandler) Get(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeStorageRequest(w, r)
	if !ok {
		return
	}

	stored, err := h.svc.GetStored(r.Context(), req.URL, req.Language)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, StoredTranscriptResponse{
		VideoID:    stored.VideoID.String(),
		Transcript: stored.Transcript,
		Language:   stored.Language,
		Metadata:   stored.Metadata,
	})
}

// List handles GET /v1/transcripts
func (h *StorageHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			Error(w, http.StatusBadRequest, "invalid_limit", "Limit must be a positive integer")
			return
		}
		limit = parsed
	}

	videos, err := h.svc.ListStored(r.Context(), limit)
	if err != nil {
		if errors.Is(err, usecase.ErrStorageDisabled) {
			JSON(w, http.StatusOK, StorageListResponse{Videos: []*model.VideoMetadata{}, Count: 0})
			return
		}
		handleServiceError(w, err)
		return
	}
	if videos == nil {
		videos = []*model.VideoMetadata{}
	}

	JSON(w, http.StatusOK, StorageListResponse{Videos: videos, Count: len(videos)})
}

// Delete handles POST /v1/transcripts/delete
func (h *StorageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeStorageRequest(w, r)
	if !ok {
		return
	}

	id, err := h.svc.DeleteStored(r.Context(), req.URL, req.Language)
	if err != nil {
		if errors.Is(err, usecase.ErrStorageDisabled) {
			JSON(w, http.StatusOK, StorageMutationResponse{
				Success: false,
				Message: "Storage is not enabled. Set REDIS_URL to enable it.",
				VideoID: id.String(),
			})
			return
		}
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, StorageMutationResponse{
		Success: true,
		Message: "Transcript deleted successfully",
		VideoID: id.String(),
	})
}

// Stats handles GET /v1/transcripts/stats
func (h *StorageHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats := h.svc.Stats(r.Context())
	JSON(w, http.StatusOK, stats)
}

func decodeStorageRequest(w http.ResponseWriter, r *http.Request) (StorageRequest, bool) {
	var req StorageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return req, false
	}
	if req.URL == "" {
		Error(w, http.StatusBadRequest, "invalid_url", "URL is required")
		return req, false
	}
	return req, true
}
