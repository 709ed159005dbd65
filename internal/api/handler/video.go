package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hszk-dev/ytapi/internal/domain/model"
	"github.com/hszk-dev/ytapi/internal/domain/repository"
	"github.com/hszk-dev/ytapi/internal/usecase"
)

// VideoRequest is the shared request body for video fetch endpoints.
type VideoRequest struct {
	URL       string   `json:"url"`
	Languages []string `json:"languages,omitempty"`
}

type CaptionsResponse struct {
	Captions string `json:"captions"`
}

type TimestampsResponse struct {
	Timestamps []string `json:"timestamps"`
}

type LanguagesResponse struct {
	AvailableLanguages []model.LanguageInfo `json:"available_languages"`
}

// VideoHandler handles video metadata and transcript fetch requests.
type VideoHandler struct {
	svc usecase.VideoService
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(svc usecase.VideoService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// Data handles POST /v1/videos/data
func (h *VideoHandler) Data(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeVideoRequest(w, r)
	if !ok {
		return
	}

	data, err := h.svc.GetVideoData(r.Context(), req.URL)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, data)
}

// Captions handles POST /v1/videos/captions
func (h *VideoHandler) Captions(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeVideoRequest(w, r)
	if !ok {
		return
	}

	captions, err := h.svc.GetCaptions(r.Context(), req.URL, req.Languages)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, CaptionsResponse{Captions: captions})
}

// Timestamps handles POST /v1/videos/timestamps
func (h *VideoHandler) Timestamps(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeVideoRequest(w, r)
	if !ok {
		return
	}

	timestamps, err := h.svc.GetTimestamps(r.Context(), req.URL, req.Languages)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, TimestampsResponse{Timestamps: timestamps})
}

// Languages handles POST /v1/videos/languages
func (h *VideoHandler) Languages(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeVideoRequest(w, r)
	if !ok {
		return
	}

	languages, err := h.svc.GetLanguages(r.Context(), req.URL)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, LanguagesResponse{AvailableLanguages: languages})
}

func decodeVideoRequest(w http.ResponseWriter, r *http.Request) (VideoRequest, bool) {
	var req VideoRequest
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

// handleServiceError maps domain and usecase errors to HTTP responses.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidNotesFormat):
		Error(w, http.StatusBadRequest, "invalid_format", err.Error())
	case errors.Is(err, model.ErrInvalidVideoURL):
		// ParseError carries the offending input; echo it back.
		Error(w, http.StatusBadRequest, "invalid_video_url", err.Error())
	case errors.Is(err, usecase.ErrStoredTranscriptNotFound):
		Error(w, http.StatusNotFound, "transcript_not_stored", err.Error())
	case errors.Is(err, repository.ErrTranscriptNotFound):
		Error(w, http.StatusNotFound, "transcript_not_found", err.Error())
	case errors.Is(err, repository.ErrVideoNotFound):
		Error(w, http.StatusNotFound, "video_not_found", err.Error())
	case errors.Is(err, usecase.ErrStorageDisabled):
		Error(w, http.StatusServiceUnavailable, "storage_disabled", "Transcript storage is not enabled. Set REDIS_URL to enable it.")
	case errors.Is(err, repository.ErrGeneratorNotConfigured):
		Error(w, http.StatusServiceUnavailable, "ai_not_configured", "AI features are not available. Set ANTHROPIC_API_KEY to enable them.")
	case errors.Is(err, repository.ErrUpstreamUnavailable):
		Error(w, http.StatusBadGateway, "upstream_unavailable", err.Error())
	default:
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
