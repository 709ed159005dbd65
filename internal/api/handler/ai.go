package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hszk-dev/ytapi/internal/usecase"
)

type NotesRequest struct {
	URL       string   `json:"url"`
	Format    string   `json:"format,omitempty"`
	Languages []string `json:"languages,omitempty"`
}

type NotesResponse struct {
	VideoID string `json:"video_id"`
	Title   string `json:"title"`
	Format  string `json:"format"`
	Notes   string `json:"notes"`
}

type TranslateRequest struct {
	URL               string `json:"url"`
	TargetLanguage    string `json:"target_language"`
	IncludeTimestamps bool   `json:"include_timestamps,omitempty"`
}

type TranslateResponse struct {
	VideoID              string   `json:"video_id"`
	Title                string   `json:"title"`
	TargetLanguage       string   `json:"target_language"`
	TranslatedTranscript string   `json:"translated_transcript"`
	TranslatedTimestamps []string `json:"translated_timestamps,omitempty"`
}

// AIHandler handles LLM-backed HTTP requests.
type AIHandler struct {
	svc usecase.AIService
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(svc usecase.AIService) *AIHandler {
	return &AIHandler{svc: svc}
}

// Notes handles POST /v1/ai/notes
func (h *AIHandler) Notes(w http.ResponseWriter, r *http.Request) {
	var req NotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if req.URL == "" {
		Error(w, http.StatusBadRequest, "invalid_url", "URL is required")
		return
	}

	out, err := h.svc.GenerateNotes(r.Context(), req.URL, usecase.NotesFormat(req.Format), req.Languages)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, NotesResponse{
		VideoID: out.VideoID,
		Title:   out.Title,
		Format:  string(out.Format),
		Notes:   out.Notes,
	})
}

// Translate handles POST /v1/ai/translate
func (h *AIHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if req.URL == "" {
		Error(w, http.StatusBadRequest, "invalid_url", "URL is required")
		return
	}
	if req.TargetLanguage == "" {
		Error(w, http.StatusBadRequest, "invalid_target_language", "Target language is required")
		return
	}

	out, err := h.svc.Translate(r.Context(), req.URL, req.TargetLanguage, req.IncludeTimestamps)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, TranslateResponse{
		VideoID:              out.VideoID,
		Title:                out.Title,
		TargetLanguage:       out.TargetLanguage,
		TranslatedTranscript: out.Transcript,
		TranslatedTimestamps: out.TranslatedTimestamps,
	})
}
