package handler

import (
	"net/http"

	"github.com/hszk-dev/ytapi/internal/infrastructure/cache"
	"github.com/hszk-dev/ytapi/internal/usecase"
)

type HealthResponse struct {
	Status string `json:"status"`
	Redis  string `json:"redis"`
	AI     string `json:"ai"`
}

// HealthHandler reports process liveness and collaborator availability.
type HealthHandler struct {
	cache *cache.Cache
	ai    usecase.AIService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(c *cache.Cache, ai usecase.AIService) *HealthHandler {
	return &HealthHandler{cache: c, ai: ai}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	redisStatus := "disabled"
	if h.cache.Enabled() {
		redisStatus = "unreachable"
		if h.cache.Ping(r.Context()) {
			redisStatus = "connected"
		}
	}

	aiStatus := "not_configured"
	if h.ai.Available() {
		aiStatus = "configured"
	}

	JSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Redis:  redisStatus,
		AI:     aiStatus,
	})
}
