package handler

import (
	"net/http"

	"github.com/hszk-dev/ytapi/internal/infrastructure/cache"
)

type CacheClearResponse struct {
	Success     bool `json:"success"`
	KeysDeleted int  `json:"keys_deleted"`
}

// CacheHandler exposes cache introspection and invalidation.
type CacheHandler struct {
	cache *cache.Cache
}

// NewCacheHandler creates a new CacheHandler.
func NewCacheHandler(c *cache.Cache) *CacheHandler {
	return &CacheHandler{cache: c}
}

// Stats handles GET /v1/cache/stats
func (h *CacheHandler) Stats(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.cache.Stats(r.Context()))
}

// Clear handles DELETE /v1/cache
func (h *CacheHandler) Clear(w http.ResponseWriter, r *http.Request) {
	deleted := h.cache.ClearNamespace(r.Context())
	JSON(w, http.StatusOK, CacheClearResponse{
		Success:     true,
		KeysDeleted: deleted,
	})
}
