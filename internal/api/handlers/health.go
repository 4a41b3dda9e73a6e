package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scoutlens/scoutlens/internal/storage"
)

type HealthHandler struct {
	store storage.PlayerStore
}

func NewHealthHandler(store storage.PlayerStore) *HealthHandler {
	return &HealthHandler{store: store}
}

// GetHealth returns basic liveness plus which storage mode was resolved at
// startup, so an operator can tell at a glance whether the instance is
// talking to Supabase or running off local files.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"service":      "scoutlens",
		"storage_mode": string(h.store.Mode()),
	})
}
