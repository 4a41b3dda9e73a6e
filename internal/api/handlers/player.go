package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/scoutlens/scoutlens/internal/models"
	"github.com/scoutlens/scoutlens/internal/storage"
	"github.com/scoutlens/scoutlens/pkg/utils"
)

type PlayerHandler struct {
	store storage.PlayerStore
}

func NewPlayerHandler(store storage.PlayerStore) *PlayerHandler {
	return &PlayerHandler{store: store}
}

// warner is implemented by the adapter; reads that silently fell back to the
// local snapshot carry a one-shot user-facing warning.
type warner interface {
	ConsumeWarning() string
}

func (h *PlayerHandler) takeWarning() string {
	if w, ok := h.store.(warner); ok {
		return w.ConsumeWarning()
	}
	return ""
}

// GetPlayers returns all players, optionally filtered by ?team= (exact
// case-insensitive match on the canonical team name).
func (h *PlayerHandler) GetPlayers(c *gin.Context) {
	var (
		players []models.Player
		err     error
	)
	if team := c.Query("team"); team != "" {
		players, err = h.store.ListPlayersByTeam(c.Request.Context(), team)
	} else {
		players, err = h.store.ListPlayers(c.Request.Context())
	}
	if err != nil {
		sendStoreError(c, "Failed to load players", err)
		return
	}
	if warning := h.takeWarning(); warning != "" {
		utils.SendSuccessWithWarning(c, players, warning)
		return
	}
	utils.SendSuccess(c, players)
}

// UpsertPlayer inserts or updates a record, assigning an id when absent.
func (h *PlayerHandler) UpsertPlayer(c *gin.Context) {
	var rec models.Player
	if err := c.ShouldBindJSON(&rec); err != nil {
		utils.SendValidationError(c, "Invalid player payload", err.Error())
		return
	}
	id, err := h.store.UpsertPlayer(c.Request.Context(), rec)
	if err != nil {
		sendStoreError(c, "Failed to save player", err)
		return
	}
	utils.SendSuccess(c, gin.H{"id": id})
}

// SetPhotoPath updates the photo_path field for one player.
func (h *PlayerHandler) SetPhotoPath(c *gin.Context) {
	var body struct {
		PhotoPath string `json:"photo_path" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.SendValidationError(c, "Invalid photo payload", err.Error())
		return
	}
	if err := h.store.SetPhotoPath(c.Request.Context(), c.Param("id"), body.PhotoPath); err != nil {
		sendStoreError(c, "Failed to update photo", err)
		return
	}
	utils.SendSuccess(c, gin.H{"id": c.Param("id")})
}

// SetTags replaces the tags list for one player.
func (h *PlayerHandler) SetTags(c *gin.Context) {
	var body struct {
		Tags []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.SendValidationError(c, "Invalid tags payload", err.Error())
		return
	}
	if err := h.store.SetTags(c.Request.Context(), c.Param("id"), body.Tags); err != nil {
		sendStoreError(c, "Failed to update tags", err)
		return
	}
	utils.SendSuccess(c, gin.H{"id": c.Param("id")})
}

// RemovePlayers deletes records by id list and reports the removed count.
func (h *PlayerHandler) RemovePlayers(c *gin.Context) {
	var body struct {
		IDs []string `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.SendValidationError(c, "Invalid ids payload", err.Error())
		return
	}
	removed, err := h.store.RemovePlayersByIDs(c.Request.Context(), body.IDs)
	if err != nil {
		sendStoreError(c, "Failed to remove players", err)
		return
	}
	utils.SendSuccess(c, gin.H{"deleted": removed})
}

// GetTeams returns the sorted unique team names.
func (h *PlayerHandler) GetTeams(c *gin.Context) {
	teams, err := h.store.ListTeams(c.Request.Context())
	if err != nil {
		sendStoreError(c, "Failed to load teams", err)
		return
	}
	utils.SendSuccess(c, teams)
}

func sendStoreError(c *gin.Context, message string, err error) {
	var serr *storage.StorageError
	if errors.As(err, &serr) {
		utils.SendStorageError(c, message, serr.Error())
		return
	}
	utils.SendInternalError(c, message)
}
