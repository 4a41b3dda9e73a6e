package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/scoutlens/scoutlens/internal/services"
	"github.com/scoutlens/scoutlens/pkg/utils"
)

type NoteHandler struct {
	notes *services.NoteService
}

func NewNoteHandler(notes *services.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// GetNotes lists notes newest first, optionally filtered by ?player_id=.
func (h *NoteHandler) GetNotes(c *gin.Context) {
	utils.SendSuccess(c, h.notes.List(c.Request.Context(), c.Query("player_id")))
}

func (h *NoteHandler) AddNote(c *gin.Context) {
	var body struct {
		PlayerID string `json:"player_id"`
		Text     string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.SendValidationError(c, "Invalid note payload", err.Error())
		return
	}
	note, err := h.notes.Add(c.Request.Context(), body.PlayerID, body.Text)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidInput) {
			utils.SendValidationError(c, "Note text must not be empty", "")
			return
		}
		utils.SendInternalError(c, "Failed to save note")
		return
	}
	utils.SendCreated(c, note)
}

func (h *NoteHandler) DeleteNote(c *gin.Context) {
	if err := h.notes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.SendNotFound(c, "Note not found")
			return
		}
		utils.SendInternalError(c, "Failed to delete note")
		return
	}
	utils.SendSuccess(c, gin.H{"id": c.Param("id")})
}
