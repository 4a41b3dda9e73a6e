package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/scoutlens/scoutlens/internal/services"
	"github.com/scoutlens/scoutlens/pkg/utils"
)

type ShortlistHandler struct {
	shortlists *services.ShortlistService
}

func NewShortlistHandler(shortlists *services.ShortlistService) *ShortlistHandler {
	return &ShortlistHandler{shortlists: shortlists}
}

func (h *ShortlistHandler) ListShortlists(c *gin.Context) {
	utils.SendSuccess(c, h.shortlists.ListNames(c.Request.Context()))
}

func (h *ShortlistHandler) GetShortlist(c *gin.Context) {
	list, err := h.shortlists.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.SendNotFound(c, "Shortlist not found")
			return
		}
		sendStoreError(c, "Failed to load shortlist", err)
		return
	}
	utils.SendSuccess(c, list)
}

func (h *ShortlistHandler) CreateShortlist(c *gin.Context) {
	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.SendValidationError(c, "Invalid shortlist payload", err.Error())
		return
	}
	if err := h.shortlists.Create(c.Request.Context(), body.Name); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			utils.SendConflict(c, "Shortlist already exists")
			return
		}
		utils.SendInternalError(c, "Failed to create shortlist")
		return
	}
	utils.SendCreated(c, gin.H{"name": body.Name})
}

func (h *ShortlistHandler) DeleteShortlist(c *gin.Context) {
	if err := h.shortlists.Delete(c.Request.Context(), c.Param("name")); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.SendNotFound(c, "Shortlist not found")
			return
		}
		utils.SendInternalError(c, "Failed to delete shortlist")
		return
	}
	utils.SendSuccess(c, gin.H{"name": c.Param("name")})
}

func (h *ShortlistHandler) AddMember(c *gin.Context) {
	var body struct {
		PlayerID string `json:"player_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.SendValidationError(c, "Invalid member payload", err.Error())
		return
	}
	if err := h.shortlists.AddMember(c.Request.Context(), c.Param("name"), body.PlayerID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.SendNotFound(c, "Shortlist not found")
			return
		}
		sendStoreError(c, "Failed to add shortlist member", err)
		return
	}
	utils.SendSuccess(c, gin.H{"name": c.Param("name"), "player_id": body.PlayerID})
}

func (h *ShortlistHandler) RemoveMember(c *gin.Context) {
	if err := h.shortlists.RemoveMember(c.Request.Context(), c.Param("name"), c.Param("playerId")); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			utils.SendNotFound(c, "Shortlist or member not found")
			return
		}
		utils.SendInternalError(c, "Failed to remove shortlist member")
		return
	}
	utils.SendSuccess(c, gin.H{"name": c.Param("name")})
}
