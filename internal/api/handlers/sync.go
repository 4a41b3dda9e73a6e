package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/scoutlens/scoutlens/internal/services"
	"github.com/scoutlens/scoutlens/pkg/utils"
)

type SyncHandler struct {
	sync *services.SyncService
}

func NewSyncHandler(sync *services.SyncService) *SyncHandler {
	return &SyncHandler{sync: sync}
}

// UploadPlayers pushes the local players file into the remote table.
func (h *SyncHandler) UploadPlayers(c *gin.Context) {
	count, err := h.sync.UploadPlayers(c.Request.Context())
	if err != nil {
		h.sendSyncError(c, "Upload failed", err)
		return
	}
	utils.SendSuccess(c, gin.H{"uploaded": count})
}

// DownloadPlayers replaces the local players file with the remote contents.
func (h *SyncHandler) DownloadPlayers(c *gin.Context) {
	count, err := h.sync.DownloadPlayers(c.Request.Context())
	if err != nil {
		h.sendSyncError(c, "Download failed", err)
		return
	}
	utils.SendSuccess(c, gin.H{"downloaded": count})
}

func (h *SyncHandler) sendSyncError(c *gin.Context, message string, err error) {
	if errors.Is(err, services.ErrRemoteNotConfigured) {
		utils.SendValidationError(c, message, "supabase is not configured, sync requires remote mode")
		return
	}
	sendStoreError(c, message, err)
}
