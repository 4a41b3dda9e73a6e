package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/scoutlens/scoutlens/internal/api/handlers"
	"github.com/scoutlens/scoutlens/internal/services"
	"github.com/scoutlens/scoutlens/internal/storage"
)

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, store storage.PlayerStore, shortlists *services.ShortlistService, notes *services.NoteService, reports *services.ReportService, sync *services.SyncService, log *logrus.Logger) {
	playerHandler := handlers.NewPlayerHandler(store)
	shortlistHandler := handlers.NewShortlistHandler(shortlists)
	noteHandler := handlers.NewNoteHandler(notes)
	reportHandler := handlers.NewReportHandler(reports)
	syncHandler := handlers.NewSyncHandler(sync)

	// Player endpoints
	group.GET("/players", playerHandler.GetPlayers)
	group.POST("/players", playerHandler.UpsertPlayer)
	group.PATCH("/players/:id/photo", playerHandler.SetPhotoPath)
	group.PATCH("/players/:id/tags", playerHandler.SetTags)
	group.DELETE("/players", playerHandler.RemovePlayers)
	group.GET("/teams", playerHandler.GetTeams)

	// Shortlist endpoints
	group.GET("/shortlists", shortlistHandler.ListShortlists)
	group.POST("/shortlists", shortlistHandler.CreateShortlist)
	group.GET("/shortlists/:name", shortlistHandler.GetShortlist)
	group.DELETE("/shortlists/:name", shortlistHandler.DeleteShortlist)
	group.POST("/shortlists/:name/members", shortlistHandler.AddMember)
	group.DELETE("/shortlists/:name/members/:playerId", shortlistHandler.RemoveMember)

	// Quick note endpoints
	group.GET("/notes", noteHandler.GetNotes)
	group.POST("/notes", noteHandler.AddNote)
	group.DELETE("/notes/:id", noteHandler.DeleteNote)

	// Match log and scout report endpoints
	group.GET("/matches", reportHandler.GetMatches)
	group.POST("/matches", reportHandler.AddMatch)
	group.GET("/reports", reportHandler.GetReports)
	group.POST("/reports", reportHandler.AddReport)
	group.DELETE("/reports", reportHandler.DeleteReports)

	// Snapshot sync endpoints (remote mode only)
	group.POST("/sync/upload", syncHandler.UploadPlayers)
	group.POST("/sync/download", syncHandler.DownloadPlayers)
}
