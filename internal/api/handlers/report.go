package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/scoutlens/scoutlens/internal/models"
	"github.com/scoutlens/scoutlens/internal/services"
	"github.com/scoutlens/scoutlens/pkg/utils"
)

type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// GetMatches lists the match log newest first.
func (h *ReportHandler) GetMatches(c *gin.Context) {
	utils.SendSuccess(c, h.reports.ListMatches(c.Request.Context()))
}

func (h *ReportHandler) AddMatch(c *gin.Context) {
	var body struct {
		HomeTeam    string `json:"home_team" binding:"required"`
		AwayTeam    string `json:"away_team" binding:"required"`
		Datetime    string `json:"datetime"`
		Competition string `json:"competition"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.SendValidationError(c, "Invalid match payload", err.Error())
		return
	}
	match, err := h.reports.AddMatch(c.Request.Context(), models.Match{
		HomeTeam:    body.HomeTeam,
		AwayTeam:    body.AwayTeam,
		Datetime:    body.Datetime,
		Competition: body.Competition,
	})
	if err != nil {
		if errors.Is(err, utils.ErrInvalidInput) {
			utils.SendValidationError(c, "Both team names are required", "")
			return
		}
		utils.SendInternalError(c, "Failed to save match")
		return
	}
	utils.SendCreated(c, match)
}

// GetReports lists scout reports newest first, optionally filtered by
// ?player_id=. Each report carries the home/away/kickoff of its match.
func (h *ReportHandler) GetReports(c *gin.Context) {
	utils.SendSuccess(c, h.reports.ListReports(c.Request.Context(), c.Query("player_id")))
}

func (h *ReportHandler) AddReport(c *gin.Context) {
	var body struct {
		MatchID        string            `json:"match_id" binding:"required"`
		PlayerID       string            `json:"player_id" binding:"required"`
		Competition    string            `json:"competition"`
		Foot           string            `json:"foot"`
		Position       string            `json:"position"`
		Ratings        models.RatingList `json:"ratings"`
		GeneralComment string            `json:"general_comment"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.SendValidationError(c, "Invalid report payload", err.Error())
		return
	}
	report, err := h.reports.AddReport(c.Request.Context(), models.ScoutReport{
		MatchID:        body.MatchID,
		PlayerID:       body.PlayerID,
		Competition:    body.Competition,
		Foot:           body.Foot,
		Position:       body.Position,
		Ratings:        body.Ratings,
		GeneralComment: body.GeneralComment,
	})
	if err != nil {
		if errors.Is(err, utils.ErrInvalidInput) {
			utils.SendValidationError(c, "Report needs a player and a match", "")
			return
		}
		utils.SendInternalError(c, "Failed to save report")
		return
	}
	utils.SendCreated(c, report)
}

func (h *ReportHandler) DeleteReports(c *gin.Context) {
	var body struct {
		IDs []string `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.SendValidationError(c, "Invalid delete payload", err.Error())
		return
	}
	deleted, err := h.reports.DeleteReports(c.Request.Context(), body.IDs)
	if err != nil {
		utils.SendInternalError(c, "Failed to delete reports")
		return
	}
	utils.SendSuccess(c, gin.H{"deleted": deleted})
}
