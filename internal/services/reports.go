package services

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/scoutlens/scoutlens/internal/models"
	"github.com/scoutlens/scoutlens/internal/storage"
	"github.com/scoutlens/scoutlens/pkg/utils"
)

const (
	matchesFile = "matches.json"
	reportsFile = "scout_reports.json"
)

// ReportService keeps the match log and scout reports in local JSON files,
// same as shortlists and notes. Reports reference matches by id and the match
// context is joined in on read, so removing a match never cascades.
type ReportService struct {
	matchesPath string
	reportsPath string
	mu          sync.Mutex
	log         *logrus.Entry
}

func NewReportService(dataDir string, log *logrus.Logger) *ReportService {
	return &ReportService{
		matchesPath: filepath.Join(dataDir, matchesFile),
		reportsPath: filepath.Join(dataDir, reportsFile),
		log:         log.WithField("component", "reports"),
	}
}

func (s *ReportService) loadMatches() []models.Match {
	var matches []models.Match
	storage.LoadJSON(s.matchesPath, &matches)
	return matches
}

func (s *ReportService) loadReports() []models.ScoutReport {
	var reports []models.ScoutReport
	storage.LoadJSON(s.reportsPath, &reports)
	return reports
}

// ListMatches returns the match log newest first. Rows are normalized on the
// way out: a missing id gets a fresh one and a missing kickoff defaults to
// today, without writing the file back.
func (s *ReportService) ListMatches(ctx context.Context) []models.Match {
	s.mu.Lock()
	matches := s.loadMatches()
	s.mu.Unlock()

	out := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		if m.Datetime == "" {
			m.Datetime = time.Now().Format("2006-01-02")
		}
		out = append(out, m)
	}
	// ISO timestamps sort lexicographically
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Datetime > out[j].Datetime
	})
	return out
}

// AddMatch appends a match to the log and returns it with its id filled in.
func (s *ReportService) AddMatch(ctx context.Context, m models.Match) (*models.Match, error) {
	m.HomeTeam = strings.TrimSpace(m.HomeTeam)
	m.AwayTeam = strings.TrimSpace(m.AwayTeam)
	if m.HomeTeam == "" || m.AwayTeam == "" {
		return nil, utils.ErrInvalidInput
	}
	if m.Datetime == "" {
		m.Datetime = time.Now().Format("2006-01-02")
	}
	m.ID = uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	matches := append(s.loadMatches(), m)
	if err := storage.SaveJSONAtomic(s.matchesPath, matches); err != nil {
		return nil, err
	}
	s.log.WithField("match_id", m.ID).Debug("Added match")
	return &m, nil
}

// ListReports returns scout reports newest first, each joined with the
// home/away/kickoff of its match, optionally filtered by player. A report
// whose match is gone keeps "?" placeholders so it still renders.
func (s *ReportService) ListReports(ctx context.Context, playerID string) []models.ScoutReport {
	s.mu.Lock()
	reports := s.loadReports()
	s.mu.Unlock()

	matchByID := make(map[string]models.Match)
	for _, m := range s.ListMatches(ctx) {
		matchByID[m.ID] = m
	}

	out := make([]models.ScoutReport, 0, len(reports))
	for i := len(reports) - 1; i >= 0; i-- {
		r := reports[i]
		if playerID != "" && r.PlayerID != playerID {
			continue
		}
		if m, ok := matchByID[r.MatchID]; ok {
			r.HomeTeam, r.AwayTeam, r.Datetime = m.HomeTeam, m.AwayTeam, m.Datetime
		} else {
			r.HomeTeam, r.AwayTeam, r.Datetime = "?", "?", ""
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// AddReport stores a scout report and returns it with id and timestamp set.
func (s *ReportService) AddReport(ctx context.Context, r models.ScoutReport) (*models.ScoutReport, error) {
	r.PlayerID = strings.TrimSpace(r.PlayerID)
	r.MatchID = strings.TrimSpace(r.MatchID)
	if r.PlayerID == "" || r.MatchID == "" {
		return nil, utils.ErrInvalidInput
	}
	for i := range r.Ratings {
		r.Ratings[i].Rating = models.ClampRating(r.Ratings[i].Rating)
	}
	r.GeneralComment = strings.TrimSpace(r.GeneralComment)
	r.ID = uuid.NewString()
	r.CreatedAt = time.Now().UTC()
	// joined fields are derived on read, never stored
	r.HomeTeam, r.AwayTeam, r.Datetime = "", "", ""

	s.mu.Lock()
	defer s.mu.Unlock()
	reports := append(s.loadReports(), r)
	if err := storage.SaveJSONAtomic(s.reportsPath, reports); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"report_id": r.ID,
		"player_id": r.PlayerID,
	}).Debug("Added scout report")
	return &r, nil
}

// DeleteReports removes reports by id and returns how many existed. Unknown
// ids are not an error.
func (s *ReportService) DeleteReports(ctx context.Context, ids []string) (int, error) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	reports := s.loadReports()
	kept := reports[:0]
	for _, r := range reports {
		if _, ok := drop[r.ID]; ok {
			continue
		}
		kept = append(kept, r)
	}
	removed := len(reports) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := storage.SaveJSONAtomic(s.reportsPath, kept); err != nil {
		return 0, err
	}
	s.log.WithField("removed", removed).Debug("Deleted scout reports")
	return removed, nil
}
