package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/scoutlens/scoutlens/internal/models"
	"github.com/scoutlens/scoutlens/internal/storage"
	"github.com/scoutlens/scoutlens/pkg/utils"
)

const shortlistsFile = "shortlists.json"

// ShortlistService manages named shortlists of player references. Shortlists
// live in a single local JSON object file regardless of storage mode; only
// the player records themselves are dual-mode. Entries keep a name/team
// snapshot from add time and are re-resolved against the player store when
// read, so renames show through and deleted players still render.
type ShortlistService struct {
	path    string
	players storage.PlayerStore
	mu      sync.Mutex
	log     *logrus.Entry
}

func NewShortlistService(dataDir string, players storage.PlayerStore, log *logrus.Logger) *ShortlistService {
	return &ShortlistService{
		path:    filepath.Join(dataDir, shortlistsFile),
		players: players,
		log:     log.WithField("component", "shortlists"),
	}
}

func (s *ShortlistService) load() map[string][]models.ShortlistEntry {
	lists := make(map[string][]models.ShortlistEntry)
	storage.LoadJSON(s.path, &lists)
	return lists
}

func (s *ShortlistService) save(lists map[string][]models.ShortlistEntry) error {
	return storage.SaveJSON(s.path, lists)
}

// ListNames returns the sorted shortlist names.
func (s *ShortlistService) ListNames(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	lists := s.load()
	names := make([]string, 0, len(lists))
	for name := range lists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns one shortlist with entries resolved against the player store.
func (s *ShortlistService) Get(ctx context.Context, name string) (*models.Shortlist, error) {
	s.mu.Lock()
	entries, ok := s.load()[name]
	s.mu.Unlock()
	if !ok {
		return nil, utils.ErrNotFound
	}

	players, err := s.players.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Player, len(players))
	for _, p := range players {
		byID[p.ID()] = p
	}

	resolved := make([]models.ShortlistEntry, 0, len(entries))
	for _, e := range entries {
		if p, ok := byID[e.PlayerID]; ok {
			e.Name = p.Name()
			e.Team = p.TeamName()
		}
		resolved = append(resolved, e)
	}
	return &models.Shortlist{Name: name, Entries: resolved}, nil
}

// Create adds an empty shortlist, failing when the name is taken.
func (s *ShortlistService) Create(ctx context.Context, name string) error {
	if name == "" {
		return utils.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	lists := s.load()
	if _, exists := lists[name]; exists {
		return utils.ErrConflict
	}
	lists[name] = []models.ShortlistEntry{}
	return s.save(lists)
}

// Delete removes a shortlist and its entries.
func (s *ShortlistService) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	lists := s.load()
	if _, exists := lists[name]; !exists {
		return utils.ErrNotFound
	}
	delete(lists, name)
	return s.save(lists)
}

// AddMember appends a player to a shortlist, snapshotting name and team.
// Adding an already-listed player is a no-op.
func (s *ShortlistService) AddMember(ctx context.Context, name, playerID string) error {
	if playerID == "" {
		return utils.ErrInvalidInput
	}

	entry := models.ShortlistEntry{PlayerID: playerID}
	players, err := s.players.ListPlayers(ctx)
	if err != nil {
		return err
	}
	for _, p := range players {
		if p.ID() == playerID {
			entry.Name = p.Name()
			entry.Team = p.TeamName()
			break
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	lists := s.load()
	entries, exists := lists[name]
	if !exists {
		return utils.ErrNotFound
	}
	for _, e := range entries {
		if e.PlayerID == playerID {
			return nil
		}
	}
	lists[name] = append(entries, entry)
	s.log.WithFields(logrus.Fields{"shortlist": name, "player_id": playerID}).Debug("Added shortlist member")
	return s.save(lists)
}

// RemoveMember drops a player from a shortlist.
func (s *ShortlistService) RemoveMember(ctx context.Context, name, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	lists := s.load()
	entries, exists := lists[name]
	if !exists {
		return utils.ErrNotFound
	}
	kept := entries[:0]
	found := false
	for _, e := range entries {
		if e.PlayerID == playerID {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return fmt.Errorf("player %s: %w", playerID, utils.ErrNotFound)
	}
	lists[name] = kept
	return s.save(lists)
}
