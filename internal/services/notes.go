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

const notesFile = "quick_notes.json"

// NoteService stores quick scouting notes in a local JSON file. Notes are
// append-mostly: scouts jot them during matches and occasionally delete, so
// there is no edit operation.
type NoteService struct {
	path string
	mu   sync.Mutex
	log  *logrus.Entry
}

func NewNoteService(dataDir string, log *logrus.Logger) *NoteService {
	return &NoteService{
		path: filepath.Join(dataDir, notesFile),
		log:  log.WithField("component", "notes"),
	}
}

func (s *NoteService) load() []models.Note {
	var notes []models.Note
	storage.LoadJSON(s.path, &notes)
	return notes
}

// List returns notes newest first, optionally filtered by player.
func (s *NoteService) List(ctx context.Context, playerID string) []models.Note {
	s.mu.Lock()
	notes := s.load()
	s.mu.Unlock()

	// reverse insertion order, then stable sort, so same-timestamp notes
	// still come out newest first
	out := make([]models.Note, 0, len(notes))
	for i := len(notes) - 1; i >= 0; i-- {
		if playerID != "" && notes[i].PlayerID != playerID {
			continue
		}
		out = append(out, notes[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Add creates a note and returns it with id and timestamp filled in.
func (s *NoteService) Add(ctx context.Context, playerID, text string) (*models.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, utils.ErrInvalidInput
	}
	note := models.Note{
		ID:        uuid.NewString(),
		PlayerID:  playerID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	notes := append(s.load(), note)
	if err := storage.SaveJSON(s.path, notes); err != nil {
		return nil, err
	}
	s.log.WithField("note_id", note.ID).Debug("Added quick note")
	return &note, nil
}

// Delete removes a note by id.
func (s *NoteService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	notes := s.load()
	kept := notes[:0]
	found := false
	for _, n := range notes {
		if n.ID == id {
			found = true
			continue
		}
		kept = append(kept, n)
	}
	if !found {
		return utils.ErrNotFound
	}
	return storage.SaveJSON(s.path, kept)
}
