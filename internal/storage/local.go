package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/scoutlens/scoutlens/internal/models"
)

const playersFile = "players.json"

// LocalStore persists the full player list as one JSON array file. There is
// no partial update: every mutation is a read-modify-write of the whole file,
// performed by the adapter. Writes are serialized within the process; there
// is no cross-process lock, last writer wins.
type LocalStore struct {
	path string
	mu   sync.Mutex
	log  *logrus.Entry
}

func NewLocalStore(dataDir string, log *logrus.Logger) *LocalStore {
	return &LocalStore{
		path: filepath.Join(dataDir, playersFile),
		log:  log.WithField("component", "local_store"),
	}
}

// Path returns the backing file location.
func (s *LocalStore) Path() string {
	return s.path
}

// Read returns all records from the players file. A missing, unreadable or
// syntactically invalid file yields an empty list and no error: the UI must
// never break on corrupt data. Corruption is still logged so it is
// distinguishable from a first run in the server logs.
func (s *LocalStore) Read() []models.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

func (s *LocalStore) readLocked() []models.Player {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.WithError(err).Warn("Players file unreadable, treating as empty")
		}
		return []models.Player{}
	}
	var players []models.Player
	if err := json.Unmarshal(data, &players); err != nil {
		s.log.WithError(err).WithField("path", s.path).Warn("Players file corrupt, treating as empty")
		return []models.Player{}
	}
	if players == nil {
		players = []models.Player{}
	}
	return players
}

// Write replaces the file with the given records. The write is not atomic; a
// crash mid-write can corrupt the file, which Read then reports as empty.
func (s *LocalStore) Write(players []models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(players)
}

func (s *LocalStore) writeLocked(players []models.Player) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &StorageError{Op: "write_players", Backend: ModeLocal, Err: err}
	}
	data, err := json.MarshalIndent(players, "", "  ")
	if err != nil {
		return &StorageError{Op: "write_players", Backend: ModeLocal, Err: err}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return &StorageError{Op: "write_players", Backend: ModeLocal, Err: err}
	}
	return nil
}

// Update runs fn under the store lock against the current file contents and
// writes back whatever fn returns. All adapter mutations on the local path go
// through here so concurrent server goroutines cannot interleave their
// read-modify-write cycles.
func (s *LocalStore) Update(fn func(players []models.Player) []models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(fn(s.readLocked()))
}

// LoadJSON reads an arbitrary JSON file into dest, reporting whether the file
// existed and parsed. Shared by the shortlist and note services, same
// missing-or-corrupt-means-empty policy as the player store.
func LoadJSON(path string, dest any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		logrus.WithError(err).WithField("path", path).Warn("JSON file corrupt, treating as empty")
		return false
	}
	return true
}

// SaveJSON writes v as indented JSON, creating parent directories on demand.
func SaveJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// SaveJSONAtomic writes v as indented JSON through a temp file and rename, so
// a crash mid-write cannot leave a half-written target.
func SaveJSONAtomic(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
