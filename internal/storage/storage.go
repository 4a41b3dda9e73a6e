// Package storage implements the unified player storage adapter: one
// interface over two backends, a Supabase (PostgREST) table and a local JSON
// file. The backend is chosen once at startup from configuration; remote
// failures can fall back to the local file depending on the configured
// fallback policy.
package storage

import (
	"context"
	"fmt"

	"github.com/scoutlens/scoutlens/internal/models"
)

// Mode identifies which backend the adapter routes to.
type Mode string

const (
	ModeRemote Mode = "remote"
	ModeLocal  Mode = "local"
)

// StorageError is the typed result of a failed backend call. The remote
// client returns these instead of raising through the stack, so the adapter
// decides the fallback explicitly rather than intercepting panics or relying
// on sentinel strings.
type StorageError struct {
	Op      string // logical operation, e.g. "list_players"
	Backend Mode
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s (%s): %v", e.Op, e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func remoteErr(op string, err error) *StorageError {
	return &StorageError{Op: op, Backend: ModeRemote, Err: err}
}

// PlayerStore is the facade consumed by the HTTP handlers. Implementations:
// Adapter (remote-first with fallback) and LocalStore-backed local mode.
type PlayerStore interface {
	ListPlayers(ctx context.Context) ([]models.Player, error)
	ListPlayersByTeam(ctx context.Context, team string) ([]models.Player, error)
	ListTeams(ctx context.Context) ([]string, error)
	UpsertPlayer(ctx context.Context, rec models.Player) (string, error)
	SetPhotoPath(ctx context.Context, id, path string) error
	SetTags(ctx context.Context, id string, tags []string) error
	RemovePlayersByIDs(ctx context.Context, ids []string) (int, error)
	Mode() Mode
}

// ListCache caches the full player list between interactions. A nil cache is
// valid and disables caching.
type ListCache interface {
	GetPlayers(ctx context.Context) ([]models.Player, bool)
	SetPlayers(ctx context.Context, players []models.Player)
	Invalidate(ctx context.Context)
}
