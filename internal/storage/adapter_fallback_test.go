package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutlens/scoutlens/internal/models"
	"github.com/scoutlens/scoutlens/pkg/config"
)

func newRemoteAdapter(t *testing.T, policy string, handler http.HandlerFunc) (*Adapter, *LocalStore) {
	t.Helper()
	log := logrus.New()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	remote := NewRemoteTable(srv.URL, "anon-key", "players", 2*time.Second, 100, log)
	local := NewLocalStore(t.TempDir(), log)
	cfg := &config.Config{FallbackPolicy: policy}
	return NewAdapter(cfg, local, remote, nil, log), local
}

func TestRemoteModeListUsesRemote(t *testing.T) {
	adapter, _ := newRemoteAdapter(t, config.FallbackBestEffort, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"1","Team":"River Plate","name":"Luka"}]`))
	})
	assert.Equal(t, ModeRemote, adapter.Mode())

	players, err := adapter.ListPlayers(context.Background())
	require.NoError(t, err)
	require.Len(t, players, 1)
	// remote rows are normalized on read
	assert.Equal(t, "River Plate", players[0].TeamName())
	assert.Equal(t, "", adapter.ConsumeWarning())
}

func TestListFallsBackToLocalOnRemoteFailure(t *testing.T) {
	adapter, local := newRemoteAdapter(t, config.FallbackBestEffort, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	require.NoError(t, local.Write([]models.Player{{"id": "1", "name": "Local Luka"}}))

	players, err := adapter.ListPlayers(context.Background())
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Local Luka", players[0].Name())

	// read-path degradation is reported once, then cleared
	assert.NotEmpty(t, adapter.ConsumeWarning())
	assert.Empty(t, adapter.ConsumeWarning())
}

func TestListFailsLoudlyWhenConfigured(t *testing.T) {
	adapter, local := newRemoteAdapter(t, config.FallbackFailLoudly, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	require.NoError(t, local.Write([]models.Player{{"id": "1", "name": "Local Luka"}}))

	_, err := adapter.ListPlayers(context.Background())
	require.Error(t, err)
	serr, ok := err.(*StorageError)
	require.True(t, ok)
	assert.Equal(t, ModeRemote, serr.Backend)
}

func TestUpsertFallsBackToLocalOnRemoteFailure(t *testing.T) {
	adapter, local := newRemoteAdapter(t, config.FallbackBestEffort, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	id, err := adapter.UpsertPlayer(context.Background(), models.Player{"name": "Enzo"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	// the write landed in the local file
	players := local.Read()
	require.Len(t, players, 1)
	assert.Equal(t, id, players[0].ID())
}

func TestUpsertFailsLoudlyWhenConfigured(t *testing.T) {
	adapter, local := newRemoteAdapter(t, config.FallbackFailLoudly, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := adapter.UpsertPlayer(context.Background(), models.Player{"name": "Enzo"})
	require.Error(t, err)
	assert.Empty(t, local.Read(), "fail_loudly must not write locally")
}

func TestRemoveFallsBackToLocalCount(t *testing.T) {
	adapter, local := newRemoteAdapter(t, config.FallbackBestEffort, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	require.NoError(t, local.Write([]models.Player{
		{"id": "x", "name": "A"},
		{"id": "y", "name": "B"},
	}))

	removed, err := adapter.RemovePlayersByIDs(context.Background(), []string{"x", "zzz"})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Len(t, local.Read(), 1)
}

func TestRemoteModeDeleteUsesRemoteCount(t *testing.T) {
	adapter, _ := newRemoteAdapter(t, config.FallbackBestEffort, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`[{"id":"x"}]`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	})

	removed, err := adapter.RemovePlayersByIDs(context.Background(), []string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}
