package services

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutlens/scoutlens/internal/models"
	"github.com/scoutlens/scoutlens/internal/storage"
	"github.com/scoutlens/scoutlens/pkg/config"
	"github.com/scoutlens/scoutlens/pkg/utils"
)

func newShortlistFixture(t *testing.T) (*ShortlistService, storage.PlayerStore) {
	t.Helper()
	log := logrus.New()
	dir := t.TempDir()
	cfg := &config.Config{FallbackPolicy: config.FallbackBestEffort}
	adapter := storage.NewAdapter(cfg, storage.NewLocalStore(dir, log), nil, nil, log)
	return NewShortlistService(dir, adapter, log), adapter
}

func TestShortlistLifecycle(t *testing.T) {
	svc, players := newShortlistFixture(t)
	ctx := context.Background()

	id, err := players.UpsertPlayer(ctx, models.Player{"name": "Enzo Fernandez", "team_name": "River Plate"})
	require.NoError(t, err)

	require.NoError(t, svc.Create(ctx, "summer targets"))
	assert.ErrorIs(t, svc.Create(ctx, "summer targets"), utils.ErrConflict)
	assert.Equal(t, []string{"summer targets"}, svc.ListNames(ctx))

	require.NoError(t, svc.AddMember(ctx, "summer targets", id))
	// adding twice is a no-op
	require.NoError(t, svc.AddMember(ctx, "summer targets", id))

	list, err := svc.Get(ctx, "summer targets")
	require.NoError(t, err)
	require.Len(t, list.Entries, 1)
	assert.Equal(t, "Enzo Fernandez", list.Entries[0].Name)
	assert.Equal(t, "River Plate", list.Entries[0].Team)

	require.NoError(t, svc.RemoveMember(ctx, "summer targets", id))
	list, err = svc.Get(ctx, "summer targets")
	require.NoError(t, err)
	assert.Empty(t, list.Entries)

	require.NoError(t, svc.Delete(ctx, "summer targets"))
	assert.ErrorIs(t, svc.Delete(ctx, "summer targets"), utils.ErrNotFound)
}

func TestShortlistKeepsSnapshotForDeletedPlayer(t *testing.T) {
	svc, players := newShortlistFixture(t)
	ctx := context.Background()

	id, err := players.UpsertPlayer(ctx, models.Player{"name": "Luka Jovic", "team_name": "River Plate"})
	require.NoError(t, err)
	require.NoError(t, svc.Create(ctx, "strikers"))
	require.NoError(t, svc.AddMember(ctx, "strikers", id))

	_, err = players.RemovePlayersByIDs(ctx, []string{id})
	require.NoError(t, err)

	list, err := svc.Get(ctx, "strikers")
	require.NoError(t, err)
	require.Len(t, list.Entries, 1)
	// snapshot from add time still renders
	assert.Equal(t, "Luka Jovic", list.Entries[0].Name)
}

func TestShortlistUnknownListAndMember(t *testing.T) {
	svc, _ := newShortlistFixture(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, "nope")
	assert.ErrorIs(t, err, utils.ErrNotFound)
	assert.ErrorIs(t, svc.AddMember(ctx, "nope", "p1"), utils.ErrNotFound)

	require.NoError(t, svc.Create(ctx, "list"))
	assert.ErrorIs(t, svc.RemoveMember(ctx, "list", "ghost"), utils.ErrNotFound)
}
