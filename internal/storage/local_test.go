package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutlens/scoutlens/internal/models"
)

func newTestLocalStore(t *testing.T) *LocalStore {
	t.Helper()
	log := logrus.New()
	log.SetOutput(os.Stderr)
	return NewLocalStore(t.TempDir(), log)
}

func TestLocalStoreReadMissingFile(t *testing.T) {
	store := newTestLocalStore(t)
	players := store.Read()
	assert.NotNil(t, players)
	assert.Empty(t, players)
}

func TestLocalStoreReadCorruptFile(t *testing.T) {
	store := newTestLocalStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"not": "an array"`), 0o644))

	// corrupt data must read as empty, never fail
	players := store.Read()
	assert.Empty(t, players)
}

func TestLocalStoreRoundTrip(t *testing.T) {
	store := newTestLocalStore(t)
	in := []models.Player{
		{"id": "1", "name": "Luka Jovic", "team_name": "River Plate", "scout_rating": "A"},
		{"id": "2", "name": "Enzo Fernandez", "team_name": "River Plate", "tags": []any{"box-to-box"}},
		{"id": "3", "name": "Unattached", "team_name": ""},
	}
	require.NoError(t, store.Write(in))

	out := store.Read()
	require.Len(t, out, 3)
	byID := make(map[string]models.Player)
	for _, p := range out {
		byID[p.ID()] = p
	}
	assert.Equal(t, "Luka Jovic", byID["1"].Name())
	assert.Equal(t, "A", byID["1"]["scout_rating"])
	assert.Equal(t, []string{"box-to-box"}, byID["2"].Tags())
	assert.Equal(t, "", byID["3"].TeamName())
}

func TestLocalStoreUpdate(t *testing.T) {
	store := newTestLocalStore(t)
	require.NoError(t, store.Write([]models.Player{{"id": "1", "name": "A"}}))

	err := store.Update(func(players []models.Player) []models.Player {
		return append(players, models.Player{"id": "2", "name": "B"})
	})
	require.NoError(t, err)
	assert.Len(t, store.Read(), 2)
}

func TestLoadSaveJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "lists.json")

	var missing map[string][]string
	assert.False(t, LoadJSON(path, &missing))

	data := map[string][]string{"targets": {"a", "b"}}
	require.NoError(t, SaveJSON(path, data))

	var loaded map[string][]string
	assert.True(t, LoadJSON(path, &loaded))
	assert.Equal(t, data, loaded)
}
