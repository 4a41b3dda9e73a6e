package storage

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/scoutlens/scoutlens/internal/models"
	"github.com/scoutlens/scoutlens/pkg/config"
)

// Adapter routes player operations to the remote table when one was
// configured at startup, otherwise to the local JSON file. Under the default
// best_effort policy a remote failure falls back to the local path for the
// same logical operation; with fail_loudly the StorageError is returned to
// the caller instead. Fallback writes mean the two stores can diverge, which
// is why every fallback is logged at warn level.
type Adapter struct {
	mode   Mode
	remote *RemoteTable // nil in local mode
	local  *LocalStore
	cache  ListCache // nil disables caching
	policy string
	log    *logrus.Entry

	warnMu  sync.Mutex
	warning string
}

func NewAdapter(cfg *config.Config, local *LocalStore, remote *RemoteTable, cache ListCache, log *logrus.Logger) *Adapter {
	mode := ModeLocal
	if remote != nil {
		mode = ModeRemote
	}
	return &Adapter{
		mode:   mode,
		remote: remote,
		local:  local,
		cache:  cache,
		policy: cfg.FallbackPolicy,
		log:    log.WithField("component", "player_adapter"),
	}
}

func (a *Adapter) Mode() Mode {
	return a.mode
}

// ConsumeWarning returns the pending user-facing warning from a degraded
// read, clearing it. Read-path remote failures are reported once, at the
// point of first detection; write-path fallbacks are only logged.
func (a *Adapter) ConsumeWarning() string {
	a.warnMu.Lock()
	defer a.warnMu.Unlock()
	w := a.warning
	a.warning = ""
	return w
}

func (a *Adapter) setWarning(msg string) {
	a.warnMu.Lock()
	defer a.warnMu.Unlock()
	if a.warning == "" {
		a.warning = msg
	}
}

func (a *Adapter) ListPlayers(ctx context.Context) ([]models.Player, error) {
	if a.cache != nil {
		if players, ok := a.cache.GetPlayers(ctx); ok {
			return players, nil
		}
	}

	var players []models.Player
	if a.mode == ModeRemote {
		rows, serr := a.remote.SelectAll(ctx)
		switch {
		case serr == nil:
			players = rows
		case a.policy == config.FallbackFailLoudly:
			return nil, serr
		default:
			a.log.WithError(serr).Warn("Remote list failed, serving local snapshot")
			a.setWarning("Failed to load players from Supabase; showing local data")
			players = a.local.Read()
		}
	} else {
		players = a.local.Read()
	}

	for i := range players {
		players[i] = models.Normalize(players[i])
	}
	if a.cache != nil {
		a.cache.SetPlayers(ctx, players)
	}
	return players, nil
}

// ListPlayersByTeam filters the full list client-side by case-insensitive
// exact match on the canonical team. Records without a team are unassigned
// and never match. O(n) over hundreds of records, not millions.
func (a *Adapter) ListPlayersByTeam(ctx context.Context, team string) ([]models.Player, error) {
	players, err := a.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	want := strings.ToLower(strings.TrimSpace(team))
	matches := make([]models.Player, 0)
	for _, p := range players {
		t := p.TeamName()
		if t == "" {
			continue
		}
		if strings.ToLower(t) == want {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

// ListTeams returns the sorted unique non-empty team names.
func (a *Adapter) ListTeams(ctx context.Context) ([]string, error) {
	players, err := a.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	teams := make([]string, 0)
	for _, p := range players {
		t := p.TeamName()
		if t == "" {
			continue
		}
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			teams = append(teams, t)
		}
	}
	sort.Strings(teams)
	return teams, nil
}

// UpsertPlayer inserts or updates a record keyed on id, assigning a fresh id
// when the record has none. Returns the record's id.
func (a *Adapter) UpsertPlayer(ctx context.Context, rec models.Player) (string, error) {
	rec = models.Normalize(rec.Clone())
	id := rec.ID()
	if id == "" {
		id = uuid.NewString()
		rec[models.FieldID] = id
	}

	if a.mode == ModeRemote {
		if serr := a.remote.Upsert(ctx, []models.Player{rec}); serr != nil {
			if a.policy == config.FallbackFailLoudly {
				return "", serr
			}
			a.logDivergence("upsert_player", id, serr)
			if err := a.localUpsert(rec); err != nil {
				return "", err
			}
		}
	} else {
		if err := a.localUpsert(rec); err != nil {
			return "", err
		}
	}

	a.invalidate(ctx)
	return id, nil
}

func (a *Adapter) localUpsert(rec models.Player) error {
	id := rec.ID()
	return a.local.Update(func(players []models.Player) []models.Player {
		for i := range players {
			if models.CanonicalID(players[i]) == id {
				players[i].Merge(rec)
				return players
			}
		}
		return append(players, rec)
	})
}

// SetPhotoPath updates the photo_path column for one player.
func (a *Adapter) SetPhotoPath(ctx context.Context, id, path string) error {
	return a.setField(ctx, id, models.FieldPhotoPath, path)
}

// SetTags replaces the tags list for one player.
func (a *Adapter) SetTags(ctx context.Context, id string, tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	return a.setField(ctx, id, models.FieldTags, tags)
}

func (a *Adapter) setField(ctx context.Context, id, field string, value any) error {
	if a.mode == ModeRemote {
		if serr := a.remote.UpdateField(ctx, id, field, value); serr != nil {
			if a.policy == config.FallbackFailLoudly {
				return serr
			}
			a.logDivergence("set_"+field, id, serr)
			if err := a.localSetField(id, field, value); err != nil {
				return err
			}
		}
	} else {
		if err := a.localSetField(id, field, value); err != nil {
			return err
		}
	}
	a.invalidate(ctx)
	return nil
}

// localSetField mutates the one matching record; when the id is unknown it
// appends a stub record carrying just the id and the field, so repeated
// writes against a missing id stay idempotent.
func (a *Adapter) localSetField(id, field string, value any) error {
	return a.local.Update(func(players []models.Player) []models.Player {
		for i := range players {
			if models.CanonicalID(players[i]) == id {
				players[i][field] = value
				return players
			}
		}
		return append(players, models.Player{models.FieldID: id, field: value})
	})
}

// RemovePlayersByIDs deletes the given ids and returns how many records were
// actually removed. Unknown ids are not an error, they simply do not count.
func (a *Adapter) RemovePlayersByIDs(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var removed int
	if a.mode == ModeRemote {
		count, serr := a.remote.DeleteByIDs(ctx, ids)
		if serr != nil {
			if a.policy == config.FallbackFailLoudly {
				return 0, serr
			}
			a.logDivergence("remove_players", strings.Join(ids, ","), serr)
			var err error
			if removed, err = a.localRemove(ids); err != nil {
				return 0, err
			}
		} else {
			removed = count
		}
	} else {
		var err error
		if removed, err = a.localRemove(ids); err != nil {
			return 0, err
		}
	}

	a.invalidate(ctx)
	return removed, nil
}

func (a *Adapter) localRemove(ids []string) (int, error) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	removed := 0
	err := a.local.Update(func(players []models.Player) []models.Player {
		kept := players[:0]
		for _, p := range players {
			if _, gone := drop[models.CanonicalID(p)]; gone {
				removed++
				continue
			}
			kept = append(kept, p)
		}
		return kept
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (a *Adapter) invalidate(ctx context.Context) {
	if a.cache != nil {
		a.cache.Invalidate(ctx)
	}
}

func (a *Adapter) logDivergence(op, key string, serr *StorageError) {
	a.log.WithError(serr).WithFields(logrus.Fields{
		"op":  op,
		"key": key,
	}).Warn("Remote write failed, applied locally only; stores may diverge")
}
