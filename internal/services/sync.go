package services

import (
	"context"
	"errors"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/scoutlens/scoutlens/internal/models"
	"github.com/scoutlens/scoutlens/internal/storage"
)

// ErrRemoteNotConfigured is returned by sync operations in local mode.
var ErrRemoteNotConfigured = errors.New("supabase is not configured")

// SyncService copies the player snapshot between the local JSON file and the
// remote table in either direction. Used on demand from the API and,
// optionally, on a cron schedule so a scout's laptop converges with the
// shared project while in remote mode.
type SyncService struct {
	local  *storage.LocalStore
	remote *storage.RemoteTable // nil in local mode
	cron   *cron.Cron
	log    *logrus.Entry
}

func NewSyncService(local *storage.LocalStore, remote *storage.RemoteTable, log *logrus.Logger) *SyncService {
	return &SyncService{
		local:  local,
		remote: remote,
		log:    log.WithField("component", "sync"),
	}
}

// UploadPlayers upserts the local players file into the remote table and
// returns how many records were sent. An empty local file uploads nothing.
func (s *SyncService) UploadPlayers(ctx context.Context) (int, error) {
	if s.remote == nil {
		return 0, ErrRemoteNotConfigured
	}
	players := s.local.Read()
	if len(players) == 0 {
		return 0, nil
	}
	for i := range players {
		players[i] = models.Normalize(players[i])
	}
	if serr := s.remote.Upsert(ctx, players); serr != nil {
		return 0, serr
	}
	s.log.WithField("count", len(players)).Info("Uploaded players to Supabase")
	return len(players), nil
}

// DownloadPlayers overwrites the local players file with the remote table
// contents and returns how many records were fetched.
func (s *SyncService) DownloadPlayers(ctx context.Context) (int, error) {
	if s.remote == nil {
		return 0, ErrRemoteNotConfigured
	}
	players, serr := s.remote.SelectAll(ctx)
	if serr != nil {
		return 0, serr
	}
	if err := s.local.Write(players); err != nil {
		return 0, err
	}
	s.log.WithField("count", len(players)).Info("Downloaded players from Supabase")
	return len(players), nil
}

// StartSchedule begins periodic downloads on the given cron spec. No-op when
// the spec is empty or the remote side is not configured.
func (s *SyncService) StartSchedule(spec string) error {
	if spec == "" || s.remote == nil {
		return nil
	}
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if _, err := s.DownloadPlayers(context.Background()); err != nil {
			s.log.WithError(err).Warn("Scheduled player sync failed")
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	s.cron = c
	s.log.WithField("schedule", spec).Info("Player sync schedule started")
	return nil
}

// Stop halts the schedule if one is running.
func (s *SyncService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
