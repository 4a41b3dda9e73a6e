package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/scoutlens/scoutlens/internal/models"
)

const playersCacheKey = "scoutlens:players"

// PlayerCache keeps the full player list in redis between interactions, the
// way the UI cached its master list in memory. Every mutation through the
// adapter invalidates it. Cache errors are logged and treated as misses;
// redis being down must never break a request.
type PlayerCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Entry
}

func NewPlayerCache(client *redis.Client, ttl time.Duration, log *logrus.Logger) *PlayerCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &PlayerCache{
		client: client,
		ttl:    ttl,
		log:    log.WithField("component", "player_cache"),
	}
}

func (c *PlayerCache) GetPlayers(ctx context.Context) ([]models.Player, bool) {
	data, err := c.client.Get(ctx, playersCacheKey).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.WithError(err).Warn("Cache read failed")
		}
		return nil, false
	}
	var players []models.Player
	if err := json.Unmarshal([]byte(data), &players); err != nil {
		c.log.WithError(err).Warn("Cache entry corrupt, dropping")
		c.Invalidate(ctx)
		return nil, false
	}
	return players, true
}

func (c *PlayerCache) SetPlayers(ctx context.Context, players []models.Player) {
	data, err := json.Marshal(players)
	if err != nil {
		c.log.WithError(err).Warn("Failed to marshal players for cache")
		return
	}
	if err := c.client.Set(ctx, playersCacheKey, data, c.ttl).Err(); err != nil {
		c.log.WithError(err).Warn("Cache write failed")
	}
}

func (c *PlayerCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, playersCacheKey).Err(); err != nil {
		c.log.WithError(err).Warn("Cache invalidation failed")
	}
}
