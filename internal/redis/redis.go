// Package redis mirrors the current next-prayer snapshot into Redis so other
// processes (signage, bots) can read it without calling the HTTP API.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/baitulaman/internal/model"
)

var ErrNoSnapshot = errors.New("no next-prayer snapshot in redis")

// NewClient connects and pings. The client is returned even when the ping
// fails so callers can decide whether a missing Redis is fatal.
func NewClient(ctx context.Context, address, username, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     address,
		Username: username,
		Password: password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return rdb, fmt.Errorf("ping redis at %s: %w", address, err)
	}
	log.Info().Str("addr", address).Msg("connected to redis")
	return rdb, nil
}

// NextPrayerCache stores the latest snapshot under a single key with a TTL, so
// a stopped broadcaster leaves no stale value behind for long.
type NextPrayerCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewNextPrayerCache(client *redis.Client, key string, ttl time.Duration) *NextPrayerCache {
	return &NextPrayerCache{client: client, key: key, ttl: ttl}
}

func (c *NextPrayerCache) Name() string { return "redis" }

func (c *NextPrayerCache) Publish(ctx context.Context, msg model.NextPrayer) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", c.key, err)
	}
	return nil
}

func (c *NextPrayerCache) Get(ctx context.Context) (model.NextPrayer, error) {
	var msg model.NextPrayer
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return msg, ErrNoSnapshot
	}
	if err != nil {
		return msg, fmt.Errorf("get %s: %w", c.key, err)
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, fmt.Errorf("decode %s: %w", c.key, err)
	}
	return msg, nil
}
