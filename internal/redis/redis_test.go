package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/baitulaman/internal/model"
)

// Nothing listens on port 1, so every command fails fast.
func unreachable() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestNextPrayerCache_PublishReportsUnreachableServer(t *testing.T) {
	rdb := unreachable()
	defer rdb.Close()

	cache := NewNextPrayerCache(rdb, "masjid:next_prayer", time.Minute)
	assert.Equal(t, "redis", cache.Name())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := cache.Publish(ctx, model.NextPrayer{Name: "Asr", Time: "04:30 PM"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "masjid:next_prayer")

	_, err = cache.Get(ctx)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSnapshot)
}

func TestNewClient_PingFailureStillReturnsClient(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	rdb, err := NewClient(ctx, "127.0.0.1:1", "", "")
	require.Error(t, err)
	require.NotNil(t, rdb)
	_ = rdb.Close()
}
