package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_DevelopmentDefaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 12*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "Asia/Dhaka", cfg.Location.String())
	assert.Equal(t, time.Second, cfg.BroadcastInterval)
	assert.Equal(t, 50000, cfg.DonationGoal)
	assert.Empty(t, cfg.RedisAddress)
	assert.Empty(t, cfg.MQTTBrokerURL)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte(devAdminPassword)))
}

func TestFromEnv_ProductionRequiresSecrets(t *testing.T) {
	_, err := FromEnv(envOf(map[string]string{"APP_ENV": "production"}))
	assert.ErrorContains(t, err, "JWT_SECRET")

	_, err = FromEnv(envOf(map[string]string{"APP_ENV": "production", "JWT_SECRET": "s"}))
	assert.ErrorContains(t, err, "ADMIN_PASSWORD")
}

func TestFromEnv_Production(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("open sesame"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg, err := FromEnv(envOf(map[string]string{
		"APP_ENV":             "production",
		"JWT_SECRET":          "s3cret",
		"ADMIN_PASSWORD_HASH": string(hash),
		"MASJID_TIMEZONE":     "UTC",
		"BROADCAST_INTERVAL":  "5s",
		"REDIS_ADDRESS":       "localhost:6379",
		"MQTT_BROKER_URL":     "tcp://localhost:1883",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.Production())
	assert.Equal(t, string(hash), cfg.AdminPasswordHash)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, 5*time.Second, cfg.BroadcastInterval)
	assert.Equal(t, "masjid:next_prayer", cfg.RedisKey)
	assert.Equal(t, "masjid/next-prayer", cfg.MQTTTopic)
}

func TestFromEnv_InvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"env":      {"APP_ENV": "staging"},
		"timezone": {"MASJID_TIMEZONE": "Mars/Olympus"},
		"latitude": {"MASJID_LATITUDE": "north"},
		"interval": {"BROADCAST_INTERVAL": "0s"},
		"ttl":      {"JWT_TTL": "forever"},
		"hash":     {"ADMIN_PASSWORD_HASH": "plaintext"},
		"donation": {"DONATION_GOAL": "lots"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(envOf(env))
			assert.Error(t, err)
		})
	}
}
