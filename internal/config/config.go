package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	devJWTSecret     = "dev-secret-change-me"
	devAdminPassword = "admin123"
)

// Config holds environment-based settings
type Config struct {
	Environment   string
	ServerAddress string
	LogLevel      string

	JWTSecret         string
	JWTTTL            time.Duration
	AdminPasswordHash string

	MasjidName string
	City       string
	Location   *time.Location
	Latitude   float64
	Longitude  float64

	AladhanBaseURL string
	AladhanMethod  int

	RedisAddress  string
	RedisUsername string
	RedisPassword string
	RedisKey      string

	MQTTBrokerURL string
	MQTTTopic     string
	MQTTClientID  string

	BroadcastInterval time.Duration

	DonationGoal    int
	DonationCurrent int
}

// Production reports whether APP_ENV is production.
func (c *Config) Production() bool {
	return c.Environment == EnvProduction
}

// Load reads configuration from environment variables. A .env file in the
// working directory is read first if present; real environment variables win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Environment:    get("APP_ENV", EnvDevelopment),
		ServerAddress:  get("SERVER_ADDRESS", ":8080"),
		LogLevel:       get("LOG_LEVEL", "info"),
		MasjidName:     get("MASJID_NAME", "Baitul Aman Masjid"),
		City:           get("MASJID_CITY", "Dhaka"),
		AladhanBaseURL: get("ALADHAN_BASE_URL", "https://api.aladhan.com"),
		RedisAddress:   getenv("REDIS_ADDRESS"),
		RedisUsername:  getenv("REDIS_USERNAME"),
		RedisPassword:  getenv("REDIS_PASSWORD"),
		RedisKey:       get("REDIS_NEXT_PRAYER_KEY", "masjid:next_prayer"),
		MQTTBrokerURL:  getenv("MQTT_BROKER_URL"),
		MQTTTopic:      get("MQTT_TOPIC", "masjid/next-prayer"),
		MQTTClientID:   get("MQTT_CLIENT_ID", "baitulaman-server"),
	}

	var err error
	if cfg.Environment != EnvDevelopment && cfg.Environment != EnvProduction {
		return nil, fmt.Errorf("APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, cfg.Environment)
	}

	cfg.JWTSecret = getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		if cfg.Production() {
			return nil, fmt.Errorf("JWT_SECRET is required")
		}
		cfg.JWTSecret = devJWTSecret
	}
	if cfg.JWTTTL, err = time.ParseDuration(get("JWT_TTL", "12h")); err != nil {
		return nil, fmt.Errorf("JWT_TTL: %w", err)
	}

	cfg.AdminPasswordHash = getenv("ADMIN_PASSWORD_HASH")
	if cfg.AdminPasswordHash == "" {
		plain := getenv("ADMIN_PASSWORD")
		if plain == "" {
			if cfg.Production() {
				return nil, fmt.Errorf("ADMIN_PASSWORD_HASH or ADMIN_PASSWORD is required")
			}
			plain = devAdminPassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing ADMIN_PASSWORD: %w", err)
		}
		cfg.AdminPasswordHash = string(hashed)
	} else if _, err := bcrypt.Cost([]byte(cfg.AdminPasswordHash)); err != nil {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH is not a bcrypt hash: %w", err)
	}

	if cfg.Location, err = time.LoadLocation(get("MASJID_TIMEZONE", "Asia/Dhaka")); err != nil {
		return nil, fmt.Errorf("MASJID_TIMEZONE: %w", err)
	}
	if cfg.Latitude, err = strconv.ParseFloat(get("MASJID_LATITUDE", "23.7465"), 64); err != nil {
		return nil, fmt.Errorf("MASJID_LATITUDE: %w", err)
	}
	if cfg.Longitude, err = strconv.ParseFloat(get("MASJID_LONGITUDE", "90.3760"), 64); err != nil {
		return nil, fmt.Errorf("MASJID_LONGITUDE: %w", err)
	}
	if cfg.AladhanMethod, err = strconv.Atoi(get("ALADHAN_METHOD", "1")); err != nil {
		return nil, fmt.Errorf("ALADHAN_METHOD: %w", err)
	}

	if cfg.BroadcastInterval, err = time.ParseDuration(get("BROADCAST_INTERVAL", "1s")); err != nil {
		return nil, fmt.Errorf("BROADCAST_INTERVAL: %w", err)
	}
	if cfg.BroadcastInterval <= 0 {
		return nil, fmt.Errorf("BROADCAST_INTERVAL must be positive")
	}

	if cfg.DonationGoal, err = strconv.Atoi(get("DONATION_GOAL", "50000")); err != nil {
		return nil, fmt.Errorf("DONATION_GOAL: %w", err)
	}
	if cfg.DonationCurrent, err = strconv.Atoi(get("DONATION_CURRENT", "32500")); err != nil {
		return nil, fmt.Errorf("DONATION_CURRENT: %w", err)
	}

	return cfg, nil
}

// Now returns the current time in the masjid's timezone.
func (c *Config) Now() time.Time {
	return time.Now().In(c.Location)
}
