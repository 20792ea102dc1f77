package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds environment-based settings
type Config struct {
	Environment    string
	ServerAddress  string
	StoreDriver    string
	DatabaseURL    string
	MigrationsPath string
	LogLevel       string

	RedisAddress  string
	RedisUsername string
	RedisPassword string
	CacheTTL      time.Duration

	MQTTBrokerURL string
	MQTTTopic     string

	UseSpaces       bool
	SpacesEndpoint  string
	SpacesRegion    string
	SpacesBucket    string
	SpacesCDNURL    string
	SpacesAccessKey string
	SpacesSecretKey string
	UploadDir       string

	PublishCron string
	PublishName string
}

// Development reports whether APP_ENV selects the development profile.
func (c *Config) Development() bool {
	return c.Environment == "development"
}

// Load reads configuration from environment variables. Values from a .env
// file in the working directory are applied first; real environment
// variables win over them.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Environment:    os.Getenv("APP_ENV"),
		ServerAddress:  getenv("SERVER_ADDRESS", ":5000"),
		StoreDriver:    getenv("STORE_DRIVER", DriverPostgres),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MigrationsPath: getenv("MIGRATIONS_PATH", "./migrations"),
		LogLevel:       getenv("LOG_LEVEL", "info"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		MQTTBrokerURL: os.Getenv("MQTT_BROKER_URL"),
		MQTTTopic:     getenv("MQTT_TOPIC", "planner/changes"),

		UseSpaces:       os.Getenv("USE_SPACES") == "true",
		SpacesEndpoint:  os.Getenv("SPACES_ENDPOINT"),
		SpacesRegion:    os.Getenv("SPACES_REGION"),
		SpacesBucket:    os.Getenv("SPACES_BUCKET"),
		SpacesCDNURL:    os.Getenv("SPACES_CDN_URL"),
		SpacesAccessKey: os.Getenv("SPACES_ACCESS_KEY"),
		SpacesSecretKey: os.Getenv("SPACES_SECRET_KEY"),
		UploadDir:       getenv("UPLOAD_DIR", "./public"),

		PublishCron: os.Getenv("PUBLISH_CRON"),
		PublishName: getenv("PUBLISH_NAME", "calendar.ics"),
	}

	ttl, err := time.ParseDuration(getenv("CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl

	switch cfg.StoreDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	case DriverMemory:
	default:
		return nil, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverMemory, cfg.StoreDriver)
	}

	if cfg.UseSpaces && (cfg.SpacesBucket == "" || cfg.SpacesEndpoint == "") {
		return nil, fmt.Errorf("SPACES_BUCKET and SPACES_ENDPOINT are required when USE_SPACES=true")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
