package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted in STORE_DRIVER.
const (
	DriverSupabase = "supabase"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds everything read from the environment at startup.
type Config struct {
	AppPort string

	StoreDriver     string
	SupabaseURL     string
	SupabaseKey     string
	SupabaseTimeout time.Duration
	DatabaseDSN     string

	JWTSecret string
	TokenTTL  time.Duration

	RabbitMQURL string
	EventsQueue string

	LogLevel  string
	LogFormat string
}

// SupabaseConfigured reports whether both hosted-service credentials are present.
func (c *Config) SupabaseConfigured() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != ""
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// godotenv never overrides variables that are already set.
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	v := viper.New()
	v.SetDefault("APP_PORT", ":5000")
	v.SetDefault("STORE_DRIVER", DriverSupabase)
	v.SetDefault("SUPABASE_URL", "")
	v.SetDefault("SUPABASE_KEY", "")
	v.SetDefault("SUPABASE_SERVICE_KEY", "")
	v.SetDefault("SUPABASE_TIMEOUT", "30s")
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("EVENTS_QUEUE", "learning_events")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.AutomaticEnv()

	cfg := &Config{
		AppPort:         v.GetString("APP_PORT"),
		StoreDriver:     strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		SupabaseURL:     strings.TrimRight(v.GetString("SUPABASE_URL"), "/"),
		SupabaseKey:     v.GetString("SUPABASE_KEY"),
		SupabaseTimeout: v.GetDuration("SUPABASE_TIMEOUT"),
		DatabaseDSN:     v.GetString("DATABASE_DSN"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		TokenTTL:        v.GetDuration("TOKEN_TTL"),
		RabbitMQURL:     v.GetString("RABBITMQ_URL"),
		EventsQueue:     v.GetString("EVENTS_QUEUE"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogFormat:       v.GetString("LOG_FORMAT"),
	}
	if cfg.SupabaseKey == "" {
		cfg.SupabaseKey = v.GetString("SUPABASE_SERVICE_KEY")
	}

	switch cfg.StoreDriver {
	case DriverSupabase, DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	return cfg, nil
}
