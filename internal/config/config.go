// Package config loads the application configuration from environment
// variables. envconfig maps the variables onto the Config struct; defaults
// cover everything except the database password and the admin hash.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds ALL application settings.
type Config struct {
	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`
	AppTimezone string `envconfig:"APP_TIMEZONE" default:"Asia/Shanghai"`

	// --- Storage ---
	// "postgres" for durable storage, "memory" for ephemeral runs.
	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"postgres"`

	// --- Database ---
	// Inside Docker "localhost" is almost always wrong; the default matches
	// the docker-compose service name, override DB_HOST=localhost locally.
	DBHost     string `envconfig:"DB_HOST" default:"postgres"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"gamification"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"gamification"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`

	// --- Admin ---
	// Argon2id hash guarding catalog writes; generate with scripts/generate_hash.go.
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH"`

	// --- Check-in ---
	CheckinBasePoints int64 `envconfig:"CHECKIN_BASE_POINTS" default:"5"`
	MakeupBaseCost    int64 `envconfig:"MAKEUP_BASE_COST" default:"5"`
	MakeupCostPerDay  int64 `envconfig:"MAKEUP_COST_PER_DAY" default:"2"`
	MakeupCostCap     int64 `envconfig:"MAKEUP_COST_CAP" default:"50"`

	// --- Jobs ---
	// Cron expression for the official-task window refresh.
	TaskRefreshSchedule string `envconfig:"TASK_REFRESH_SCHEDULE" default:"0 0 * * *"`
}

// DatabaseDSN returns the PostgreSQL connection string.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// Location resolves APP_TIMEZONE. Falls back to UTC when the zone database
// does not know the configured name.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.AppTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.StorageDriver == "postgres" && c.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required with the postgres driver")
	}
	if c.CheckinBasePoints <= 0 {
		return fmt.Errorf("CHECKIN_BASE_POINTS must be > 0")
	}
	if c.MakeupCostCap < c.MakeupBaseCost {
		return fmt.Errorf("MAKEUP_COST_CAP must be >= MAKEUP_BASE_COST")
	}
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("invalid DB_MIN_CONNS/DB_MAX_CONNS")
	}
	return nil
}

// Load reads the environment and fills the Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
