package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		StorageDriver:     "memory",
		AppTimezone:       "Asia/Shanghai",
		CheckinBasePoints: 5,
		MakeupBaseCost:    5,
		MakeupCostPerDay:  2,
		MakeupCostCap:     50,
		DBMaxConns:        25,
		DBMinConns:        5,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid memory config", func(c *Config) {}, false},
		{"unknown driver", func(c *Config) { c.StorageDriver = "redis" }, true},
		{"postgres without password", func(c *Config) { c.StorageDriver = "postgres" }, true},
		{"postgres with password", func(c *Config) {
			c.StorageDriver = "postgres"
			c.DBPassword = "secret"
		}, false},
		{"zero base points", func(c *Config) { c.CheckinBasePoints = 0 }, true},
		{"cap below base cost", func(c *Config) { c.MakeupCostCap = 3 }, true},
		{"min conns above max", func(c *Config) { c.DBMinConns = 30 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDatabaseDSN(t *testing.T) {
	cfg := &Config{
		DBUser: "app", DBPassword: "pw", DBHost: "db", DBPort: 5432,
		DBName: "ledger", DBSSLMode: "disable",
	}
	assert.Equal(t, "postgres://app:pw@db:5432/ledger?sslmode=disable", cfg.DatabaseDSN())
}

func TestLocation(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "Asia/Shanghai", cfg.Location().String())

	cfg.AppTimezone = "Not/AZone"
	assert.Equal(t, time.UTC, cfg.Location())
}
