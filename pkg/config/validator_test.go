package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:     "fatigue-monitor",
			Mode:     "development",
			LogLevel: "info",
		},
		Database: DatabaseConfig{
			Host:           "localhost",
			Port:           5432,
			Name:           "fatigue",
			User:           "fatigue",
			MaxConnections: 10,
		},
		Extractor: ExtractorConfig{
			LookbackWindow:      24 * time.Hour,
			SessionGapMinutes:   5,
			FocusSessionMinutes: 30,
			NightStartHour:      22,
			NightEndHour:        6,
		},
		API: APIConfig{
			Port:      8080,
			JWTSecret: "test-secret",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		modify     func(*Config)
		shouldFail bool
	}{
		{
			name:       "valid config",
			modify:     func(c *Config) {},
			shouldFail: false,
		},
		{
			name:       "missing app name",
			modify:     func(c *Config) { c.App.Name = "" },
			shouldFail: true,
		},
		{
			name:       "invalid mode",
			modify:     func(c *Config) { c.App.Mode = "staging" },
			shouldFail: true,
		},
		{
			name:       "invalid log level",
			modify:     func(c *Config) { c.App.LogLevel = "verbose" },
			shouldFail: true,
		},
		{
			name:       "missing database host",
			modify:     func(c *Config) { c.Database.Host = "" },
			shouldFail: true,
		},
		{
			name:       "database port out of range",
			modify:     func(c *Config) { c.Database.Port = 70000 },
			shouldFail: true,
		},
		{
			name:       "zero max connections",
			modify:     func(c *Config) { c.Database.MaxConnections = 0 },
			shouldFail: true,
		},
		{
			name:       "negative lookback window",
			modify:     func(c *Config) { c.Extractor.LookbackWindow = -time.Hour },
			shouldFail: true,
		},
		{
			name:       "zero session gap",
			modify:     func(c *Config) { c.Extractor.SessionGapMinutes = 0 },
			shouldFail: true,
		},
		{
			name:       "night start hour out of range",
			modify:     func(c *Config) { c.Extractor.NightStartHour = 24 },
			shouldFail: true,
		},
		{
			name: "categorizer rule without keywords",
			modify: func(c *Config) {
				c.Categorizer.Rules = []CategoryRule{{Category: "social"}}
			},
			shouldFail: true,
		},
		{
			name: "categorizer rule without category",
			modify: func(c *Config) {
				c.Categorizer.Rules = []CategoryRule{{Keywords: []string{"chrome"}}}
			},
			shouldFail: true,
		},
		{
			name: "valid categorizer rules",
			modify: func(c *Config) {
				c.Categorizer.Rules = []CategoryRule{{Category: "social", Keywords: []string{"chrome"}}}
			},
			shouldFail: false,
		},
		{
			name:       "api port out of range",
			modify:     func(c *Config) { c.API.Port = 0 },
			shouldFail: true,
		},
		{
			name: "default jwt secret in production",
			modify: func(c *Config) {
				c.App.Mode = "production"
				c.API.JWTSecret = "change-me-in-production"
			},
			shouldFail: true,
		},
		{
			name: "default jwt secret in development",
			modify: func(c *Config) {
				c.API.JWTSecret = "change-me-in-production"
			},
			shouldFail: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.shouldFail {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		Name:     "fatigue",
		User:     "monitor",
		Password: "pw",
	}

	dsn := cfg.DSN()

	assert.Contains(t, dsn, "host=db.internal")
	assert.Contains(t, dsn, "port=5433")
	assert.Contains(t, dsn, "dbname=fatigue")
	assert.Contains(t, dsn, "sslmode=disable", "ssl mode defaults to disable")

	cfg.SSLMode = "require"
	assert.Contains(t, cfg.DSN(), "sslmode=require")
}
