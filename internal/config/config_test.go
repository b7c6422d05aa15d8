package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, defaultAllowedOrigins, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_ProductionLogsJSON(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	t.Setenv("LOG_FORMAT", "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)

	t.Setenv("LOG_FORMAT", "text")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_OverridesFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example.com, http://localhost:5173 ,")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("OTEL_ENABLED", "TRUE")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, []string{"https://shop.example.com", "http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 2.5, cfg.RateLimit.RPS)
	assert.True(t, cfg.Telemetry.Enabled)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Environment: "development",
			Database:    DatabaseConfig{Driver: DriverPostgres},
			CORS:        CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
			RateLimit:   RateLimitConfig{Enabled: true, RPS: 1, Burst: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }, wantErr: true},
		{name: "memory in production", mutate: func(c *Config) {
			c.Environment = "production"
			c.Database.Driver = DriverMemory
		}, wantErr: true},
		{name: "production without password", mutate: func(c *Config) { c.Environment = "production" }, wantErr: true},
		{name: "production with url", mutate: func(c *Config) {
			c.Environment = "production"
			c.Database.URL = "postgres://u:p@db/shop"
		}},
		{name: "origin without scheme", mutate: func(c *Config) {
			c.CORS.AllowedOrigins = []string{"localhost:3000"}
		}, wantErr: true},
		{name: "no origins", mutate: func(c *Config) { c.CORS.AllowedOrigins = nil }, wantErr: true},
		{name: "zero burst", mutate: func(c *Config) { c.RateLimit.Burst = 0 }, wantErr: true},
		{name: "zero burst but disabled", mutate: func(c *Config) {
			c.RateLimit.Enabled = false
			c.RateLimit.Burst = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
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

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "shop", Password: "secret", Database: "storefront", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=shop password=secret dbname=storefront sslmode=disable", d.DSN())

	d.URL = "postgres://shop:secret@db:5432/storefront"
	assert.Equal(t, "postgres://shop:secret@db:5432/storefront", d.DSN())
}
