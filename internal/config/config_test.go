package config

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PROPERTY_BACKEND", "")
	t.Setenv("PROPERTIES_PER_PAGE", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PG_DSN", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("PROPERTY_CACHE_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendPostgres, cfg.Backend)
	assert.Equal(t, 6, cfg.Listing.PageSize)
	assert.Equal(t, 5, cfg.Listing.MaxPageLabels)
	assert.Equal(t, 500, cfg.Availability.DebounceMs)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 60, cfg.Redis.CacheTTL)
	assert.Equal(t, "host=localhost port=5432 user=postgres password= dbname=staybook sslmode=disable", cfg.GetPostgreSQLDSN())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PROPERTY_BACKEND", "API")
	t.Setenv("BOOKING_API_BASE", "https://api.example.test")
	t.Setenv("PROPERTIES_PER_PAGE", "12")
	t.Setenv("MAX_PAGE_LABELS", "not-a-number")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/stays")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("PROPERTY_CACHE_TTL", "300")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendAPI, cfg.Backend)
	assert.Equal(t, "https://api.example.test", cfg.BookingAPI.BaseURL)
	assert.Equal(t, 12, cfg.Listing.PageSize)
	assert.Equal(t, 5, cfg.Listing.MaxPageLabels)
	assert.Equal(t, "postgres://u:p@db:5432/stays", cfg.GetPostgreSQLDSN())
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 300, cfg.Redis.CacheTTL)
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Setenv("PROPERTY_BACKEND", "mongo")

	_, err := Load()
	assert.ErrorContains(t, err, "PROPERTY_BACKEND")
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"GET", "POST", "OPTIONS"}, SplitList("GET, POST,,OPTIONS "))
	assert.Nil(t, SplitList(""))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggingConfig{Level: "warn", Format: "json"}, &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Str("component", "test").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "test", entry["component"])
}

func TestNewLogger_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggingConfig{Level: "chatty"}, &buf)

	logger.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())

	logger.Info().Msg("shown")
	assert.NotZero(t, buf.Len())
}
