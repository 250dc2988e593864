package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Backend kinds selectable with PROPERTY_BACKEND
const (
	BackendPostgres = "postgres"
	BackendAPI      = "api"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL   PostgreSQLConfig
	Server       ServerConfig
	Listing      ListingConfig
	Logging      LoggingConfig
	Backend      string
	BookingAPI   BookingAPIConfig
	Availability AvailabilityConfig
	Redis        RedisConfig
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // Full connection string, takes precedence over the fields below
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
	AutoMigrate        bool   // Create tables on startup
	SeedFile           string // JSON file of properties loaded on startup
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

// ListingConfig holds listing page configuration
type ListingConfig struct {
	PageSize      int
	MaxPageLabels int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// BookingAPIConfig holds the upstream booking API configuration
type BookingAPIConfig struct {
	BaseURL string
	Timeout int // Seconds
}

// AvailabilityConfig holds availability check configuration
type AvailabilityConfig struct {
	DebounceMs int
}

// RedisConfig holds the property list cache configuration
type RedisConfig struct {
	Addr      string // Empty disables the cache
	Password  string
	DB        int
	KeyPrefix string
	CacheTTL  int // Seconds
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "staybook"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
			AutoMigrate:        getEnvAsBool("PG_AUTO_MIGRATE", false),
			SeedFile:           getEnv("PG_SEED_FILE", ""),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods: getEnv("CORS_ALLOWED_METHODS", "GET,POST,OPTIONS"),
			AllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "Content-Type,Authorization,X-Request-ID"),
		},
		Listing: ListingConfig{
			PageSize:      getEnvAsInt("PROPERTIES_PER_PAGE", 6),
			MaxPageLabels: getEnvAsInt("MAX_PAGE_LABELS", 5),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Backend: strings.ToLower(getEnv("PROPERTY_BACKEND", BackendPostgres)),
		BookingAPI: BookingAPIConfig{
			BaseURL: getEnv("BOOKING_API_BASE", "http://localhost:3001"),
			Timeout: getEnvAsInt("BOOKING_API_TIMEOUT", 10),
		},
		Availability: AvailabilityConfig{
			DebounceMs: getEnvAsInt("AVAILABILITY_DEBOUNCE_MS", 500),
		},
		Redis: RedisConfig{
			Addr:      getEnv("REDIS_ADDR", ""),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getEnvAsInt("REDIS_DB", 0),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "staybook:"),
			CacheTTL:  getEnvAsInt("PROPERTY_CACHE_TTL", 60),
		},
	}

	if cfg.Backend != BackendPostgres && cfg.Backend != BackendAPI {
		return nil, fmt.Errorf("invalid PROPERTY_BACKEND %q: must be %q or %q", cfg.Backend, BackendPostgres, BackendAPI)
	}

	return cfg, nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// SplitList splits a comma separated setting into trimmed, non-empty parts
func SplitList(value string) []string {
	var parts []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Int("default", defaultValue).Msg("invalid integer setting, using default")
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Bool("default", defaultValue).Msg("invalid boolean setting, using default")
		return defaultValue
	}
	return value
}
