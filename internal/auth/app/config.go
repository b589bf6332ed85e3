package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	SigningSecret string // Required: symmetric HS256 secret for access tokens
	Issuer        string // Issuer claim for tokens (default: clienthub)
	Audience      string // Audience claim for tokens (default: clienthub-api)

	AccessTTL      time.Duration // Access-token lifetime (default: 15m)
	RefreshTTL     time.Duration // Refresh-token lifetime, fixed window (default: 48h)
	MinPasswordLen int           // Minimum password length on registration (default: 8)

	DatabaseDriver string // "sqlite" or "postgres" (default: sqlite)
	DatabaseDSN    string // Driver-specific DSN (default: ./clienthub.db for sqlite)

	AdminEmail    string // Optional: seeded admin account email
	AdminPassword string // Optional: seeded admin account password

	LoginAttemptsPerWindow int           // Login attempts allowed per window per email (default: 10)
	LoginWindow            time.Duration // Login throttle window (default: 15m)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// ErrMissingSigningSecret means CLIENTHUB_SIGNING_SECRET was not provided.
var ErrMissingSigningSecret = errors.New("signing secret is required")

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment variables
// win over .env values.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		SigningSecret: os.Getenv("CLIENTHUB_SIGNING_SECRET"),
		Issuer:        getEnvOrDefault("CLIENTHUB_ISSUER", "clienthub"),
		Audience:      getEnvOrDefault("CLIENTHUB_AUDIENCE", "clienthub-api"),

		AccessTTL:      getEnvDurationOrDefault("CLIENTHUB_ACCESS_TTL", 15*time.Minute),
		RefreshTTL:     getEnvDurationOrDefault("CLIENTHUB_REFRESH_TTL", 48*time.Hour),
		MinPasswordLen: getEnvIntOrDefault("CLIENTHUB_MIN_PASSWORD_LEN", 8),

		DatabaseDriver: getEnvOrDefault("CLIENTHUB_DB_DRIVER", "sqlite"),
		DatabaseDSN:    getEnvOrDefault("CLIENTHUB_DB_DSN", "clienthub.db"),

		AdminEmail:    os.Getenv("CLIENTHUB_ADMIN_EMAIL"),
		AdminPassword: os.Getenv("CLIENTHUB_ADMIN_PASSWORD"),

		LoginAttemptsPerWindow: getEnvIntOrDefault("CLIENTHUB_LOGIN_ATTEMPTS", 10),
		LoginWindow:            getEnvDurationOrDefault("CLIENTHUB_LOGIN_WINDOW", 15*time.Minute),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Validate checks the invariants that cannot default sensibly.
func (cfg Config) Validate() error {
	if cfg.SigningSecret == "" {
		return ErrMissingSigningSecret
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are taken as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
