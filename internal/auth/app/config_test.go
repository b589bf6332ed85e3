package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CLIENTHUB_SIGNING_SECRET", "0123456789abcdef0123456789abcdef")

	cfg := LoadConfig()
	require.NoError(t, cfg.Validate())

	require.Equal(t, "clienthub", cfg.Issuer)
	require.Equal(t, "clienthub-api", cfg.Audience)
	require.Equal(t, 15*time.Minute, cfg.AccessTTL)
	require.Equal(t, 48*time.Hour, cfg.RefreshTTL)
	require.Equal(t, 8, cfg.MinPasswordLen)
	require.Equal(t, "sqlite", cfg.DatabaseDriver)
	require.Equal(t, "clienthub.db", cfg.DatabaseDSN)
	require.Equal(t, 10, cfg.LoginAttemptsPerWindow)
	require.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("CLIENTHUB_SIGNING_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("CLIENTHUB_ISSUER", "my-issuer")
	t.Setenv("CLIENTHUB_ACCESS_TTL", "5m")
	t.Setenv("CLIENTHUB_REFRESH_TTL", "24h")
	t.Setenv("CLIENTHUB_MIN_PASSWORD_LEN", "12")
	t.Setenv("CLIENTHUB_DB_DRIVER", "postgres")
	t.Setenv("CLIENTHUB_DB_DSN", "postgres://localhost/clienthub")

	cfg := LoadConfig()
	require.Equal(t, "my-issuer", cfg.Issuer)
	require.Equal(t, 5*time.Minute, cfg.AccessTTL)
	require.Equal(t, 24*time.Hour, cfg.RefreshTTL)
	require.Equal(t, 12, cfg.MinPasswordLen)
	require.Equal(t, "postgres", cfg.DatabaseDriver)
	require.Equal(t, "postgres://localhost/clienthub", cfg.DatabaseDSN)
}

func TestLoadConfigDurationAsMinutes(t *testing.T) {
	t.Setenv("CLIENTHUB_ACCESS_TTL", "30")

	cfg := LoadConfig()
	require.Equal(t, 30*time.Minute, cfg.AccessTTL)
}

func TestValidateRequiresSecret(t *testing.T) {
	cfg := Config{}
	require.ErrorIs(t, cfg.Validate(), ErrMissingSigningSecret)
}
