package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "inventory")
	t.Setenv("DB_NAME", "inventory")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5*time.Minute, cfg.Worker.SweepInterval)
	assert.Equal(t, 30*time.Minute, cfg.Worker.MaxIdle)
	assert.Equal(t, 10, cfg.Report.ListLimit)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.False(t, cfg.S3.Enabled())
	assert.Equal(t, []string{"localhost:3000", "127.0.0.1:3000"}, cfg.CORSHosts)
	assert.Equal(t, 5, cfg.SignInAttempts)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("APP_TIMEZONE", "America/Mexico_City")
	t.Setenv("REPORT_LIST_LIMIT", "25")
	t.Setenv("S3_BUCKET", "reports")
	t.Setenv("CORS_ALLOWED_HOSTS", " App.Example.com, ,shop.example.com:8443")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "America/Mexico_City", cfg.Location.String())
	assert.Equal(t, 25, cfg.Report.ListLimit)
	assert.True(t, cfg.S3.Enabled())
	assert.Equal(t, []string{"app.example.com", "shop.example.com:8443"}, cfg.CORSHosts)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad duration", "SESSION_TTL", "soon"},
		{"negative duration", "WORKSPACE_MAX_IDLE", "-1m"},
		{"bad timezone", "APP_TIMEZONE", "Mars/Olympus"},
		{"zero list limit", "REPORT_LIST_LIMIT", "0"},
		{"negative sign-in attempts", "SIGNIN_ATTEMPTS_PER_MINUTE", "-3"},
		{"missing jwt secret", "JWT_SECRET", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
