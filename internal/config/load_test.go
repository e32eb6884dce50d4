package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv sets environment variables for the duration of the test.
func setupEnv(t *testing.T, envVars map[string]string) {
	t.Helper()
	for name, value := range envVars {
		t.Setenv(name, value)
	}
}

// isolated returns options that ignore any config.yaml or .env in the
// package directory.
func isolated(t *testing.T) Options {
	dir := t.TempDir()
	return Options{
		ConfigPaths: []string{dir},
		EnvFiles:    []string{filepath.Join(dir, ".env")},
	}
}

// TestLoadDefaults verifies the defaults applied when nothing is configured.
func TestLoadDefaults(t *testing.T) {
	setupEnv(t, map[string]string{
		"SCRY_SERVER_PORT":      "",
		"SCRY_SERVER_LOG_LEVEL": "",
		"SCRY_DATA_DIR":         "",
	})

	cfg, err := LoadWithOptions(isolated(t))

	require.NoError(t, err, "LoadWithOptions() should not return an error with default values")
	require.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.Server.Port, "Default server port should be 8080")
	assert.Equal(t, "info", cfg.Server.LogLevel, "Default log level should be 'info'")
	assert.Equal(t, "flashcard-data", cfg.Data.Dir)
	assert.Equal(t, "sets-metadata.json", cfg.Data.CatalogFile)
	assert.Equal(t, 1000, cfg.Session.MaxSessions)
	assert.Equal(t, uint64(0), cfg.Session.ShuffleSeed)
	assert.Equal(t, 30*time.Minute, cfg.Session.IdleTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Watch.Enabled)
	assert.Equal(t, 100, cfg.Watch.DebounceMS)
}

// TestLoadFromEnv verifies that values are read from environment variables.
func TestLoadFromEnv(t *testing.T) {
	setupEnv(t, map[string]string{
		"SCRY_SERVER_PORT":          "9090",
		"SCRY_SERVER_LOG_LEVEL":     "debug",
		"SCRY_DATA_DIR":             "/srv/sets",
		"SCRY_DATA_CATALOG_FILE":    "catalog.json",
		"SCRY_SESSION_MAX_SESSIONS": "5",
		"SCRY_SESSION_SHUFFLE_SEED": "42",
		"SCRY_SESSION_IDLE_TIMEOUT": "45m",
		"SCRY_CORS_ALLOWED_ORIGINS": "https://a.example,https://b.example",
		"SCRY_WATCH_ENABLED":        "true",
		"SCRY_WATCH_DEBOUNCE_MS":    "250",
	})

	cfg, err := LoadWithOptions(isolated(t))

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port, "Server port should be loaded from environment variables")
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "/srv/sets", cfg.Data.Dir)
	assert.Equal(t, "catalog.json", cfg.Data.CatalogFile)
	assert.Equal(t, 5, cfg.Session.MaxSessions)
	assert.Equal(t, uint64(42), cfg.Session.ShuffleSeed)
	assert.Equal(t, 45*time.Minute, cfg.Session.IdleTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Watch.Enabled)
	assert.Equal(t, 250, cfg.Watch.DebounceMS)
}

func TestLoadFromFiles(t *testing.T) {
	opts := isolated(t)
	dir := opts.ConfigPaths[0]

	yaml := "server:\n  port: 7070\n  log_level: warn\ndata:\n  base_url: https://cards.example/data\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	require.NoError(t, os.WriteFile(opts.EnvFiles[0], []byte("SCRY_SERVER_PORT=6060\n"), 0o644))

	// Ensure the variable is restored to unset after godotenv sets it.
	t.Setenv("SCRY_SERVER_PORT", "")
	require.NoError(t, os.Unsetenv("SCRY_SERVER_PORT"))

	cfg, err := LoadWithOptions(opts)

	require.NoError(t, err)
	assert.Equal(t, 6060, cfg.Server.Port, ".env should take precedence over config.yaml")
	assert.Equal(t, "warn", cfg.Server.LogLevel)
	assert.Equal(t, "https://cards.example/data", cfg.Data.BaseURL)
}

func TestLoadMalformedConfigFile(t *testing.T) {
	opts := isolated(t)
	path := filepath.Join(opts.ConfigPaths[0], "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o644))

	cfg, err := LoadWithOptions(opts)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
	assert.Nil(t, cfg)
}

// TestLoadValidationErrors verifies that the Load function correctly validates the configuration.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name:    "Invalid port number",
			envVars: map[string]string{"SCRY_SERVER_PORT": "999999"},
		},
		{
			name:    "Invalid log level",
			envVars: map[string]string{"SCRY_SERVER_LOG_LEVEL": "invalid-level"},
		},
		{
			name:    "Catalog file without json suffix",
			envVars: map[string]string{"SCRY_DATA_CATALOG_FILE": "catalog.yaml"},
		},
		{
			name:    "Invalid base URL",
			envVars: map[string]string{"SCRY_DATA_BASE_URL": "not a url"},
		},
		{
			name:    "Negative session limit",
			envVars: map[string]string{"SCRY_SESSION_MAX_SESSIONS": "-1"},
		},
		{
			name:    "Debounce too long",
			envVars: map[string]string{"SCRY_WATCH_DEBOUNCE_MS": "120000"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setupEnv(t, tc.envVars)

			cfg, err := LoadWithOptions(isolated(t))

			require.Error(t, err, "LoadWithOptions() should return an error with invalid configuration")
			assert.Contains(t, err.Error(), "validation failed")
			assert.Nil(t, cfg, "Config should be nil when an error occurs")
		})
	}
}
