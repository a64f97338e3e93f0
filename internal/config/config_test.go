package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TASKBIT_API_URL", "TASKBIT_REQUEST_TIMEOUT", "TASKBIT_MUTATION_TIMEOUT",
		"TASKBIT_DATA_DIR", "TASKBIT_DB_PATH", "TASKBIT_REMEMBER_DURATION", "TASKBIT_DEBUG",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TASKBIT_DATA_DIR", "/tmp/taskbit-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, 30*time.Second, cfg.API.MutationTimeout)
	assert.Equal(t, 30*24*time.Hour, cfg.Session.RememberDuration)
	assert.Equal(t, filepath.Join("/tmp/taskbit-test", "taskbit.db"), cfg.Storage.DBPath)
	assert.False(t, cfg.Debug)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TASKBIT_API_URL", "https://api.taskbit.example")
	t.Setenv("TASKBIT_MUTATION_TIMEOUT", "5s")
	t.Setenv("TASKBIT_DB_PATH", "/var/lib/taskbit.db")
	t.Setenv("TASKBIT_REMEMBER_DURATION", "24h")
	t.Setenv("TASKBIT_DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.taskbit.example", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.MutationTimeout)
	assert.Equal(t, "/var/lib/taskbit.db", cfg.Storage.DBPath)
	assert.Equal(t, 24*time.Hour, cfg.Session.RememberDuration)
	assert.True(t, cfg.Debug)
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("TASKBIT_REQUEST_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.API.RequestTimeout)
}

func TestValidate(t *testing.T) {
	valid := Config{
		API:     APIConfig{BaseURL: "http://localhost:8080", RequestTimeout: time.Second, MutationTimeout: time.Second},
		Storage: StorageConfig{DBPath: "x.db"},
		Session: SessionConfig{RememberDuration: time.Hour},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no scheme", func(c *Config) { c.API.BaseURL = "localhost:8080" }},
		{"ftp", func(c *Config) { c.API.BaseURL = "ftp://host" }},
		{"zero timeout", func(c *Config) { c.API.RequestTimeout = 0 }},
		{"negative mutation timeout", func(c *Config) { c.API.MutationTimeout = -time.Second }},
		{"zero remember", func(c *Config) { c.Session.RememberDuration = 0 }},
		{"empty db path", func(c *Config) { c.Storage.DBPath = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_RejectsInvalidURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("TASKBIT_API_URL", "::not a url")

	_, err := Load()
	assert.Error(t, err)
}
