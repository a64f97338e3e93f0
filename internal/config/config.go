package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	API     APIConfig
	Storage StorageConfig
	Session SessionConfig
	Debug   bool
}

type APIConfig struct {
	BaseURL         string
	RequestTimeout  time.Duration
	MutationTimeout time.Duration
}

type StorageConfig struct {
	DataDir string
	DBPath  string
}

type SessionConfig struct {
	RememberDuration time.Duration
}

func Load() (*Config, error) {
	dataDir := getEnv("TASKBIT_DATA_DIR", defaultDataDir())

	cfg := &Config{
		API: APIConfig{
			BaseURL:         getEnv("TASKBIT_API_URL", "http://localhost:8080"),
			RequestTimeout:  getEnvAsDuration("TASKBIT_REQUEST_TIMEOUT", 15*time.Second),
			MutationTimeout: getEnvAsDuration("TASKBIT_MUTATION_TIMEOUT", 30*time.Second),
		},
		Storage: StorageConfig{
			DataDir: dataDir,
			DBPath:  getEnv("TASKBIT_DB_PATH", filepath.Join(dataDir, "taskbit.db")),
		},
		Session: SessionConfig{
			RememberDuration: getEnvAsDuration("TASKBIT_REMEMBER_DURATION", 30*24*time.Hour),
		},
		Debug: getEnvAsBool("TASKBIT_DEBUG", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the client cannot work with
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid TASKBIT_API_URL %q", c.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("TASKBIT_API_URL must use http or https, got %q", u.Scheme)
	}
	if c.API.RequestTimeout <= 0 {
		return fmt.Errorf("TASKBIT_REQUEST_TIMEOUT must be positive")
	}
	if c.API.MutationTimeout <= 0 {
		return fmt.Errorf("TASKBIT_MUTATION_TIMEOUT must be positive")
	}
	if c.Session.RememberDuration <= 0 {
		return fmt.Errorf("TASKBIT_REMEMBER_DURATION must be positive")
	}
	if c.Storage.DBPath == "" {
		return fmt.Errorf("database path is empty")
	}
	return nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskbit"
	}
	return filepath.Join(home, ".taskbit")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	// Try parsing as duration string (e.g., "15s", "720h")
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}

	return defaultValue
}
