// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type StoreConfig struct {
	// Filename of the local SQLite store (tokens, preferences, mock theme).
	Filename string `yaml:"filename"`
}

type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	// Mock routes API requests through the in-process gateway instead of a
	// real backend.
	Mock         bool `yaml:"mock"`
	MockDelayMin int  `yaml:"mock_delay_min_ms"`
	MockDelayMax int  `yaml:"mock_delay_max_ms"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		BaseURL     string `yaml:"base_url"`
	} `yaml:"app"`

	API APIConfig `yaml:"api"`

	Store StoreConfig `yaml:"store"`
}

// Timeout returns the API client timeout.
func (a APIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// MockDelayRange returns the simulated latency bounds for mock mode.
func (a APIConfig) MockDelayRange() (time.Duration, time.Duration) {
	min := time.Duration(a.MockDelayMin) * time.Millisecond
	max := time.Duration(a.MockDelayMax) * time.Millisecond
	if max <= 0 {
		return 200 * time.Millisecond, 500 * time.Millisecond
	}
	return min, max
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Read and parse YAML config
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Environment overrides for deploy-time values
	if v := os.Getenv("QTSTORE_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("QTSTORE_STORE_FILE"); v != "" {
		cfg.Store.Filename = v
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base URL is required")
	}
	if c.Store.Filename == "" {
		return fmt.Errorf("store filename is required")
	}
	if c.API.MockDelayMin > c.API.MockDelayMax {
		return fmt.Errorf("mock delay bounds are inverted")
	}
	return nil
}
