// Package config loads server configuration from an optional TOML file
// with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Defaults for everything that is not required.
const (
	DefaultAddr         = ":8099"
	DefaultDataDir      = "./data"
	DefaultNPSBaseURL   = "https://developer.nps.gov/api/v1"
	DefaultWeatherURL   = "https://api.weatherapi.com"
	DefaultSyncInterval = 15 * time.Minute
)

// Config holds the server configuration.
type Config struct {
	Addr    string `toml:"addr"`
	DataDir string `toml:"data_dir"`

	// BackendURL and BackendKey locate the remote auth/database service.
	// Both are required; the server refuses to start without them.
	BackendURL string `toml:"backend_url"`
	BackendKey string `toml:"backend_key"`

	NPSBaseURL string `toml:"nps_base_url"`
	NPSAPIKey  string `toml:"nps_api_key"`

	WeatherBaseURL string `toml:"weather_base_url"`
	WeatherAPIKey  string `toml:"weather_api_key"`
}

// Load reads the config file at path when it exists, applies environment
// overrides, and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Addr:           DefaultAddr,
		DataDir:        DefaultDataDir,
		NPSBaseURL:     DefaultNPSBaseURL,
		WeatherBaseURL: DefaultWeatherURL,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Optional file; env vars may carry everything.
		case err != nil:
			return nil, fmt.Errorf("reading config file: %w", err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	applyEnv(cfg)

	if cfg.BackendURL == "" {
		return nil, errors.New("backend URL is required (backend_url or PARK_EXPLORER_BACKEND_URL)")
	}
	if cfg.BackendKey == "" {
		return nil, errors.New("backend key is required (backend_key or PARK_EXPLORER_BACKEND_KEY)")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setFromEnv(&cfg.Addr, "PARK_EXPLORER_ADDR")
	setFromEnv(&cfg.DataDir, "PARK_EXPLORER_DATA_DIR")
	setFromEnv(&cfg.BackendURL, "PARK_EXPLORER_BACKEND_URL")
	setFromEnv(&cfg.BackendKey, "PARK_EXPLORER_BACKEND_KEY")
	setFromEnv(&cfg.NPSBaseURL, "PARK_EXPLORER_NPS_BASE_URL")
	setFromEnv(&cfg.NPSAPIKey, "PARK_EXPLORER_NPS_API_KEY")
	setFromEnv(&cfg.WeatherBaseURL, "PARK_EXPLORER_WEATHER_BASE_URL")
	setFromEnv(&cfg.WeatherAPIKey, "PARK_EXPLORER_WEATHER_API_KEY")
}

func setFromEnv(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

// DatabasePath returns the SQLite file location under the data directory.
func (c *Config) DatabasePath() string {
	return c.DataDir + "/park-explorer.db"
}
