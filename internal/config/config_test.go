package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFailsWithoutBackendURL(t *testing.T) {
	t.Setenv("PARK_EXPLORER_BACKEND_URL", "")
	t.Setenv("PARK_EXPLORER_BACKEND_KEY", "")

	_, err := Load("")
	require.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr = ":9000"
backend_url = "https://backend.example"
backend_key = "anon-key"
nps_api_key = "nps-key"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.Addr)
	require.Equal(t, "https://backend.example", cfg.BackendURL)
	require.Equal(t, "anon-key", cfg.BackendKey)
	require.Equal(t, "nps-key", cfg.NPSAPIKey)
	require.Equal(t, DefaultDataDir, cfg.DataDir)
	require.Equal(t, DefaultNPSBaseURL, cfg.NPSBaseURL)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
backend_url = "https://file.example"
backend_key = "file-key"
`), 0o644))

	t.Setenv("PARK_EXPLORER_BACKEND_URL", "https://env.example")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://env.example", cfg.BackendURL)
	require.Equal(t, "file-key", cfg.BackendKey)
}

func TestLoadFromEnvOnly(t *testing.T) {
	t.Setenv("PARK_EXPLORER_BACKEND_URL", "https://env.example")
	t.Setenv("PARK_EXPLORER_BACKEND_KEY", "env-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	require.Equal(t, "https://env.example", cfg.BackendURL)
	require.Equal(t, "env-key", cfg.BackendKey)
}
