package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	Configure(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, Config{
		Address:         "localhost:8080",
		SearchLimit:     5,
		PerPage:         30,
		ShutdownTimeout: 30 * time.Second,
		LogLevel:        "info",
		LogFormat:       "text",
		APIURL:          "http://localhost:8080",
		Debounce:        300 * time.Millisecond,
	}, cfg)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GITHUB_USER_BROWSER_SEARCH_LIMIT", "10")
	t.Setenv("GITHUB_USER_BROWSER_DEBOUNCE", " 150ms ")
	t.Setenv("GITHUB_USER_BROWSER_FAKE_UPSTREAM", "true")

	v := newViper()
	v.Set("host", "github.example.com")
	v.Set("per-page", 50)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.SearchLimit)
	assert.Equal(t, 150*time.Millisecond, cfg.Debounce)
	assert.True(t, cfg.FakeUpstream)
	assert.Equal(t, "github.example.com", cfg.GitHubHost)
	assert.Equal(t, 50, cfg.PerPage)
}

func TestLoad_HostFromEnv(t *testing.T) {
	t.Setenv("GITHUB_USER_BROWSER_HOST", "ghe.example.com")

	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, "ghe.example.com", cfg.GitHubHost)
}

func TestLoad_InvalidDuration(t *testing.T) {
	v := newViper()
	v.Set("debounce", "soon")

	_, err := Load(v)
	assert.ErrorContains(t, err, "failed to decode configuration")
}

func TestValidate(t *testing.T) {
	valid := Config{Address: "localhost:8080", SearchLimit: 5, PerPage: 30, LogFormat: "text"}

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectedErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:        "empty address",
			mutate:      func(c *Config) { c.Address = "" },
			expectedErr: "address must not be empty",
		},
		{
			name:        "zero search limit",
			mutate:      func(c *Config) { c.SearchLimit = 0 },
			expectedErr: "search-limit must be positive, got 0",
		},
		{
			name:        "per page above the GitHub maximum",
			mutate:      func(c *Config) { c.PerPage = 101 },
			expectedErr: "per-page must be between 1 and 100, got 101",
		},
		{
			name:        "negative debounce",
			mutate:      func(c *Config) { c.Debounce = -time.Second },
			expectedErr: "debounce must not be negative, got -1s",
		},
		{
			name:        "negative shutdown timeout",
			mutate:      func(c *Config) { c.ShutdownTimeout = -time.Second },
			expectedErr: "shutdown-timeout must not be negative, got -1s",
		},
		{
			name:        "unknown log format",
			mutate:      func(c *Config) { c.LogFormat = "xml" },
			expectedErr: `log-format must be text or json, got "xml"`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)

			err := cfg.Validate()

			if tc.expectedErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tc.expectedErr)
		})
	}
}

func TestValidate_ReportsAllErrors(t *testing.T) {
	err := Config{}.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "address must not be empty")
	assert.Contains(t, err.Error(), "search-limit must be positive")
	assert.Contains(t, err.Error(), "per-page must be between 1 and 100")
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GITHUB_USER_BROWSER_PER_PAGE=42\n"), 0600))
	t.Cleanup(func() { _ = os.Unsetenv("GITHUB_USER_BROWSER_PER_PAGE") })

	require.NoError(t, LoadDotEnv(path))

	cfg, err := Load(newViper())
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.PerPage)
}

func TestLoadDotEnv_MissingFileIsIgnored(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
