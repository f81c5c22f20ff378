package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.Server.URL)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "file", cfg.Log.Output)
	assert.Equal(t, filepath.Join(dir, "ragarctl.log"), cfg.Log.FilePath)
	assert.Equal(t, "datasets", cfg.Console.DefaultTab)
	assert.Equal(t, 100, cfg.Console.DiagnosticsLimit)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)

	content := `server:
  url: https://admin.ragar.io
  request_timeout: 10s
log:
  level: debug
  format: json
console:
  default_tab: games
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))
	t.Setenv("RAGAR_SERVER_URL", "https://staging.ragar.io")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://staging.ragar.io", cfg.Server.URL, "env overrides file")
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "games", cfg.Console.DefaultTab)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	t.Setenv(HomeEnv, t.TempDir())
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:  ServerConfig{URL: "http://x", RequestTimeout: time.Second, UploadTimeout: time.Second},
			Log:     LogConfig{Level: "info", Format: "text", Output: "stderr"},
			Console: ConsoleConfig{DefaultTab: "datasets", DiagnosticsLimit: 10},
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		errContains string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing url", func(c *Config) { c.Server.URL = "" }, "server.url"},
		{"zero timeout", func(c *Config) { c.Server.RequestTimeout = 0 }, "request_timeout"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log format"},
		{"file without path", func(c *Config) { c.Log.Output = "file" }, "file_path"},
		{"bad tab", func(c *Config) { c.Console.DefaultTab = "settings" }, "default_tab"},
		{"no diagnostics", func(c *Config) { c.Console.DiagnosticsLimit = 0 }, "diagnostics_limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}
