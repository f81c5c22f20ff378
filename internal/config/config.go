package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override, e.g. RAGAR_SERVER_URL
	EnvPrefix = "RAGAR"
	// HomeEnv overrides the configuration directory
	HomeEnv = "RAGAR_HOME"

	defaultDirName = ".ragarctl"
)

// Config is the ragarctl configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Console ConsoleConfig `mapstructure:"console"`
}

// ServerConfig locates the admin API
type ServerConfig struct {
	URL            string        `mapstructure:"url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"` // upper bound for one API call
	UploadTimeout  time.Duration `mapstructure:"upload_timeout"`
}

// LogConfig configures the slog handler
type LogConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	Output    string `mapstructure:"output"`
	FilePath  string `mapstructure:"file_path"`
	AddSource bool   `mapstructure:"add_source"`
}

// ConsoleConfig tunes the interactive console
type ConsoleConfig struct {
	DefaultTab       string `mapstructure:"default_tab"`
	DiagnosticsLimit int    `mapstructure:"diagnostics_limit"`
}

// Dir returns the configuration directory ($RAGAR_HOME or ~/.ragarctl)
func Dir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, defaultDirName), nil
}

// Load loads the configuration. An empty configPath reads config.yaml from Dir()
// when present; a missing default file is not an error.
func Load(configPath string) (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, dir)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault("server.url", "http://localhost:8080")
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.upload_timeout", 5*time.Minute)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "file")
	v.SetDefault("log.file_path", filepath.Join(dir, "ragarctl.log"))
	v.SetDefault("log.add_source", false)

	v.SetDefault("console.default_tab", "datasets")
	v.SetDefault("console.diagnostics_limit", 100)
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server.url is required")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server.request_timeout must be positive, got %s", c.Server.RequestTimeout)
	}
	if c.Server.UploadTimeout <= 0 {
		return fmt.Errorf("server.upload_timeout must be positive, got %s", c.Server.UploadTimeout)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("invalid log format: %s, must be 'json' or 'text'", c.Log.Format)
	}

	switch c.Log.Output {
	case "stdout", "stderr":
	case "file":
		if c.Log.FilePath == "" {
			return fmt.Errorf("log.file_path is required when log.output is 'file'")
		}
	default:
		return fmt.Errorf("invalid log output: %s", c.Log.Output)
	}

	switch c.Console.DefaultTab {
	case "datasets", "pipelines", "analytics", "games", "providers":
	default:
		return fmt.Errorf("invalid console.default_tab: %s", c.Console.DefaultTab)
	}
	if c.Console.DiagnosticsLimit < 1 {
		return fmt.Errorf("console.diagnostics_limit must be at least 1")
	}

	return nil
}
