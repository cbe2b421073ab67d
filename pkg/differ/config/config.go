// Package config loads sprite-differ configuration from a YAML file and
// environment variables, with XDG-compliant default locations.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// appName is the directory name used under XDG base directories.
const appName = "sprite-differ"

// RotationConfig configures log file rotation.
type RotationConfig struct {
	MaxSize    string `mapstructure:"max_size"`
	MaxAge     int    `mapstructure:"max_age"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level      string            `mapstructure:"level"`
	Path       string            `mapstructure:"path"`
	Rotation   RotationConfig    `mapstructure:"rotation"`
	Components map[string]string `mapstructure:"components"`
}

// StoreConfig configures the checkpoint store.
type StoreConfig struct {
	Path          string `mapstructure:"path"`
	RetentionDays int    `mapstructure:"retention_days"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms"`
}

// Config represents the application configuration.
type Config struct {
	Exclude     []string      `mapstructure:"exclude"`
	HashWorkers int           `mapstructure:"hash_workers"`
	MaxHashSize string        `mapstructure:"max_hash_size"`
	Store       StoreConfig   `mapstructure:"store"`
	Watch       WatchConfig   `mapstructure:"watch"`
	Logging     LoggingConfig `mapstructure:"logging"`
}

// Load loads configuration from file and environment variables.
// Config file locations (in order of precedence):
//   - $XDG_CONFIG_HOME/sprite-differ/config.yaml
//   - $HOME/.config/sprite-differ/config.yaml
//
// Environment variables are prefixed with SPRITE_DIFFER_
// (e.g., SPRITE_DIFFER_MAX_HASH_SIZE).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		v.AddConfigPath(filepath.Join(xdgConfigHome, appName))
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	v.AddConfigPath(filepath.Join(homeDir, ".config", appName))

	v.SetEnvPrefix("SPRITE_DIFFER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is acceptable; we use defaults.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Store.Path, err = ExpandPath(cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults registers all default values on a viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("exclude", DefaultExclusions)
	v.SetDefault("hash_workers", DefaultHashWorkers)
	v.SetDefault("max_hash_size", DefaultMaxHashSize)
	v.SetDefault("store.path", DefaultStorePath())
	v.SetDefault("store.retention_days", DefaultRetentionDays)
	v.SetDefault("watch.debounce_ms", DefaultWatchDebounce)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.path", "") // Empty means use default log path
	v.SetDefault("logging.rotation.max_size", "10MB")
	v.SetDefault("logging.rotation.max_age", 30)
	v.SetDefault("logging.rotation.max_backups", 5)
	v.SetDefault("logging.components", map[string]string{
		"scanner": "info",
		"compare": "info",
		"watcher": "warn",
		"store":   "info",
	})
}

// DefaultStorePath returns the default checkpoint store location under
// XDG data.
func DefaultStorePath() string {
	return filepath.Join(xdg.DataHome, appName, "store")
}

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", appName), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, path[1:]), nil
}

// WriteDefault writes a default config file if none exists.
// Returns nil if a config file already exists.
func WriteDefault() error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}

	configDir, err := ConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	defaultConfig := fmt.Sprintf(`# sprite-differ configuration

# Paths to exclude from checkpoint scans
exclude:
  - .git
  - node_modules
  - "*.swp"

# Number of concurrent hashing workers (0 = auto)
hash_workers: %d

# Skip content hashing for files larger than this
max_hash_size: %s

# Checkpoint store settings
store:
  path: %s
  retention_days: %d

# Watch mode settings
watch:
  debounce_ms: %d

# Logging configuration
logging:
  # Log level: debug, info, warn, error
  level: info
  # Log file path (empty means use default under $XDG_STATE_HOME)
  path: ""
  rotation:
    max_size: 10MB
    max_age: 30       # days
    max_backups: 5
  # Per-component log levels
  components:
    scanner: info
    compare: info
    watcher: warn
    store: info
`, DefaultHashWorkers, DefaultMaxHashSize, DefaultStorePath(), DefaultRetentionDays, DefaultWatchDebounce)

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}

	return nil
}
