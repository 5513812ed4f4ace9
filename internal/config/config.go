// Package config loads and saves application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the full Timebox configuration
type Config struct {
	Database      DatabaseConfig `json:"database"`
	Log           LogConfig      `json:"log"`
	Notifications NotifyConfig   `json:"notifications"`
	UI            UIConfig       `json:"ui"`
}

// DatabaseConfig contains persistence settings
type DatabaseConfig struct {
	Path string `json:"path"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Path  string `json:"path"`
	Level string `json:"level"`
}

// NotifyConfig contains notification settings
type NotifyConfig struct {
	Sound          bool `json:"sound"`
	CompletedTask  bool `json:"completedTask"`
	TimerCompleted bool `json:"timerCompleted"`
}

// UIConfig contains presentation settings
type UIConfig struct {
	ShowCompleted bool `json:"showCompleted"`
	ToastSeconds  int  `json:"toastSeconds"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(homeDir, ".timebox", "timebox.db"),
		},
		Log: LogConfig{
			Path:  filepath.Join(homeDir, ".timebox", "timebox.log"),
			Level: "info",
		},
		Notifications: NotifyConfig{
			Sound:          true,
			CompletedTask:  true,
			TimerCompleted: true,
		},
		UI: UIConfig{
			ShowCompleted: true,
			ToastSeconds:  3,
		},
	}
}

// LoadConfig loads configuration with priority:
// 1. .timebox.json in the given directory
// 2. Defaults
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".timebox.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse .timebox.json: %w", err)
	}
	return MergeWithDefaults(&cfg), nil
}

// SaveConfig saves configuration to the specified path
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	if cfg.Database.Path == "" {
		cfg.Database.Path = defaults.Database.Path
	}

	if cfg.Log.Path == "" {
		cfg.Log.Path = defaults.Log.Path
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}

	if cfg.UI.ToastSeconds == 0 {
		cfg.UI.ToastSeconds = defaults.UI.ToastSeconds
	}

	return cfg
}

// Load is a convenience function that loads config from the user's home
// directory, falling back to the current directory.
func Load() (*Config, error) {
	if home, err := os.UserHomeDir(); err == nil {
		if _, statErr := os.Stat(filepath.Join(home, ".timebox.json")); statErr == nil {
			return LoadConfig(home)
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadConfig(cwd)
}
