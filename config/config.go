// Package config loads and saves the application configuration as
// JSON under ~/.config/lp.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sersorrel/lp/sched"
)

// Config is the main configuration structure.
type Config struct {
	// Port is matched case-insensitively against MIDI port names.
	Port string `json:"port"`
	// NotifyAddr is the websocket listen address for external
	// notifiers, empty to disable.
	NotifyAddr string `json:"notifyAddr,omitempty"`
	// WatchMedia runs a playerctl status watcher when true.
	WatchMedia bool          `json:"watchMedia,omitempty"`
	Schedules  []sched.Entry `json:"schedules,omitempty"`
	LogLevel   string        `json:"logLevel,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:       "LPMiniMK3 DA",
		NotifyAddr: "127.0.0.1:7788",
		WatchMedia: true,
		LogLevel:   "info",
	}
}

// ConfigDir returns the config directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "lp"), nil
}

// ConfigPath returns the full path to config.json.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
