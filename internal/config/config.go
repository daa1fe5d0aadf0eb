// Package config loads and saves the application's single JSON config
// file, which records the absolute path to the library root.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MimeLyc/flicks/internal/atomicfile"
	"github.com/robfig/cron/v3"
)

const appName = "flicks"

// Config is the on-disk shape written by `flicks init`. RefreshSchedule is
// an optional standard cron expression; empty disables scheduled refresh.
type Config struct {
	RootPath        string `json:"root_path"`
	RefreshSchedule string `json:"catalog_refresh_schedule,omitempty"`
}

// DefaultPath returns $HOME/.config/<appname>/config.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName, "config.json"), nil
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	if c.RootPath == "" {
		return fmt.Errorf("root_path is required")
	}
	if !filepath.IsAbs(c.RootPath) {
		return fmt.Errorf("root_path must be an absolute path, got %q", c.RootPath)
	}
	if c.RefreshSchedule != "" {
		if _, err := cron.ParseStandard(c.RefreshSchedule); err != nil {
			return fmt.Errorf("invalid catalog_refresh_schedule: %w", err)
		}
	}
	return nil
}

// Save atomically writes cfg to path, creating parent directories as needed.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	content, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	content = append(content, '\n')

	return atomicfile.Write(path, content, 0o600)
}
