package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the flat gantt configuration
type Config struct {
	Version             string `json:"version"`
	ProjectID           string `json:"project_id,omitempty"`            // PROJ-XXX
	TimeScale           string `json:"time_scale,omitempty"`            // hour, day, week, month
	MinimumDurationDays int    `json:"minimum_duration_days,omitempty"` // resize floor, default 1
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:             "1",
		TimeScale:           "day",
		MinimumDurationDays: 1,
	}
}

// LoadConfig reads .gantt/config.json from the specified directory.
// Resolution order: cwd only (no home fallback).
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".gantt", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.TimeScale == "" {
		cfg.TimeScale = "day"
	}
	if cfg.MinimumDurationDays <= 0 {
		cfg.MinimumDurationDays = 1
	}
	return &cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	ganttDir := filepath.Join(dir, ".gantt")
	if err := os.MkdirAll(ganttDir, 0755); err != nil {
		return fmt.Errorf("failed to create .gantt dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(ganttDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
