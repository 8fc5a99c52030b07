package config_test

import (
	"testing"

	"github.com/example/gantt/internal/config"
)

func TestSaveAndLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.ProjectID = "PROJ-001"
	cfg.TimeScale = "week"
	cfg.MinimumDurationDays = 2

	if err := config.SaveConfig(dir, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := config.LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.ProjectID != "PROJ-001" || loaded.TimeScale != "week" || loaded.MinimumDurationDays != 2 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	if _, err := config.LoadConfig(t.TempDir()); err == nil {
		t.Error("expected error when no config exists")
	}
}

func TestLoadConfig_FillsDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := config.SaveConfig(dir, &config.Config{Version: "1"}); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := config.LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.TimeScale != "day" {
		t.Errorf("expected default scale 'day', got %q", loaded.TimeScale)
	}
	if loaded.MinimumDurationDays != 1 {
		t.Errorf("expected default minimum duration 1, got %d", loaded.MinimumDurationDays)
	}
}
