package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewDefault(t *testing.T) {
	cfg := NewDefault()

	if cfg.Global.LogLevel != "INFO" {
		t.Errorf("Global.LogLevel = %s, want INFO", cfg.Global.LogLevel)
	}
	if cfg.Cache.CapacitySize != 10000 {
		t.Errorf("Cache.CapacitySize = %d, want 10000", cfg.Cache.CapacitySize)
	}
	if cfg.Cache.PageSize != 4096 {
		t.Errorf("Cache.PageSize = %d, want 4096", cfg.Cache.PageSize)
	}
	if cfg.NHit.TriggerThreshold != 80.0 {
		t.Errorf("NHit.TriggerThreshold = %v, want 80.0", cfg.NHit.TriggerThreshold)
	}
	if cfg.NHit.InsertionThreshold != 2 {
		t.Errorf("NHit.InsertionThreshold = %d, want 2", cfg.NHit.InsertionThreshold)
	}
	if cfg.NHit.TrackingRatio != 2 {
		t.Errorf("NHit.TrackingRatio = %d, want 2", cfg.NHit.TrackingRatio)
	}
	if cfg.Monitoring.Metrics.Enabled {
		t.Error("Monitoring.Metrics.Enabled should default to false")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Configuration)
		wantErr bool
		errMsg  string
	}{
		{"valid config", func(*Configuration) {}, false, ""},
		{"non-positive capacity", func(c *Configuration) { c.Cache.CapacitySize = 0 }, true, "capacity must be greater than 0"},
		{"non-positive page size", func(c *Configuration) { c.Cache.PageSize = 0 }, true, "page_size must be greater than 0"},
		{"threshold too high", func(c *Configuration) { c.NHit.TriggerThreshold = 101 }, true, "trigger_threshold must be between 0 and 100"},
		{"threshold negative", func(c *Configuration) { c.NHit.TriggerThreshold = -1 }, true, "trigger_threshold must be between 0 and 100"},
		{"non-positive insertion threshold", func(c *Configuration) { c.NHit.InsertionThreshold = 0 }, true, "insertion_threshold must be greater than 0"},
		{"non-positive tracking ratio", func(c *Configuration) { c.NHit.TrackingRatio = 0 }, true, "tracking_ratio must be greater than 0"},
		{"invalid log level", func(c *Configuration) { c.Global.LogLevel = "NOISY" }, true, "invalid log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), tt.errMsg) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.errMsg)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
global:
  log_level: DEBUG
cache:
  capacity: 500
  page_size: 512
nhit:
  trigger_threshold: 50
`
	if err := os.WriteFile(configFile, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config file: %v", err)
	}

	cfg := NewDefault()
	if err := cfg.LoadFromFile(configFile); err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Global.LogLevel != "DEBUG" {
		t.Errorf("Global.LogLevel = %s, want DEBUG", cfg.Global.LogLevel)
	}
	if cfg.Cache.CapacitySize != 500 {
		t.Errorf("Cache.CapacitySize = %d, want 500", cfg.Cache.CapacitySize)
	}
	if cfg.NHit.TriggerThreshold != 50 {
		t.Errorf("NHit.TriggerThreshold = %v, want 50", cfg.NHit.TriggerThreshold)
	}
}

func TestLoadFromFileNonExistent(t *testing.T) {
	cfg := NewDefault()
	if err := cfg.LoadFromFile("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error when loading a non-existent config file")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TRACESIM_LOG_LEVEL", "ERROR")
	t.Setenv("TRACESIM_CAPACITY", "256")
	t.Setenv("TRACESIM_TRIGGER_THRESHOLD", "33.5")
	t.Setenv("TRACESIM_METRICS_ENABLED", "true")

	cfg := NewDefault()
	if err := cfg.LoadFromEnv(); err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.Global.LogLevel != "ERROR" {
		t.Errorf("Global.LogLevel = %s, want ERROR", cfg.Global.LogLevel)
	}
	if cfg.Cache.CapacitySize != 256 {
		t.Errorf("Cache.CapacitySize = %d, want 256", cfg.Cache.CapacitySize)
	}
	if cfg.NHit.TriggerThreshold != 33.5 {
		t.Errorf("NHit.TriggerThreshold = %v, want 33.5", cfg.NHit.TriggerThreshold)
	}
	if !cfg.Monitoring.Metrics.Enabled {
		t.Error("Monitoring.Metrics.Enabled should be true")
	}
}

func TestSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "saved_config.yaml")

	cfg := NewDefault()
	cfg.Global.LogLevel = "DEBUG"
	cfg.Cache.CapacitySize = 777

	if err := cfg.SaveToFile(configFile); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	newCfg := NewDefault()
	if err := newCfg.LoadFromFile(configFile); err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}

	if newCfg.Global.LogLevel != "DEBUG" {
		t.Errorf("Global.LogLevel = %s, want DEBUG", newCfg.Global.LogLevel)
	}
	if newCfg.Cache.CapacitySize != 777 {
		t.Errorf("Cache.CapacitySize = %d, want 777", newCfg.Cache.CapacitySize)
	}
}

func TestSaveToFileCreateDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "subdir", "config.yaml")

	if err := NewDefault().SaveToFile(configFile); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		t.Error("config file was not created")
	}
}
