package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func TestConfigCache_Run(t *testing.T) {
	dir := t.TempDir()

	writeConfigFile(t, dir, "pick_3.yml", `
title: "Pick 3"
url: "https://example.com/api/pick3"
settings:
  enabled: true
  refresh_interval: 300
  timeout: 15
message:
  format: compact
`)
	writeConfigFile(t, dir, "pick_4.yml", `
title: "Pick 4"
url: "https://example.com/api/pick4"
settings:
  enabled: false
`)

	cc := NewConfigCache(dir)
	if err := cc.Run(); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cc.GetConfigCount() != 2 {
		t.Errorf("Expected 2 configurations, got %d", cc.GetConfigCount())
	}

	cfg, err := cc.GetConfig("pick_3")
	if err != nil {
		t.Fatalf("Expected pick_3 config, got error: %v", err)
	}
	if cfg.Title != "Pick 3" {
		t.Errorf("Expected title 'Pick 3', got '%s'", cfg.Title)
	}
	if cfg.URL != "https://example.com/api/pick3" {
		t.Errorf("Expected pick3 URL, got '%s'", cfg.URL)
	}
	if !cfg.Settings.Enabled {
		t.Error("Expected pick_3 to be enabled")
	}
	if cfg.Settings.RefreshInterval != 300 {
		t.Errorf("Expected refresh interval 300, got %d", cfg.Settings.RefreshInterval)
	}

	enabled := cc.GetEnabledConfigs()
	if len(enabled) != 1 {
		t.Errorf("Expected 1 enabled configuration, got %d", len(enabled))
	}
	if _, ok := enabled["pick_3"]; !ok {
		t.Error("Expected pick_3 in enabled configurations")
	}
}

func TestConfigCache_Defaults(t *testing.T) {
	dir := t.TempDir()

	writeConfigFile(t, dir, "lotto.yml", `
url: "https://example.com/api/lotto"
settings:
  enabled: true
`)

	cc := NewConfigCache(dir)
	if err := cc.Run(); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	cfg, err := cc.GetConfig("lotto")
	if err != nil {
		t.Fatalf("Expected lotto config, got error: %v", err)
	}

	// Title falls back to the name derived from the filename
	if cfg.Title != "lotto" {
		t.Errorf("Expected title 'lotto', got '%s'", cfg.Title)
	}
	if cfg.Settings.RefreshInterval != 600 {
		t.Errorf("Expected default refresh interval 600, got %d", cfg.Settings.RefreshInterval)
	}
	if cfg.Settings.Timeout != 15 {
		t.Errorf("Expected default timeout 15, got %d", cfg.Settings.Timeout)
	}
	if cfg.Message.Format != MessageFormatCompact {
		t.Errorf("Expected default message format 'compact', got '%s'", cfg.Message.Format)
	}
	if cfg.Settings.StoreFile != "" {
		t.Errorf("Expected empty store file, got '%s'", cfg.Settings.StoreFile)
	}
}

func TestConfigCache_MissingURL(t *testing.T) {
	dir := t.TempDir()

	writeConfigFile(t, dir, "broken.yml", `
title: "Broken"
settings:
  enabled: true
`)

	cc := NewConfigCache(dir)
	if err := cc.Run(); err == nil {
		t.Error("Expected error for config without source URL")
	}
}

func TestConfigCache_InvalidMessageFormat(t *testing.T) {
	dir := t.TempDir()

	writeConfigFile(t, dir, "bad_format.yml", `
url: "https://example.com/api"
message:
  format: shouty
`)

	cc := NewConfigCache(dir)
	if err := cc.Run(); err == nil {
		t.Error("Expected error for invalid message format")
	}
}

func TestConfigCache_MissingDirectory(t *testing.T) {
	cc := NewConfigCache(filepath.Join(t.TempDir(), "does-not-exist"))
	if err := cc.Run(); err != nil {
		t.Errorf("Expected no error for missing games directory, got: %v", err)
	}
	if cc.GetConfigCount() != 0 {
		t.Errorf("Expected 0 configurations, got %d", cc.GetConfigCount())
	}
}

func TestConfigSettings_Helpers(t *testing.T) {
	s := &ConfigSettings{RefreshInterval: 120, Timeout: 5}
	if s.GetRefreshInterval() != 2*time.Minute {
		t.Errorf("Expected 2m refresh interval, got %v", s.GetRefreshInterval())
	}
	if s.GetTimeout() != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %v", s.GetTimeout())
	}

	var zero ConfigSettings
	if zero.GetRefreshInterval() != 600*time.Second {
		t.Errorf("Expected default refresh interval, got %v", zero.GetRefreshInterval())
	}
	if zero.GetTimeout() != 15*time.Second {
		t.Errorf("Expected default timeout, got %v", zero.GetTimeout())
	}
}
