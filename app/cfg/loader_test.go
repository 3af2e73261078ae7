package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	// Test that version is at least "dev" or "unknown"
	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestConfigFields(t *testing.T) {
	// Create a config instance to test field access
	cfg := &Cfg{
		TelegramBotToken:  "123:abc",
		TelegramChannelID: "@draws",
		GamesDir:          "./games",
		DataDir:           "./data",
		StoreBackend:      "xlsx",
		Port:              "8080",
		WorkerCount:       1,
		SchedulerInterval: 60,
		APIAccessKey:      "test-key",
		Serve:             true,
		UserAgent:         "Test Agent",
		Timezone:          "Asia/Dubai",
		Debug:             true,
		Version:           "test-version",
	}

	// Test direct field access
	if cfg.TelegramBotToken != "123:abc" {
		t.Errorf("Expected bot token '123:abc', got '%s'", cfg.TelegramBotToken)
	}
	if cfg.TelegramChannelID != "@draws" {
		t.Errorf("Expected channel ID '@draws', got '%s'", cfg.TelegramChannelID)
	}
	if cfg.GamesDir != "./games" {
		t.Errorf("Expected games dir './games', got '%s'", cfg.GamesDir)
	}
	if cfg.DataDir != "./data" {
		t.Errorf("Expected data dir './data', got '%s'", cfg.DataDir)
	}
	if cfg.StoreBackend != "xlsx" {
		t.Errorf("Expected store backend 'xlsx', got '%s'", cfg.StoreBackend)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.WorkerCount != 1 {
		t.Errorf("Expected worker count 1, got %d", cfg.WorkerCount)
	}
	if cfg.SchedulerInterval != 60 {
		t.Errorf("Expected scheduler interval 60, got %d", cfg.SchedulerInterval)
	}
	if cfg.APIAccessKey != "test-key" {
		t.Errorf("Expected API key 'test-key', got '%s'", cfg.APIAccessKey)
	}
	if !cfg.Serve {
		t.Error("Expected serve mode to be enabled")
	}
	if cfg.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", cfg.UserAgent)
	}
	if cfg.Timezone != "Asia/Dubai" {
		t.Errorf("Expected timezone 'Asia/Dubai', got '%s'", cfg.Timezone)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
	if cfg.Version != "test-version" {
		t.Errorf("Expected version 'test-version', got '%s'", cfg.Version)
	}
}
