package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

type ConfigCache struct {
	gamesDir string
	cache    map[string]*Config
	mu       sync.RWMutex
}

func NewConfigCache(gamesDir string) *ConfigCache {
	return &ConfigCache{
		gamesDir: gamesDir,
		cache:    make(map[string]*Config),
	}
}

func (cc *ConfigCache) Run() error {
	if _, err := os.Stat(cc.gamesDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(cc.gamesDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		// Derive game name from filename (remove .yml extension)
		fileName := filepath.Base(file)
		gameName := fileName[:len(fileName)-4]

		config, err := cc.LoadConfig(gameName)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Configuration loaded", "game", gameName, "enabled", config.Settings.Enabled, "refresh_interval", config.Settings.RefreshInterval)
	}

	return nil
}

func (cc *ConfigCache) LoadConfig(gameName string) (*Config, error) {
	configFile := cc.getConfigFilePath(gameName)
	gameConfig, err := cc.parseConfig(configFile)
	if err != nil {
		return nil, err
	}

	// Set game name from parameter
	gameConfig.Name = gameName
	if gameConfig.Title == "" {
		gameConfig.Title = gameName
	}

	if err := cc.validateConfig(gameConfig); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}

	// Store in cache
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.cache[gameConfig.Name] = gameConfig

	return gameConfig, nil
}

func (cc *ConfigCache) GetConfig(gameName string) (*Config, error) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	gameConfig, ok := cc.cache[gameName]
	if !ok {
		return nil, fmt.Errorf("game config with name '%s' not found", gameName)
	}
	return gameConfig, nil
}

func (cc *ConfigCache) GetConfigs() map[string]*Config {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	configsCopy := make(map[string]*Config, len(cc.cache))
	for k, v := range cc.cache {
		configsCopy[k] = v
	}
	return configsCopy
}

func (cc *ConfigCache) GetEnabledConfigs() map[string]*Config {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	enabledConfigs := make(map[string]*Config)
	for k, v := range cc.cache {
		if v.Settings.Enabled {
			enabledConfigs[k] = v
		}
	}
	return enabledConfigs
}

func (cc *ConfigCache) GetConfigCount() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.cache)
}

func (cc *ConfigCache) parseConfig(configFile string) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var gameConfig Config
	if err := yaml.Unmarshal(data, &gameConfig); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if gameConfig.Settings.RefreshInterval == 0 {
		gameConfig.Settings.RefreshInterval = 600
	}
	if gameConfig.Settings.Timeout == 0 {
		gameConfig.Settings.Timeout = 15
	}
	if gameConfig.Message.Format == "" {
		gameConfig.Message.Format = MessageFormatCompact
	}

	return &gameConfig, nil
}

func (cc *ConfigCache) validateConfig(gameConfig *Config) error {
	if gameConfig == nil {
		return fmt.Errorf("gameConfig is nil")
	}

	requiredFields := map[string]string{
		"game name":  gameConfig.Name,
		"source URL": gameConfig.URL,
	}

	for fieldName, fieldValue := range requiredFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	nonNegativeFields := map[string]int{
		"refresh interval": gameConfig.Settings.RefreshInterval,
		"timeout":          gameConfig.Settings.Timeout,
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	validFormats := map[string]bool{
		MessageFormatCompact:  true,
		MessageFormatDetailed: true,
	}

	if !validFormats[gameConfig.Message.Format] {
		return fmt.Errorf("invalid message format: %s", gameConfig.Message.Format)
	}

	return nil
}

func (cc *ConfigCache) getConfigFilePath(gameName string) string {
	return filepath.Join(cc.gamesDir, gameName+".yml")
}
