package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"dream-canvas/backend/internal/features/config/domain"
)

// AppConfigService defines the interface for flow configuration management.
type AppConfigService interface {
	LoadAppConfig() (*domain.AppConfig, error)
	SaveAppConfig(config *domain.AppConfig) error
}

// appConfigService is the implementation of AppConfigService.
type appConfigService struct {
	configPath string
}

// NewAppConfigService creates a new instance of appConfigService.
func NewAppConfigService(configPath string) AppConfigService {
	return &appConfigService{configPath: configPath}
}

// LoadAppConfig loads the flow configuration from the configured JSON file.
// It is read on every call so edits apply without a restart.
func (s *appConfigService) LoadAppConfig() (*domain.AppConfig, error) {
	absPath, err := filepath.Abs(s.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %s: %w", s.configPath, err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		log.Println("[ERROR] Failed to read app config file:", err)
		return nil, fmt.Errorf("failed to read app config file %s: %w", absPath, err)
	}

	var appConfig domain.AppConfig
	if err := json.Unmarshal(data, &appConfig); err != nil {
		log.Println("[ERROR] Failed to unmarshal app config:", err)
		return nil, fmt.Errorf("failed to unmarshal app config from %s: %w", absPath, err)
	}

	return &appConfig, nil
}

// SaveAppConfig saves the flow configuration to the configured JSON file.
func (s *appConfigService) SaveAppConfig(appConfig *domain.AppConfig) error {
	absPath, err := filepath.Abs(s.configPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for %s: %w", s.configPath, err)
	}

	data, err := json.MarshalIndent(appConfig, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal app config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory for %s: %w", absPath, err)
	}

	// Write through a temp file so a concurrent load never sees a half-written config.
	tmpPath := absPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write app config to file %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, absPath); err != nil {
		return fmt.Errorf("failed to replace app config %s: %w", absPath, err)
	}

	return nil
}
