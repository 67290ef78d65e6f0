package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"agile-assistant/backend/internal/features/config/domain"
)

var (
	// ErrConfigNotFound is returned when the backing config file does not exist.
	ErrConfigNotFound = errors.New("config file not found")
	// ErrInvalidConfig is returned when a required key is missing.
	ErrInvalidConfig = errors.New("invalid config")
)

// AppConfigService defines the interface for application configuration management.
type AppConfigService interface {
	LoadAppConfig() (*domain.AppConfig, error)
	SaveAppConfig(config *domain.AppConfig) error
	Path() string
}

// appConfigService is the implementation of AppConfigService.
type appConfigService struct {
	configPath string
}

// NewAppConfigService creates a new instance of appConfigService.
func NewAppConfigService(configPath string) AppConfigService {
	return &appConfigService{configPath: configPath}
}

func (s *appConfigService) Path() string { return s.configPath }

// LoadAppConfig loads the application configuration from the configured JSON file.
func (s *appConfigService) LoadAppConfig() (*domain.AppConfig, error) {
	absPath, err := filepath.Abs(s.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %s: %w", s.configPath, err)
	}

	data, err := os.ReadFile(absPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, absPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read app config file %s: %w", absPath, err)
	}

	var appConfig domain.AppConfig
	if err := json.Unmarshal(data, &appConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal app config from %s: %w", absPath, err)
	}
	if appConfig.APIKeys == nil {
		return nil, fmt.Errorf("%w: %s is missing \"api_keys\"", ErrInvalidConfig, absPath)
	}
	if appConfig.Prompts == nil {
		return nil, fmt.Errorf("%w: %s is missing \"prompts\"", ErrInvalidConfig, absPath)
	}

	return &appConfig, nil
}

// SaveAppConfig overwrites the configured JSON file with appConfig.
func (s *appConfigService) SaveAppConfig(appConfig *domain.AppConfig) error {
	if appConfig == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	absPath, err := filepath.Abs(s.configPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for %s: %w", s.configPath, err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(appConfig); err != nil {
		return fmt.Errorf("failed to marshal app config: %w", err)
	}

	if err := os.WriteFile(absPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write app config to file %s: %w", absPath, err)
	}

	return nil
}
