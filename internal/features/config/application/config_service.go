package application

import (
	"fmt"
	"sync"

	"agile-assistant/backend/internal/config"
	"agile-assistant/backend/internal/features/config/domain"
	"agile-assistant/backend/internal/logger"
)

// ConfigService owns the in-memory configuration. Edits stay in memory until
// Save writes the whole document back through the AppConfigService.
type ConfigService interface {
	Current() *domain.AppConfig
	SetPlaybookText(text string)
	ApplyEdits(edits Edits)
	Replace(cfg *domain.AppConfig) error
	Save() error
}

// Edits is one submission of the configuration form. Nil fields are left alone.
type Edits struct {
	APIKeys map[string]string
	IARole  *string
	Prompts map[string]string
}

type configService struct {
	store config.AppConfigService
	log   *logger.Logger

	mu  sync.RWMutex
	cfg *domain.AppConfig
}

// NewConfigService wraps an already loaded config.
func NewConfigService(store config.AppConfigService, initial *domain.AppConfig, log *logger.Logger) ConfigService {
	return &configService{
		store: store,
		log:   log.With("service", "ConfigService"),
		cfg:   initial.Clone(),
	}
}

// Current returns a copy of the in-memory config.
func (s *configService) Current() *domain.AppConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Clone()
}

func (s *configService) SetPlaybookText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.PlaybookText = &text
	s.log.Info("playbook text replaced", "chars", len([]rune(text)))
}

// ApplyEdits only touches keys that already exist in the config, matching the
// form, which renders one field per existing key.
func (s *configService) ApplyEdits(edits Edits) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, key := range edits.APIKeys {
		if _, ok := s.cfg.APIKeys[name]; ok {
			s.cfg.APIKeys[name] = key
		}
	}
	if edits.IARole != nil {
		s.cfg.IARole = *edits.IARole
	}
	for kind, template := range edits.Prompts {
		if _, ok := s.cfg.Prompts[kind]; ok {
			s.cfg.Prompts[kind] = template
		}
	}
}

// Replace swaps the whole in-memory config, keeping unknown keys from the
// current one when the replacement carries none.
func (s *configService) Replace(cfg *domain.AppConfig) error {
	if cfg == nil || cfg.APIKeys == nil || cfg.Prompts == nil {
		return fmt.Errorf("%w: api_keys and prompts are required", config.ErrInvalidConfig)
	}
	next := cfg.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	if next.Extra == nil && s.cfg.Extra != nil {
		next.Extra = s.cfg.Clone().Extra
	}
	s.cfg = next
	return nil
}

func (s *configService) Save() error {
	snapshot := s.Current()
	if err := s.store.SaveAppConfig(snapshot); err != nil {
		s.log.Error("failed to save config", "path", s.store.Path(), "error", err)
		return err
	}
	s.log.Info("config saved", "path", s.store.Path())
	return nil
}
