package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	configdomain "agile-assistant/backend/internal/features/config/domain"
	"agile-assistant/backend/internal/features/generation/domain"
	"agile-assistant/backend/internal/features/generation/infrastructure"
	"agile-assistant/backend/internal/logger"
)

// ErrEmptyContext is returned, without calling any provider, when the project context is blank.
var ErrEmptyContext = errors.New("project context is empty")

// ConfigSource supplies the configuration snapshot used for one generation run.
type ConfigSource interface {
	Current() *configdomain.AppConfig
}

// GenerationError reports which artifact failed.
type GenerationError struct {
	Kind     domain.ArtifactKind
	Provider domain.Provider
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s with %s: %v", e.Kind, e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// GenerationService runs the four-artifact generation sequence.
type GenerationService interface {
	Generate(ctx context.Context, req domain.GenerateRequest) (domain.ResultSet, error)
}

type generationService struct {
	configs ConfigSource
	factory infrastructure.AIClientFactory
	log     *logger.Logger
}

// NewGenerationService creates a new instance of generationService.
func NewGenerationService(configs ConfigSource, factory infrastructure.AIClientFactory, log *logger.Logger) GenerationService {
	return &generationService{
		configs: configs,
		factory: factory,
		log:     log.With("service", "GenerationService"),
	}
}

// Generate builds and sends one prompt per artifact kind, in order. The first
// failing call aborts the run and no partial result set is returned.
func (s *generationService) Generate(ctx context.Context, req domain.GenerateRequest) (domain.ResultSet, error) {
	if strings.TrimSpace(req.Context) == "" {
		return nil, ErrEmptyContext
	}
	provider, err := domain.ParseProvider(req.Provider)
	if err != nil {
		return nil, err
	}
	generator, err := s.factory.ForProvider(provider)
	if err != nil {
		return nil, err
	}

	cfg := s.configs.Current()
	apiKey := cfg.APIKeys[provider.KeyName()]

	results := make(domain.ResultSet, len(domain.Kinds()))
	for _, kind := range domain.Kinds() {
		prompt := BuildPrompt(cfg, kind, req.Context, req.Notes)
		s.log.Info("generating artifact", "kind", kind, "provider", provider, "prompt_chars", len(prompt))

		start := time.Now()
		text, err := generator.Generate(ctx, prompt, apiKey)
		if err != nil {
			s.log.Error("artifact generation failed", "kind", kind, "provider", provider, "error", err)
			return nil, &GenerationError{Kind: kind, Provider: provider, Err: err}
		}
		results[kind] = text
		s.log.Info("artifact generated", "kind", kind, "provider", provider, "duration_ms", time.Since(start).Milliseconds())
	}
	return results, nil
}
