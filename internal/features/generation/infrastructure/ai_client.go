package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"agile-assistant/backend/internal/config"
	"agile-assistant/backend/internal/features/generation/domain"
)

var (
	// ErrMissingAPIKey is returned before any network call when the provider key is empty.
	ErrMissingAPIKey = errors.New("missing api key")
	// ErrEmptyResponse is returned when the provider answers without any text.
	ErrEmptyResponse = errors.New("empty response from provider")
)

// Generator turns a finished prompt into generated text using one provider.
type Generator interface {
	Generate(ctx context.Context, prompt, apiKey string) (string, error)
}

// AIConfig holds the endpoint settings of one provider adapter.
type AIConfig struct {
	Provider domain.Provider
	BaseURL  string
	Model    string
	// APIVersion enables Azure OpenAI mode when non-empty.
	APIVersion string
}

// AIClientFactory resolves the adapter for a provider.
type AIClientFactory interface {
	ForProvider(p domain.Provider) (Generator, error)
}

type aiClientFactory struct {
	generators map[domain.Provider]Generator
}

const defaultRequestTimeout = 120 * time.Second

// NewAIClientFactory builds the three provider adapters from the environment
// settings. httpClient may be nil.
func NewAIClientFactory(settings config.ProviderSettings, httpClient *http.Client) AIClientFactory {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	configs := []AIConfig{
		{Provider: domain.ProviderGemini, BaseURL: settings.GeminiBaseURL, Model: settings.GeminiModel},
		{Provider: domain.ProviderChatGPT, BaseURL: settings.OpenAIBaseURL, Model: settings.OpenAIModel},
		{Provider: domain.ProviderCopilot, BaseURL: settings.CopilotBaseURL, Model: settings.CopilotModel, APIVersion: settings.CopilotAzureAPIVersion},
	}
	f := &aiClientFactory{generators: make(map[domain.Provider]Generator, len(configs))}
	for _, c := range configs {
		f.generators[c.Provider] = NewChatCompletionGenerator(c, httpClient)
	}
	return f
}

// NewStaticFactory maps providers to fixed generators.
func NewStaticFactory(generators map[domain.Provider]Generator) AIClientFactory {
	return &aiClientFactory{generators: generators}
}

func (f *aiClientFactory) ForProvider(p domain.Provider) (Generator, error) {
	g, ok := f.generators[p]
	if !ok || g == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProvider, p)
	}
	return g, nil
}
