package infrastructure

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"agile-assistant/backend/internal/features/generation/domain"
)

const (
	defaultOpenAIBaseURL  = "https://api.openai.com/v1"
	defaultOpenAIModel    = openai.GPT4oMini
	defaultGeminiBaseURL  = "https://generativelanguage.googleapis.com/v1beta/openai"
	defaultGeminiModel    = "gemini-2.0-flash"
	defaultCopilotBaseURL = "https://models.inference.ai.azure.com"
	defaultCopilotModel   = "gpt-4o-mini"
)

// ChatCompletionGenerator calls an OpenAI-compatible chat completions endpoint.
// ChatGPT, Gemini and Copilot (GitHub Models or Azure OpenAI) all accept this shape.
type ChatCompletionGenerator struct {
	provider   domain.Provider
	baseURL    string
	model      string
	apiVersion string
	httpClient *http.Client
}

// NewChatCompletionGenerator fills provider defaults for empty BaseURL/Model.
func NewChatCompletionGenerator(cfg AIConfig, httpClient *http.Client) *ChatCompletionGenerator {
	baseURL, model := providerDefaults(cfg.Provider)
	if v := strings.TrimSpace(cfg.BaseURL); v != "" {
		baseURL = v
	}
	if v := strings.TrimSpace(cfg.Model); v != "" {
		model = v
	}
	return &ChatCompletionGenerator{
		provider:   cfg.Provider,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		apiVersion: strings.TrimSpace(cfg.APIVersion),
		httpClient: httpClient,
	}
}

func providerDefaults(p domain.Provider) (string, string) {
	switch p {
	case domain.ProviderGemini:
		return defaultGeminiBaseURL, defaultGeminiModel
	case domain.ProviderCopilot:
		return defaultCopilotBaseURL, defaultCopilotModel
	default:
		return defaultOpenAIBaseURL, defaultOpenAIModel
	}
}

// Model returns the model name sent with each request.
func (g *ChatCompletionGenerator) Model() string { return g.model }

// Generate sends prompt as a single user message and returns the first choice.
func (g *ChatCompletionGenerator) Generate(ctx context.Context, prompt, apiKey string) (string, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return "", fmt.Errorf("%s: %w", g.provider, ErrMissingAPIKey)
	}

	client := openai.NewClientWithConfig(g.clientConfig(apiKey))
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%s chat completion: %w", g.provider, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: %w", g.provider, ErrEmptyResponse)
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%s: %w", g.provider, ErrEmptyResponse)
	}
	return content, nil
}

func (g *ChatCompletionGenerator) clientConfig(apiKey string) openai.ClientConfig {
	var cfg openai.ClientConfig
	if g.apiVersion != "" {
		cfg = openai.DefaultAzureConfig(apiKey, g.baseURL)
		cfg.APIVersion = g.apiVersion
	} else {
		cfg = openai.DefaultConfig(apiKey)
		cfg.BaseURL = g.baseURL
	}
	if g.httpClient != nil {
		cfg.HTTPClient = g.httpClient
	}
	return cfg
}
