package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Settings are the process-level knobs read from the environment (and .env).
type Settings struct {
	Port          string
	AppConfigPath string
	LogMode       string
	RedisAddr     string
	SessionTTL    time.Duration

	Providers ProviderSettings
}

// ProviderSettings selects endpoint and model per provider. Empty values fall
// back to the adapter defaults.
type ProviderSettings struct {
	OpenAIBaseURL  string
	OpenAIModel    string
	GeminiBaseURL  string
	GeminiModel    string
	CopilotBaseURL string
	CopilotModel   string
	// CopilotAzureAPIVersion switches the Copilot adapter to Azure OpenAI
	// when set; CopilotBaseURL is then the Azure resource endpoint.
	CopilotAzureAPIVersion string
}

// LoadSettings reads Settings from the environment.
func LoadSettings() Settings {
	return Settings{
		Port:          envOr("PORT", "8080"),
		AppConfigPath: envOr("APP_CONFIG_PATH", "config.json"),
		LogMode:       envOr("LOG_MODE", "dev"),
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		SessionTTL:    time.Duration(envInt("SESSION_TTL_MINUTES", 120)) * time.Minute,
		Providers: ProviderSettings{
			OpenAIBaseURL:          strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
			OpenAIModel:            strings.TrimSpace(os.Getenv("OPENAI_MODEL")),
			GeminiBaseURL:          strings.TrimSpace(os.Getenv("GEMINI_BASE_URL")),
			GeminiModel:            strings.TrimSpace(os.Getenv("GEMINI_MODEL")),
			CopilotBaseURL:         strings.TrimSpace(os.Getenv("COPILOT_BASE_URL")),
			CopilotModel:           strings.TrimSpace(os.Getenv("COPILOT_MODEL")),
			CopilotAzureAPIVersion: strings.TrimSpace(os.Getenv("COPILOT_AZURE_API_VERSION")),
		},
	}
}

// Addr is the listen address for gin.
func (s Settings) Addr() string {
	return ":" + strings.TrimPrefix(s.Port, ":")
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
