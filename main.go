package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"agile-assistant/backend/internal/config"
	configapp "agile-assistant/backend/internal/features/config/application"
	config_http "agile-assistant/backend/internal/features/config/presentation/http"
	export_http "agile-assistant/backend/internal/features/export/presentation/http"
	"agile-assistant/backend/internal/features/generation/application"
	"agile-assistant/backend/internal/features/generation/infrastructure"
	generation_http "agile-assistant/backend/internal/features/generation/presentation/http"
	apphttp "agile-assistant/backend/internal/http"
	"agile-assistant/backend/internal/http/handlers"
	"agile-assistant/backend/internal/logger"
	"agile-assistant/backend/internal/session"
	"agile-assistant/backend/internal/web"
)

func main() {
	// Load .env file
	envErr := godotenv.Load()

	settings := config.LoadSettings()
	log, err := logger.New(settings.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	if envErr != nil {
		log.Info("No .env file found, using environment variables")
	}

	appConfigService := config.NewAppConfigService(settings.AppConfigPath)
	appConfig, err := appConfigService.LoadAppConfig()
	if errors.Is(err, config.ErrConfigNotFound) {
		log.Fatal("Arquivo config.json não encontrado. Crie um antes de rodar o app.", "path", settings.AppConfigPath)
	}
	if err != nil {
		log.Fatal("Failed to load app config", "error", err)
	}

	var store session.Store = session.NewMemoryStore(settings.SessionTTL)
	if settings.RedisAddr != "" {
		redisStore, err := session.NewRedisStore(settings.RedisAddr, settings.SessionTTL, log)
		if err != nil {
			log.Fatal("Failed to connect to redis", "addr", settings.RedisAddr, "error", err)
		}
		store = redisStore
		log.Info("Using redis session store", "addr", settings.RedisAddr)
	}
	defer store.Close()

	tmpl, err := web.ParseTemplates()
	if err != nil {
		log.Fatal("Failed to parse templates", "error", err)
	}

	// Initialize services
	configService := configapp.NewConfigService(appConfigService, appConfig, log)
	factory := infrastructure.NewAIClientFactory(settings.Providers, nil)
	generationService := application.NewGenerationService(configService, factory, log)

	server := apphttp.NewServer(apphttp.RouterConfig{
		Log:               log,
		Templates:         tmpl,
		SessionMaxAge:     int(settings.SessionTTL.Seconds()),
		ConfigHandler:     config_http.NewAppConfigHandler(configService, log),
		GenerationHandler: generation_http.NewGenerationHandler(generationService, store, log),
		ExportHandler:     export_http.NewExportHandler(store, log),
		HealthHandler:     handlers.NewHealthHandler(),
	})

	log.Info("Listening", "addr", settings.Addr(), "config", appConfigService.Path())
	if err := server.Run(settings.Addr()); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}
