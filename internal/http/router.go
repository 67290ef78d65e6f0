package http

import (
	"html/template"

	"github.com/gin-gonic/gin"

	configHTTP "agile-assistant/backend/internal/features/config/presentation/http"
	exportHTTP "agile-assistant/backend/internal/features/export/presentation/http"
	generationHTTP "agile-assistant/backend/internal/features/generation/presentation/http"
	httpH "agile-assistant/backend/internal/http/handlers"
	httpMW "agile-assistant/backend/internal/http/middleware"
	"agile-assistant/backend/internal/logger"
	"agile-assistant/backend/internal/session"
)

type RouterConfig struct {
	Log       *logger.Logger
	Templates *template.Template
	// SessionMaxAge is the cookie lifetime in seconds.
	SessionMaxAge int

	ConfigHandler     *configHTTP.AppConfigHandler
	GenerationHandler *generationHTTP.GenerationHandler
	ExportHandler     *exportHTTP.ExportHandler
	HealthHandler     *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(session.Middleware(cfg.SessionMaxAge))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())
	if cfg.Templates != nil {
		r.SetHTMLTemplate(cfg.Templates)
	}

	if cfg.HealthHandler != nil {
		r.GET("/ping", cfg.HealthHandler.Ping)
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	// UI panels
	r.GET("/about", httpH.AboutHandler)
	if cfg.GenerationHandler != nil {
		r.GET("/", cfg.GenerationHandler.PageHandler)
		r.POST("/generate", cfg.GenerationHandler.GenerateFormHandler)
	}
	if cfg.ConfigHandler != nil {
		r.GET("/config", cfg.ConfigHandler.PageHandler)
		r.POST("/config", cfg.ConfigHandler.UpdateFormHandler)
		r.POST("/config/playbook", cfg.ConfigHandler.UploadPlaybookHandler)
	}
	if cfg.ExportHandler != nil {
		r.GET("/export", cfg.ExportHandler.PageHandler)
		r.GET("/export/download", cfg.ExportHandler.DownloadHandler)
	}

	api := r.Group("/api")
	{
		if cfg.ConfigHandler != nil {
			api.GET("/config", cfg.ConfigHandler.GetAppConfigHandler)
			api.POST("/config", cfg.ConfigHandler.SaveAppConfigHandler)
		}
		if cfg.GenerationHandler != nil {
			api.POST("/generate", cfg.GenerationHandler.GenerateAPIHandler)
			api.GET("/results", cfg.GenerationHandler.ResultsAPIHandler)
		}
		if cfg.ExportHandler != nil {
			api.GET("/export", cfg.ExportHandler.DownloadHandler)
		}
	}

	return r
}
