package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agile-assistant/backend/internal/web"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *HealthHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// AboutHandler renders the static about panel.
func AboutHandler(c *gin.Context) {
	web.Render(c, http.StatusOK, web.PanelAbout, nil)
}
