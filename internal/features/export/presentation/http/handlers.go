package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"agile-assistant/backend/internal/features/export/application"
	"agile-assistant/backend/internal/logger"
	"agile-assistant/backend/internal/session"
	"agile-assistant/backend/internal/web"
)

const noResultsWarning = "Gere os artefatos antes de exportar."

// ExportHandler serves the export panel and the xlsx download.
type ExportHandler struct {
	store session.Store
	log   *logger.Logger
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(store session.Store, log *logger.Logger) *ExportHandler {
	return &ExportHandler{store: store, log: log.With("handler", "ExportHandler")}
}

// PageHandler shows the table of the session's results, or a warning when there are none.
func (h *ExportHandler) PageHandler(c *gin.Context) {
	data := gin.H{"Table": application.Table{}}
	rs, ok, err := h.store.Get(c.Request.Context(), session.ID(c))
	switch {
	case err != nil:
		h.log.Error("failed to load session results", "session_id", session.ID(c), "error", err)
		data["Error"] = "Falha ao carregar artefatos: " + err.Error()
		web.Render(c, http.StatusInternalServerError, web.PanelExport, data)
		return
	case !ok || len(rs) == 0:
		data["Warning"] = noResultsWarning
		web.Render(c, http.StatusOK, web.PanelExport, data)
		return
	}
	data["Table"] = application.ToTable(rs)
	web.Render(c, http.StatusOK, web.PanelExport, data)
}

// DownloadHandler streams artefatos.xlsx.
func (h *ExportHandler) DownloadHandler(c *gin.Context) {
	rs, _, err := h.store.Get(c.Request.Context(), session.ID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load results: " + err.Error()})
		return
	}

	data, _, err := application.Export(rs)
	if errors.Is(err, application.ErrNoResults) {
		c.JSON(http.StatusConflict, gin.H{"error": noResultsWarning})
		return
	}
	if err != nil {
		h.log.Error("spreadsheet export failed", "session_id", session.ID(c), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export: " + err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+application.FileName+`"`)
	c.Data(http.StatusOK, application.ContentType, data)
}
