package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"agile-assistant/backend/internal/features/generation/application"
	"agile-assistant/backend/internal/features/generation/domain"
	"agile-assistant/backend/internal/logger"
	"agile-assistant/backend/internal/session"
	"agile-assistant/backend/internal/web"
)

// GenerationHandler serves the artifact generation panel and API.
type GenerationHandler struct {
	generationService application.GenerationService
	store             session.Store
	log               *logger.Logger
}

// NewGenerationHandler creates a new GenerationHandler.
func NewGenerationHandler(generationService application.GenerationService, store session.Store, log *logger.Logger) *GenerationHandler {
	return &GenerationHandler{
		generationService: generationService,
		store:             store,
		log:               log.With("handler", "GenerationHandler"),
	}
}

type resultCard struct {
	Label  string
	Status string
	Text   string
}

func cards(rs domain.ResultSet) []resultCard {
	out := make([]resultCard, 0, len(rs))
	for _, k := range domain.Kinds() {
		if text, ok := rs[k]; ok {
			out = append(out, resultCard{Label: k.Label(), Status: "✅ " + k.Label() + " gerado!", Text: text})
		}
	}
	return out
}

// failedCards reports how far the loop got before failed broke it. Nothing
// was kept, so the cards carry a status line only.
func failedCards(failed domain.ArtifactKind) []resultCard {
	out := make([]resultCard, 0, len(domain.Kinds()))
	reached := false
	for _, k := range domain.Kinds() {
		card := resultCard{Label: k.Label()}
		switch {
		case k == failed:
			card.Status = "❌ " + k.Label() + " falhou"
			reached = true
		case reached:
			card.Status = "⏳ " + k.Label() + " não processado"
		default:
			card.Status = "✅ " + k.Label() + " gerado!"
		}
		out = append(out, card)
	}
	return out
}

func pageData(req domain.GenerateRequest) gin.H {
	if req.Provider == "" {
		req.Provider = domain.ProviderGemini.String()
	}
	return gin.H{
		"Providers": domain.Providers(),
		"Provider":  req.Provider,
		"Context":   req.Context,
		"Notes":     req.Notes,
		"Results":   nil,
	}
}

// PageHandler renders the generation form with the session's last results.
func (h *GenerationHandler) PageHandler(c *gin.Context) {
	data := pageData(domain.GenerateRequest{})
	if rs, ok, err := h.store.Get(c.Request.Context(), session.ID(c)); err != nil {
		h.log.Warn("failed to load session results", "session_id", session.ID(c), "error", err)
	} else if ok {
		data["Results"] = cards(rs)
	}
	web.Render(c, http.StatusOK, web.PanelGenerate, data)
}

// GenerateFormHandler handles the "Gerar Artefatos" form post.
func (h *GenerationHandler) GenerateFormHandler(c *gin.Context) {
	var req domain.GenerateRequest
	if err := c.ShouldBind(&req); err != nil {
		data := pageData(req)
		data["Error"] = "Requisição inválida: " + err.Error()
		web.Render(c, http.StatusBadRequest, web.PanelGenerate, data)
		return
	}
	data := pageData(req)

	rs, err := h.generate(c, req)
	switch {
	case errors.Is(err, application.ErrEmptyContext):
		data["Warning"] = "Preencha o contexto do projeto antes de gerar."
		web.Render(c, http.StatusOK, web.PanelGenerate, data)
		return
	case errors.Is(err, domain.ErrUnknownProvider):
		data["Error"] = err.Error()
		web.Render(c, http.StatusBadRequest, web.PanelGenerate, data)
		return
	case err != nil:
		var genErr *application.GenerationError
		if errors.As(err, &genErr) {
			data["Results"] = failedCards(genErr.Kind)
			data["Error"] = "Falha ao gerar " + genErr.Kind.Label() + ": " + genErr.Err.Error()
		} else {
			data["Error"] = "Falha ao gerar artefatos: " + err.Error()
		}
		web.Render(c, http.StatusBadGateway, web.PanelGenerate, data)
		return
	}

	data["Results"] = cards(rs)
	data["Success"] = "✅ Artefatos gerados!"
	web.Render(c, http.StatusOK, web.PanelGenerate, data)
}

// GenerateAPIHandler is the JSON variant of GenerateFormHandler.
func (h *GenerationHandler) GenerateAPIHandler(c *gin.Context) {
	var req domain.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rs, err := h.generate(c, req)
	switch {
	case errors.Is(err, application.ErrEmptyContext), errors.Is(err, domain.ErrUnknownProvider):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to generate artifacts: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": rs})
}

// ResultsAPIHandler returns the session's last result set.
func (h *GenerationHandler) ResultsAPIHandler(c *gin.Context) {
	rs, ok, err := h.store.Get(c.Request.Context(), session.ID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load results: " + err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no generated artifacts in this session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": rs})
}

func (h *GenerationHandler) generate(c *gin.Context, req domain.GenerateRequest) (domain.ResultSet, error) {
	rs, err := h.generationService.Generate(c.Request.Context(), req)
	if err != nil {
		return nil, err
	}
	if err := h.store.Put(c.Request.Context(), session.ID(c), rs); err != nil {
		h.log.Error("failed to store session results", "session_id", session.ID(c), "error", err)
		return nil, err
	}
	return rs, nil
}
