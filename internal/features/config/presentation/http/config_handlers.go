package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"agile-assistant/backend/internal/features/config/application"
	"agile-assistant/backend/internal/features/config/domain"
	"agile-assistant/backend/internal/features/config/infrastructure"
	"agile-assistant/backend/internal/logger"
	"agile-assistant/backend/internal/web"
)

const maxPlaybookBytes = 50 << 20

// AppConfigHandler holds the config service.
type AppConfigHandler struct {
	configService application.ConfigService
	log           *logger.Logger
}

// NewAppConfigHandler creates a new AppConfigHandler.
func NewAppConfigHandler(configService application.ConfigService, log *logger.Logger) *AppConfigHandler {
	return &AppConfigHandler{
		configService: configService,
		log:           log.With("handler", "AppConfigHandler"),
	}
}

// GetAppConfigHandler returns the in-memory configuration with masked API keys.
func (h *AppConfigHandler) GetAppConfigHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.configService.Current().Masked())
}

// SaveAppConfigHandler replaces the configuration and saves it.
func (h *AppConfigHandler) SaveAppConfigHandler(c *gin.Context) {
	var appConfig domain.AppConfig
	if err := c.ShouldBindJSON(&appConfig); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appConfig.RestoreMaskedKeys(h.configService.Current())
	if err := h.configService.Replace(&appConfig); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.configService.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save app config: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "App config saved successfully"})
}

type field struct {
	Name  string
	Value string
}

func sortedFields(m map[string]string, order []string) []field {
	out := make([]field, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, k := range order {
		if v, ok := m[k]; ok {
			out = append(out, field{Name: k, Value: v})
			seen[k] = true
		}
	}
	var rest []string
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		out = append(out, field{Name: k, Value: m[k]})
	}
	return out
}

func (h *AppConfigHandler) pageData() gin.H {
	cfg := h.configService.Current()
	data := gin.H{
		"APIKeys":       sortedFields(cfg.APIKeys, []string{"gemini", "chatgpt", "copilot"}),
		"IARole":        cfg.IARole,
		"Prompts":       sortedFields(cfg.Prompts, []string{"epic", "feature", "user_story", "task"}),
		"HasPlaybook":   cfg.HasPlaybook(),
		"PlaybookChars": 0,
	}
	if cfg.PlaybookText != nil {
		data["PlaybookChars"] = len([]rune(*cfg.PlaybookText))
	}
	return data
}

func (h *AppConfigHandler) render(c *gin.Context, status int, banner, msg string) {
	data := h.pageData()
	if banner != "" {
		data[banner] = msg
	}
	web.Render(c, status, web.PanelConfig, data)
}

// PageHandler renders the configuration panel.
func (h *AppConfigHandler) PageHandler(c *gin.Context) {
	h.render(c, http.StatusOK, "", "")
}

// UpdateFormHandler applies the form to the in-memory config and saves it
// when the save button was pressed.
func (h *AppConfigHandler) UpdateFormHandler(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		h.render(c, http.StatusBadRequest, "Error", "Formulário inválido: "+err.Error())
		return
	}

	edits := application.Edits{
		APIKeys: map[string]string{},
		Prompts: map[string]string{},
	}
	for name, values := range c.Request.PostForm {
		if len(values) == 0 {
			continue
		}
		switch {
		case strings.HasPrefix(name, "api_key_"):
			edits.APIKeys[strings.TrimPrefix(name, "api_key_")] = values[0]
		case strings.HasPrefix(name, "prompt_"):
			edits.Prompts[strings.TrimPrefix(name, "prompt_")] = values[0]
		case name == "ia_role":
			role := values[0]
			edits.IARole = &role
		}
	}
	h.configService.ApplyEdits(edits)

	if c.PostForm("action") != "save" {
		h.render(c, http.StatusOK, "Success", "Alterações aplicadas nesta execução (ainda não salvas).")
		return
	}
	if err := h.configService.Save(); err != nil {
		h.render(c, http.StatusInternalServerError, "Error", "Falha ao salvar configurações: "+err.Error())
		return
	}
	h.render(c, http.StatusOK, "Success", "✅ Configurações salvas com sucesso!")
}

// UploadPlaybookHandler extracts the text of an uploaded .pptx into playbook_text.
func (h *AppConfigHandler) UploadPlaybookHandler(c *gin.Context) {
	fh, err := c.FormFile("playbook")
	if err != nil {
		h.render(c, http.StatusBadRequest, "Warning", "Selecione um arquivo .pptx.")
		return
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".pptx") {
		h.render(c, http.StatusBadRequest, "Error", "Apenas arquivos .pptx são aceitos.")
		return
	}
	if fh.Size > maxPlaybookBytes {
		h.render(c, http.StatusRequestEntityTooLarge, "Error", "Arquivo muito grande.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.render(c, http.StatusInternalServerError, "Error", "Falha ao ler o arquivo: "+err.Error())
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxPlaybookBytes))
	if err != nil {
		h.render(c, http.StatusInternalServerError, "Error", "Falha ao ler o arquivo: "+err.Error())
		return
	}

	text, err := infrastructure.ExtractPPTXText(bytes.NewReader(data), int64(len(data)))
	if errors.Is(err, infrastructure.ErrNotPresentation) {
		h.render(c, http.StatusBadRequest, "Error", "Arquivo não é um PPTX válido: "+err.Error())
		return
	}
	if err != nil {
		h.log.Error("playbook extraction failed", "file", fh.Filename, "error", err)
		h.render(c, http.StatusInternalServerError, "Error", "Falha ao processar o playbook: "+err.Error())
		return
	}

	h.configService.SetPlaybookText(text)
	h.render(c, http.StatusOK, "Success", "Playbook carregado e processado com sucesso!")
}
