package web

import (
	"embed"
	"html/template"
	"strings"
)

// Templates holds the HTML panels.
//
//go:embed templates/*.html
var Templates embed.FS

// MenuItem is one entry of the sidebar menu. Exactly one is active per page.
type MenuItem struct {
	Key   string
	Label string
	Path  string
}

const (
	PanelGenerate = "generate"
	PanelConfig   = "config"
	PanelExport   = "export"
	PanelAbout    = "about"
)

// Menu lists the panels in sidebar order.
var Menu = []MenuItem{
	{Key: PanelGenerate, Label: "🧠 Geração de Artefatos", Path: "/"},
	{Key: PanelConfig, Label: "⚙️ Configurações de IA", Path: "/config"},
	{Key: PanelExport, Label: "📂 Exportação", Path: "/export"},
	{Key: PanelAbout, Label: "ℹ️ Sobre", Path: "/about"},
}

// ParseTemplates parses every embedded panel with the shared helpers.
func ParseTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"upper": strings.ToUpper,
		"menu":  func() []MenuItem { return Menu },
	}).ParseFS(Templates, "templates/*.html")
}
