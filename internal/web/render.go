package web

import (
	"github.com/gin-gonic/gin"
)

var panelTitles = map[string]string{
	PanelGenerate: "Geração de Artefatos",
	PanelConfig:   "Configurações de IA",
	PanelExport:   "Exportação",
	PanelAbout:    "Sobre",
}

// Render executes the template of a panel. Banner keys (Warning, Error,
// Success) default to empty so templates can test them unconditionally.
func Render(c *gin.Context, status int, panel string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Active"] = panel
	if _, ok := data["Title"]; !ok {
		data["Title"] = panelTitles[panel]
	}
	for _, k := range []string{"Warning", "Error", "Success"} {
		if _, ok := data[k]; !ok {
			data[k] = ""
		}
	}
	c.HTML(status, panel+".html", data)
}
