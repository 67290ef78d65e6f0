package application

import (
	"strings"

	configdomain "agile-assistant/backend/internal/features/config/domain"
	"agile-assistant/backend/internal/features/generation/domain"
)

// BuildPrompt assembles the prompt for one artifact kind: role, optional
// playbook text, the kind's template, then the literal context and notes.
func BuildPrompt(cfg *configdomain.AppConfig, kind domain.ArtifactKind, context, notes string) string {
	var b strings.Builder
	if cfg != nil {
		b.WriteString(cfg.IARole)
		b.WriteString("\n\n")
		if cfg.PlaybookText != nil {
			b.WriteString(*cfg.PlaybookText)
			b.WriteString("\n\n")
		}
		b.WriteString(cfg.Prompts[string(kind)])
	}
	b.WriteString("\n\nContexto:\n")
	b.WriteString(context)
	b.WriteString("\nNotas:\n")
	b.WriteString(notes)
	return b.String()
}
