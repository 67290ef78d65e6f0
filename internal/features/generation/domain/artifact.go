package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ArtifactKind is one of the four fixed agile artifacts the assistant produces.
type ArtifactKind string

const (
	KindEpic      ArtifactKind = "epic"
	KindFeature   ArtifactKind = "feature"
	KindUserStory ArtifactKind = "user_story"
	KindTask      ArtifactKind = "task"
)

// Kinds returns the artifact kinds in generation order.
func Kinds() []ArtifactKind {
	return []ArtifactKind{KindEpic, KindFeature, KindUserStory, KindTask}
}

func (k ArtifactKind) String() string { return string(k) }

// Label is the upper-cased kind shown in the UI and in exports.
func (k ArtifactKind) Label() string { return strings.ToUpper(string(k)) }

// Valid reports whether k is one of the four known kinds.
func (k ArtifactKind) Valid() bool {
	switch k {
	case KindEpic, KindFeature, KindUserStory, KindTask:
		return true
	}
	return false
}

// ResultSet maps each artifact kind to its generated text.
type ResultSet map[ArtifactKind]string

// Complete reports whether rs holds exactly one entry per kind.
func (rs ResultSet) Complete() bool {
	if len(rs) != len(Kinds()) {
		return false
	}
	for _, k := range Kinds() {
		if _, ok := rs[k]; !ok {
			return false
		}
	}
	return true
}

// ErrUnknownProvider is returned when a provider label does not match any adapter.
var ErrUnknownProvider = errors.New("unknown provider")

// Provider selects the text-generation service.
type Provider int

const (
	ProviderGemini Provider = iota + 1
	ProviderChatGPT
	ProviderCopilot
)

// Providers lists the selectable providers in menu order.
func Providers() []Provider {
	return []Provider{ProviderGemini, ProviderChatGPT, ProviderCopilot}
}

// ParseProvider maps a menu label ("Gemini", "ChatGPT", "Copilot") to a Provider.
func ParseProvider(s string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gemini":
		return ProviderGemini, nil
	case "chatgpt":
		return ProviderChatGPT, nil
	case "copilot":
		return ProviderCopilot, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownProvider, s)
}

func (p Provider) String() string {
	switch p {
	case ProviderGemini:
		return "Gemini"
	case ProviderChatGPT:
		return "ChatGPT"
	case ProviderCopilot:
		return "Copilot"
	}
	return fmt.Sprintf("Provider(%d)", int(p))
}

// KeyName is the entry in the config's api_keys map holding this provider's secret.
func (p Provider) KeyName() string {
	return strings.ToLower(p.String())
}

// GenerateRequest is the input of one generation run.
type GenerateRequest struct {
	Provider string `json:"provider" form:"provider"`
	Context  string `json:"context" form:"context"`
	Notes    string `json:"notes" form:"notes"`
}
