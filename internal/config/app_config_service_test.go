package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleConfig = `{
    "api_keys": {"gemini": "g-key", "chatgpt": "sk-123", "copilot": "gh-tok"},
    "ia_role": "Especialista em Metodologia Ágil <PO>",
    "playbook_text": "Slide 1\nSlide 2",
    "prompts": {
        "epic": "Crie um épico",
        "feature": "Crie uma feature",
        "user_story": "Crie uma user story",
        "task": "Crie tasks"
    },
    "theme": {"dark": true}
}`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppConfigPreservesKeys(t *testing.T) {
	svc := NewAppConfigService(writeConfig(t, sampleConfig))

	cfg, err := svc.LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if cfg.APIKeys["gemini"] != "g-key" || cfg.APIKeys["chatgpt"] != "sk-123" || cfg.APIKeys["copilot"] != "gh-tok" {
		t.Fatalf("api keys = %#v", cfg.APIKeys)
	}
	if cfg.IARole != "Especialista em Metodologia Ágil <PO>" {
		t.Fatalf("ia_role = %q", cfg.IARole)
	}
	if cfg.PlaybookText == nil || *cfg.PlaybookText != "Slide 1\nSlide 2" {
		t.Fatalf("playbook_text = %v", cfg.PlaybookText)
	}
	if len(cfg.Prompts) != 4 || cfg.Prompts["user_story"] != "Crie uma user story" {
		t.Fatalf("prompts = %#v", cfg.Prompts)
	}
	if _, ok := cfg.Extra["theme"]; !ok {
		t.Fatalf("unknown key not kept: %#v", cfg.Extra)
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	svc := NewAppConfigService(filepath.Join(t.TempDir(), "nope.json"))
	_, err := svc.LoadAppConfig()
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("err = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadAppConfigRequiresPrompts(t *testing.T) {
	svc := NewAppConfigService(writeConfig(t, `{"api_keys": {}, "ia_role": "x"}`))
	_, err := svc.LoadAppConfig()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestSaveAfterEditRoundTrip(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	svc := NewAppConfigService(path)

	cfg, err := svc.LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	cfg.Prompts["task"] = "Quebre em tasks técnicas & estimadas"
	if err := svc.SaveAppConfig(cfg); err != nil {
		t.Fatalf("SaveAppConfig: %v", err)
	}

	again, err := svc.LoadAppConfig()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.Prompts["task"] != "Quebre em tasks técnicas & estimadas" {
		t.Fatalf("edit lost: %q", again.Prompts["task"])
	}
	if again.Prompts["epic"] != "Crie um épico" || again.IARole != cfg.IARole || *again.PlaybookText != *cfg.PlaybookText {
		t.Fatalf("other fields changed: %#v", again)
	}
	if len(again.APIKeys) != 3 || again.APIKeys["chatgpt"] != "sk-123" {
		t.Fatalf("api keys changed: %#v", again.APIKeys)
	}
	var theme bytes.Buffer
	if err := json.Compact(&theme, again.Extra["theme"]); err != nil || theme.String() != `{"dark":true}` {
		t.Fatalf("extra = %s (%v)", again.Extra["theme"], err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(raw), "Ágil <PO>") || !strings.Contains(string(raw), "técnicas & estimadas") {
		t.Fatalf("non-ascii or html characters were escaped:\n%s", raw)
	}
}

func TestSaveWithoutPlaybookOmitsKey(t *testing.T) {
	path := writeConfig(t, `{"api_keys": {"gemini": ""}, "ia_role": "", "prompts": {"epic": "e"}}`)
	svc := NewAppConfigService(path)
	cfg, err := svc.LoadAppConfig()
	if err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if cfg.HasPlaybook() {
		t.Fatalf("unexpected playbook")
	}
	if err := svc.SaveAppConfig(cfg); err != nil {
		t.Fatalf("SaveAppConfig: %v", err)
	}
	raw, _ := os.ReadFile(path)
	if strings.Contains(string(raw), "playbook_text") {
		t.Fatalf("playbook_text should be omitted:\n%s", raw)
	}
}
