package domain

import "testing"

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"short", "****"},
		{"sk-proj-abcdef1234", "****1234"},
	}
	for _, tt := range tests {
		if got := MaskAPIKey(tt.in); got != tt.want {
			t.Fatalf("MaskAPIKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMaskedRoundTrip(t *testing.T) {
	cur := &AppConfig{
		APIKeys: map[string]string{"gemini": "g-secret-9876", "chatgpt": "", "copilot": "c-old-key-0000"},
		Prompts: map[string]string{},
	}
	shown := cur.Masked()
	if shown.APIKeys["gemini"] != "****9876" || shown.APIKeys["chatgpt"] != "" {
		t.Fatalf("masked = %v", shown.APIKeys)
	}
	if cur.APIKeys["gemini"] != "g-secret-9876" {
		t.Fatalf("Masked mutated the receiver")
	}

	shown.APIKeys["copilot"] = "c-new-key"
	shown.RestoreMaskedKeys(cur)
	if shown.APIKeys["gemini"] != "g-secret-9876" {
		t.Fatalf("masked key not restored: %q", shown.APIKeys["gemini"])
	}
	if shown.APIKeys["copilot"] != "c-new-key" {
		t.Fatalf("edited key overwritten: %q", shown.APIKeys["copilot"])
	}
	if shown.APIKeys["chatgpt"] != "" {
		t.Fatalf("empty key changed: %q", shown.APIKeys["chatgpt"])
	}
}
