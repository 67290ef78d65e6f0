package domain

import (
	"bytes"
	"encoding/json"
)

// AppConfig is the persisted assistant configuration (config.json).
type AppConfig struct {
	APIKeys      map[string]string `json:"api_keys"`
	IARole       string            `json:"ia_role"`
	PlaybookText *string           `json:"playbook_text,omitempty"`
	Prompts      map[string]string `json:"prompts"`

	// Extra holds top-level keys this version does not know about so that a
	// save writes them back untouched.
	Extra map[string]json.RawMessage `json:"-"`
}

type appConfigFields AppConfig

var knownKeys = []string{"api_keys", "ia_role", "playbook_text", "prompts"}

func (c *AppConfig) UnmarshalJSON(data []byte) error {
	var fields appConfigFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range knownKeys {
		delete(raw, k)
	}
	*c = AppConfig(fields)
	if len(raw) > 0 {
		c.Extra = raw
	}
	return nil
}

func (c AppConfig) MarshalJSON() ([]byte, error) {
	known, err := marshalNoEscape(appConfigFields(c))
	if err != nil {
		return nil, err
	}
	if len(c.Extra) == 0 {
		return known, nil
	}
	merged := make(map[string]json.RawMessage, len(c.Extra)+len(knownKeys))
	for k, v := range c.Extra {
		merged[k] = v
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(known, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		merged[k] = v
	}
	return marshalNoEscape(merged)
}

// HasPlaybook reports whether playbook text is present in the config.
func (c *AppConfig) HasPlaybook() bool {
	return c.PlaybookText != nil
}

// Clone returns a deep copy.
func (c *AppConfig) Clone() *AppConfig {
	if c == nil {
		return nil
	}
	out := &AppConfig{
		APIKeys: cloneStrings(c.APIKeys),
		IARole:  c.IARole,
		Prompts: cloneStrings(c.Prompts),
	}
	if c.PlaybookText != nil {
		text := *c.PlaybookText
		out.PlaybookText = &text
	}
	if c.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(c.Extra))
		for k, v := range c.Extra {
			out.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

func cloneStrings(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MaskAPIKey hides all but the last four characters of a key. Empty keys stay
// empty so clients can still tell which providers are unconfigured.
func MaskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	r := []rune(key)
	if len(r) < 8 {
		return keyMask
	}
	return keyMask + string(r[len(r)-4:])
}

const keyMask = "****"

// Masked returns a copy whose API keys are masked for display.
func (c *AppConfig) Masked() *AppConfig {
	out := c.Clone()
	for name, key := range out.APIKeys {
		out.APIKeys[name] = MaskAPIKey(key)
	}
	return out
}

// RestoreMaskedKeys puts back keys from current that c echoes in masked form,
// so a config read through Masked can be posted back unchanged.
func (c *AppConfig) RestoreMaskedKeys(current *AppConfig) {
	if current == nil {
		return
	}
	for name, key := range c.APIKeys {
		old, ok := current.APIKeys[name]
		if ok && old != "" && key == MaskAPIKey(old) {
			c.APIKeys[name] = old
		}
	}
}
