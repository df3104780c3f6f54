package store

import (
	"os"

	"gopkg.in/yaml.v3"
)

// LoadDefaults reads a YAML document of default setting values. Defaults
// ship with the application and sit beneath the operator's overlay: reads
// fall through to them, writes never touch them.
func LoadDefaults(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, storageErr("read defaults", path, err)
	}
	return ParseDefaults(raw)
}

// ParseDefaults decodes YAML defaults from memory. Nested mappings are
// normalised to map[string]any so values compare cleanly against the JSON
// overlay.
func ParseDefaults(raw []byte) (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, storageErr("parse defaults", "", err)
	}
	if doc == nil {
		return map[string]any{}, nil
	}
	normalized := make(map[string]any, len(doc))
	for key, value := range doc {
		normalized[key] = normalizeYAML(value)
	}
	return normalized, nil
}

// normalizeYAML rewrites yaml.v3's map[string]any/[]any trees in place; the
// library already decodes mapping keys as strings, but nested values still
// need a pass so []any elements are normalised too.
func normalizeYAML(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = normalizeYAML(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeYAML(item)
		}
		return out
	default:
		return v
	}
}
