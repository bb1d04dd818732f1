package render

import (
	"strings"

	"github.com/goliatone/go-payeeform/pkg/model"
)

// ErrorMapping splits a server error payload into field-level and form-level
// messages. Field messages are keyed by dotted field path so templates can
// attach them to the owning control.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MapErrorPayload matches server error keys against the derived sections.
// Keys matching a descriptor's ErrorKey or Path attach to that field; unknown
// keys degrade to form-level messages so feedback is never dropped.
func MapErrorPayload(sections []model.Section, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{}
	if len(payload) == 0 {
		return mapping
	}

	byKey := make(map[string]string)
	for _, section := range sections {
		for _, field := range section.Fields {
			if field.ErrorKey != "" {
				byKey[field.ErrorKey] = field.Path
			}
			byKey[field.Path] = field.Path
		}
	}

	for rawKey, messages := range payload {
		cleaned := normalizeMessages(messages)
		if len(cleaned) == 0 {
			continue
		}
		if path, ok := byKey[strings.TrimSpace(rawKey)]; ok {
			if mapping.Fields == nil {
				mapping.Fields = make(map[string][]string)
			}
			mapping.Fields[path] = append(mapping.Fields[path], cleaned...)
			continue
		}
		mapping.Form = append(mapping.Form, cleaned...)
	}

	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
