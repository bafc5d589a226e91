package convlog

import (
	"fmt"
	"strings"

	"github.com/mwiater/docchat/internal/display"
	"github.com/xeipuuv/gojsonschema"
)

var stringList = map[string]any{
	"type":        "array",
	"items":       map[string]any{"type": "string"},
	"uniqueItems": true,
}

// entrySchema describes one saved message. Content objects carrying a known
// mode must match that mode's record shape; anything else is accepted and
// replayed verbatim.
var entrySchema = map[string]any{
	"type":     "object",
	"required": []string{"role"},
	"properties": map[string]any{
		"role": map[string]any{"type": "string"},
		"content": map[string]any{
			"allOf": []any{
				modeRule(display.ModeSearch, map[string]any{
					"answer":           map[string]any{"type": "string"},
					"no_file_path_flg": map[string]any{"type": "boolean"},
					"file_info_list":   stringList,
					"main_message":     map[string]any{"type": "string"},
					"main_file_path":   map[string]any{"type": "string"},
					"sub_message":      map[string]any{"type": "string"},
					"sub_choices": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":       "object",
							"properties": map[string]any{"source": map[string]any{"type": "string"}},
						},
					},
				}),
				modeRule(display.ModeInquiry, map[string]any{
					"answer":         map[string]any{"type": "string"},
					"message":        map[string]any{"type": "string"},
					"file_info_list": stringList,
				}),
			},
		},
	},
}

// logSchema describes a whole saved conversation log.
var logSchema = map[string]any{
	"$schema":  "http://json-schema.org/draft-07/schema#",
	"type":     "object",
	"required": []string{"messages"},
	"properties": map[string]any{
		"session_id": map[string]any{"type": "string"},
		"started_at": map[string]any{"type": "string"},
		"messages": map[string]any{
			"type":  "array",
			"items": entrySchema,
		},
	},
}

func modeRule(mode display.Mode, properties map[string]any) map[string]any {
	return map[string]any{
		"if": map[string]any{
			"type":       "object",
			"required":   []string{"mode"},
			"properties": map[string]any{"mode": map[string]any{"const": string(mode)}},
		},
		"then": map[string]any{
			"properties": properties,
		},
	}
}

// ValidateDocument checks a saved log against the log schema.
func ValidateDocument(data []byte) error {
	return validateAgainst(logSchema, data, "conversation log")
}

// ValidateEntry checks one saved message against the entry schema.
func ValidateEntry(data []byte) error {
	return validateAgainst(entrySchema, data, "message")
}

func validateAgainst(schema map[string]any, data []byte, what string) error {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var details []string
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return fmt.Errorf("%s failed validation: %s", what, strings.Join(details, "; "))
}
