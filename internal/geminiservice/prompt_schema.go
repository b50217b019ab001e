package geminiservice

import "strings"

/* =================================================================================
							GEMINI SCHEMA DEFINITION
	This is the structure that tells Gemini how to format its JSON response
=================================================================================*/

// Schema type names understood by Gemini "Controlled Generation".
const (
	TypeObject = "OBJECT"
	TypeArray  = "ARRAY"
	TypeString = "STRING"
)

// GeminiSchema defines the structure for "Controlled Generation" (Structured Output).
// It maps to Google's generative-ai-go/genai Schema type.
type GeminiSchema struct {
	// Type defines the data type (e.g., "OBJECT", "ARRAY", "STRING", "INTEGER").
	Type string `json:"type"`

	// Format specifies data format, primarily used for "enum" validation.
	Format string `json:"format,omitempty"`

	// Description explains the field's purpose to the AI, helping it generate better content.
	Description string `json:"description,omitempty"`

	// Properties maps field names to their child schemas (used when Type is "OBJECT").
	Properties map[string]*GeminiSchema `json:"properties,omitempty"`

	// Items defines the schema for elements within an array (used when Type is "ARRAY").
	Items *GeminiSchema `json:"items,omitempty"`

	// Required lists the field names that the AI MUST include in the response.
	Required []string `json:"required,omitempty"`

	// Enum lists valid specific string values for fields with restricted options.
	Enum []string `json:"enum,omitempty"`
}

// JSONSchema converts the Gemini schema into an equivalent JSON Schema document
// so the same shape can be enforced locally on the model's reply.
func (s *GeminiSchema) JSONSchema() map[string]interface{} {
	if s == nil {
		return map[string]interface{}{}
	}

	out := map[string]interface{}{
		"type": strings.ToLower(s.Type),
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		out["enum"] = append([]string(nil), s.Enum...)
	}
	if len(s.Properties) > 0 {
		props := make(map[string]interface{}, len(s.Properties))
		for name, child := range s.Properties {
			props[name] = child.JSONSchema()
		}
		out["properties"] = props
	}
	if len(s.Required) > 0 {
		out["required"] = append([]string(nil), s.Required...)
	}
	if s.Items != nil {
		out["items"] = s.Items.JSONSchema()
	}
	return out
}
