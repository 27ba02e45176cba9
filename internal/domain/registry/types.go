// Package registry provides the tool schema types plugins declare and the
// validation applied to them before they are exposed to MCP clients.
package registry

import "encoding/json"

// Tool represents a single tool/function exposed by a plugin.
type Tool struct {
	Name         string                 `json:"name"`
	Title        string                 `json:"title,omitempty"`
	Description  string                 `json:"description"`
	InputSchema  *JSONSchema            `json:"inputSchema"`
	OutputSchema *JSONSchema            `json:"outputSchema,omitempty"`
	SampleInput  map[string]interface{} `json:"sampleInput,omitempty"`
	Annotations  *ToolAnnotations       `json:"annotations,omitempty"`
}

// JSONSchema represents a JSON Schema for tool input/output.
type JSONSchema struct {
	Type       string                    `json:"type"`
	Properties map[string]PropertySchema `json:"properties,omitempty"`
	Required   []string                  `json:"required,omitempty"`
	Items      *PropertySchema           `json:"items,omitempty"`
}

// PropertySchema defines a single property in a JSON Schema.
type PropertySchema struct {
	Type        string                    `json:"type,omitempty"`
	Description string                    `json:"description,omitempty"`
	Default     interface{}               `json:"default,omitempty"`
	Enum        []string                  `json:"enum,omitempty"`
	Minimum     *int                      `json:"minimum,omitempty"`
	Maximum     *int                      `json:"maximum,omitempty"`
	MinLength   *int                      `json:"minLength,omitempty"`
	MaxLength   *int                      `json:"maxLength,omitempty"`
	Items       *PropertySchema           `json:"items,omitempty"`
	Properties  map[string]PropertySchema `json:"properties,omitempty"`
}

// ToolAnnotations provides hints about tool behavior.
type ToolAnnotations struct {
	ReadOnlyHint    bool `json:"readOnlyHint,omitempty"`
	DestructiveHint bool `json:"destructiveHint,omitempty"`
	IdempotentHint  bool `json:"idempotentHint,omitempty"`
	OpenWorldHint   bool `json:"openWorldHint,omitempty"`
}

// IntPtr is a helper for the optional numeric bounds of PropertySchema.
func IntPtr(v int) *int {
	return &v
}

// SchemaMap returns the input schema as a generic JSON object, the shape
// MCP SDKs and JSON Schema validators consume.
func (t Tool) SchemaMap() (map[string]interface{}, error) {
	if t.InputSchema == nil {
		return map[string]interface{}{"type": "object"}, nil
	}
	data, err := json.Marshal(t.InputSchema)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
