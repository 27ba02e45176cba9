package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createMinimalTool() Tool {
	return Tool{
		Name:        "read_url",
		Description: "Fetches a web page and returns its readable text",
		InputSchema: &JSONSchema{
			Type: "object",
			Properties: map[string]PropertySchema{
				"url": {Type: "string", Description: "The URL to fetch."},
			},
			Required: []string{"url"},
		},
	}
}

func TestValidateTools_Valid(t *testing.T) {
	result := ValidateTools([]Tool{createMinimalTool()})
	assert.True(t, result.Valid, "Expected valid tool, got errors: %v", result.Errors)
	assert.NoError(t, result.Err())
}

func TestValidateTools_Empty(t *testing.T) {
	result := ValidateTools(nil)
	assert.True(t, result.Valid)
}

func TestValidateTools_Name(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"valid snake case", "brave_web_search", true},
		{"valid with numbers", "wasm_tool2", true},
		{"invalid uppercase", "ReadUrl", false},
		{"invalid dash", "read-url", false},
		{"invalid starts with number", "2tool", false},
		{"missing", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := createMinimalTool()
			tool.Name = tt.input
			result := ValidateTools([]Tool{tool})
			assert.Equal(t, tt.expected, result.Valid, "errors: %v", result.Errors)
		})
	}
}

func TestValidateTools_DuplicateNames(t *testing.T) {
	result := ValidateTools([]Tool{createMinimalTool(), createMinimalTool()})
	require.False(t, result.Valid)
	assert.Contains(t, result.Err().Error(), "duplicate tool name: read_url")
}

func TestValidateTools_InputSchema(t *testing.T) {
	missing := createMinimalTool()
	missing.InputSchema = nil

	wrongType := createMinimalTool()
	wrongType.InputSchema.Type = "string"

	badProperty := createMinimalTool()
	badProperty.InputSchema.Properties["url"] = PropertySchema{Type: "uri"}

	unknownRequired := createMinimalTool()
	unknownRequired.InputSchema.Required = []string{"link"}

	for name, tool := range map[string]Tool{
		"missing":          missing,
		"wrong type":       wrongType,
		"bad property":     badProperty,
		"unknown required": unknownRequired,
	} {
		t.Run(name, func(t *testing.T) {
			result := ValidateTools([]Tool{tool})
			assert.False(t, result.Valid)
			assert.Error(t, result.Err())
		})
	}
}

func TestValidateTools_ShortDescriptionWarns(t *testing.T) {
	tool := createMinimalTool()
	tool.Description = "Fetch"
	result := ValidateTools([]Tool{tool})
	assert.True(t, result.Valid)
	assert.Len(t, result.Warnings, 1)
}

func TestTool_SchemaMap(t *testing.T) {
	schema, err := createMinimalTool().SchemaMap()
	require.NoError(t, err)
	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []interface{}{"url"}, schema["required"])

	empty, err := Tool{Name: "x"}.SchemaMap()
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"type": "object"}, empty)
}
