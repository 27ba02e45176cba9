package registry

import (
	"fmt"
	"regexp"
)

// ValidationError represents a single validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult holds the result of validating a set of tool schemas.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors,omitempty"`
	Warnings []ValidationError `json:"warnings,omitempty"`
}

// Err collapses the result into a single error, nil when valid.
func (r *ValidationResult) Err() error {
	if r.Valid || len(r.Errors) == 0 {
		return nil
	}
	if len(r.Errors) == 1 {
		return r.Errors[0]
	}
	return fmt.Errorf("%w (and %d more)", r.Errors[0], len(r.Errors)-1)
}

var (
	toolNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

	validPropertyTypes = map[string]bool{
		"string":  true,
		"number":  true,
		"integer": true,
		"boolean": true,
		"object":  true,
		"array":   true,
		"null":    true,
	}
)

// ValidateTools checks the schemas one plugin declares.
func ValidateTools(tools []Tool) *ValidationResult {
	result := &ValidationResult{Valid: true}
	seenNames := make(map[string]bool)

	for i, tool := range tools {
		prefix := fmt.Sprintf("tools[%d]", i)

		if tool.Name == "" {
			result.Errors = append(result.Errors, ValidationError{prefix + ".name", "required"})
		} else {
			if !toolNamePattern.MatchString(tool.Name) {
				result.Errors = append(result.Errors, ValidationError{prefix + ".name", "must be snake_case (lowercase letters, numbers, underscores)"})
			}
			if seenNames[tool.Name] {
				result.Errors = append(result.Errors, ValidationError{prefix + ".name", fmt.Sprintf("duplicate tool name: %s", tool.Name)})
			}
			seenNames[tool.Name] = true
		}

		if tool.Description == "" {
			result.Errors = append(result.Errors, ValidationError{prefix + ".description", "required"})
		} else if len(tool.Description) < 10 {
			result.Warnings = append(result.Warnings, ValidationError{prefix + ".description", "should be at least 10 characters"})
		}

		if tool.InputSchema == nil {
			result.Errors = append(result.Errors, ValidationError{prefix + ".inputSchema", "required"})
			continue
		}
		if tool.InputSchema.Type != "object" {
			result.Errors = append(result.Errors, ValidationError{prefix + ".inputSchema.type", "must be 'object'"})
		}
		validateProperties(prefix+".inputSchema", tool.InputSchema, result)
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func validateProperties(prefix string, schema *JSONSchema, result *ValidationResult) {
	for name, prop := range schema.Properties {
		if prop.Type != "" && !validPropertyTypes[prop.Type] {
			result.Errors = append(result.Errors, ValidationError{
				fmt.Sprintf("%s.properties.%s.type", prefix, name),
				fmt.Sprintf("invalid type: %s", prop.Type),
			})
		}
	}
	for _, req := range schema.Required {
		if _, ok := schema.Properties[req]; !ok {
			result.Errors = append(result.Errors, ValidationError{prefix + ".required", fmt.Sprintf("unknown property: %s", req)})
		}
	}
}
