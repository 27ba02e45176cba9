// Package customtools loads the tool plugins enabled in the custom tools
// configuration and routes tool calls to the plugin that owns each name.
package customtools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mcp-assist/customtools/internal/domain/config"
	"github.com/mcp-assist/customtools/internal/domain/registry"
)

var (
	// ErrUnknownTool is returned when no loaded plugin owns a tool name.
	ErrUnknownTool = errors.New("unknown custom tool")
	// ErrNoFactory marks an enabled identifier with no registered plugin.
	ErrNoFactory = errors.New("no plugin registered")
)

// Plugin implements one or more tools.
type Plugin interface {
	// Initialize performs plugin-specific setup after construction.
	Initialize(ctx context.Context) error
	// ToolDefinitions returns the schemas of every tool the plugin provides.
	ToolDefinitions() ([]registry.Tool, error)
	// HandlesTool reports whether the plugin owns name.
	HandlesTool(name string) bool
	// HandleCall runs an owned tool.
	HandleCall(ctx context.Context, name string, args map[string]interface{}) (interface{}, error)
}

// Factory constructs a plugin from host options.
type Factory func(opts config.Options) (Plugin, error)

// PluginResult is the outcome of loading one enabled identifier.
type PluginResult struct {
	ID  string `json:"id"`
	Err error  `json:"-"`
}

// OK reports whether the plugin is live.
func (r PluginResult) OK() bool {
	return r.Err == nil
}

// Status renders the outcome for display.
func (r PluginResult) Status() string {
	if r.Err == nil {
		return "loaded"
	}
	return fmt.Sprintf("failed: %v", r.Err)
}

// PluginValidation is the schema check of one live plugin. Err is set when
// the plugin could not produce its definitions at all.
type PluginValidation struct {
	ID     string                     `json:"id"`
	Result *registry.ValidationResult `json:"result,omitempty"`
	Err    error                      `json:"-"`
}

// Valid reports whether the definitions were produced and passed.
func (v PluginValidation) Valid() bool {
	return v.Err == nil && v.Result != nil && v.Result.Valid
}
