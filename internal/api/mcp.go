// Package api exposes the loaded custom tools over the Model Context Protocol.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sdkjsonrpc "github.com/modelcontextprotocol/go-sdk/jsonrpc"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/xeipuuv/gojsonschema"

	"github.com/mcp-assist/customtools/internal/domain/customtools"
	"github.com/mcp-assist/customtools/internal/domain/registry"
)

// ToolProvider is the part of the loader the bridge needs.
type ToolProvider interface {
	ToolDefinitions() []registry.Tool
	HandleToolCall(ctx context.Context, name string, args map[string]interface{}) (interface{}, error)
}

// NewServer creates an MCP server with every custom tool registered.
func NewServer(name, version string, provider ToolProvider) (*sdkmcp.Server, []string, error) {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{Name: name, Version: version}, nil)
	names, err := RegisterTools(server, provider)
	if err != nil {
		return nil, nil, err
	}
	return server, names, nil
}

// RegisterTools adds the provider's current tool definitions to server and
// returns the registered names.
func RegisterTools(server *sdkmcp.Server, provider ToolProvider) ([]string, error) {
	if server == nil || provider == nil {
		return nil, fmt.Errorf("server and tool provider are required")
	}

	tools := provider.ToolDefinitions()
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		schema, err := tool.SchemaMap()
		if err != nil {
			return names, fmt.Errorf("schema for %s: %w", tool.Name, err)
		}
		validator, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
		if err != nil {
			return names, fmt.Errorf("compile schema for %s: %w", tool.Name, err)
		}

		sdkTool := &sdkmcp.Tool{
			Name:        tool.Name,
			Title:       tool.Title,
			Description: tool.Description,
			InputSchema: schema,
		}
		if a := tool.Annotations; a != nil {
			sdkTool.Annotations = &sdkmcp.ToolAnnotations{
				ReadOnlyHint:    a.ReadOnlyHint,
				DestructiveHint: boolPtr(a.DestructiveHint),
				IdempotentHint:  a.IdempotentHint,
				OpenWorldHint:   boolPtr(a.OpenWorldHint),
			}
		}
		server.AddTool(sdkTool, toolHandler(tool.Name, validator, provider))
		names = append(names, tool.Name)
	}
	return names, nil
}

func toolHandler(name string, validator *gojsonschema.Schema, provider ToolProvider) sdkmcp.ToolHandler {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
		args := map[string]interface{}{}
		if req != nil && req.Params != nil && len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
				return nil, &sdkjsonrpc.Error{Code: sdkjsonrpc.CodeInvalidParams, Message: fmt.Sprintf("invalid arguments: %v", err)}
			}
			if args == nil {
				args = map[string]interface{}{}
			}
		}

		if validator != nil {
			if err := validateArgs(validator, args); err != nil {
				return nil, &sdkjsonrpc.Error{Code: sdkjsonrpc.CodeInvalidParams, Message: err.Error()}
			}
		}

		result, err := provider.HandleToolCall(ctx, name, args)
		if errors.Is(err, customtools.ErrUnknownTool) {
			return nil, &sdkjsonrpc.Error{Code: sdkjsonrpc.CodeInvalidParams, Message: err.Error()}
		}
		return buildCallToolResult(result, err), nil
	}
}

func validateArgs(validator *gojsonschema.Schema, args map[string]interface{}) error {
	res, err := validator.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return fmt.Errorf("validate arguments: %w", err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("invalid arguments: %s", strings.Join(msgs, "; "))
}

func buildCallToolResult(result interface{}, toolErr error) *sdkmcp.CallToolResult {
	res := &sdkmcp.CallToolResult{}
	if toolErr != nil {
		res.IsError = true
		res.Content = []sdkmcp.Content{&sdkmcp.TextContent{Text: toolErr.Error()}}
		return res
	}

	switch v := result.(type) {
	case nil:
		res.Content = []sdkmcp.Content{&sdkmcp.TextContent{Text: "{}"}}
	case string:
		res.Content = []sdkmcp.Content{&sdkmcp.TextContent{Text: v}}
	default:
		data, err := json.Marshal(v)
		if err != nil {
			res.Content = []sdkmcp.Content{&sdkmcp.TextContent{Text: fmt.Sprintf("%v", v)}}
			return res
		}
		res.Content = []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}}
		// Structured content must be a JSON object.
		if len(data) > 0 && data[0] == '{' {
			res.StructuredContent = v
		}
	}
	return res
}

func boolPtr(v bool) *bool {
	return &v
}
