package plugins

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dop251/goja"

	"github.com/mcp-assist/customtools/internal/domain/registry"
	"github.com/mcp-assist/customtools/internal/logger"
)

const (
	codeInterpreterToolName = "run_javascript"
	defaultScriptTimeout    = 10 * time.Second
)

// CodeInterpreter runs sandboxed JavaScript snippets. Every call gets a
// fresh runtime; nothing leaks between calls.
type CodeInterpreter struct {
	timeout time.Duration
	logf    func(format string, args ...interface{})
}

func NewCodeInterpreter() *CodeInterpreter {
	return &CodeInterpreter{
		timeout: defaultScriptTimeout,
		logf:    logger.Infof,
	}
}

func (i *CodeInterpreter) Initialize(ctx context.Context) error {
	return nil
}

func (i *CodeInterpreter) ToolDefinitions() ([]registry.Tool, error) {
	return []registry.Tool{
		{
			Name:        codeInterpreterToolName,
			Title:       "Code Interpreter",
			Description: "Executes JavaScript in a sandbox and returns the value of the script's return statement. Useful for arithmetic, date math and reshaping data.",
			InputSchema: &registry.JSONSchema{
				Type: "object",
				Properties: map[string]registry.PropertySchema{
					"script": {
						Type:        "string",
						Description: "JavaScript function body. Use 'return' to produce the result; 'args' holds the arguments object and log(msg) writes to the host log.",
					},
					"arguments": {
						Type:        "object",
						Description: "Optional values exposed to the script as 'args'.",
					},
				},
				Required: []string{"script"},
			},
			Annotations: &registry.ToolAnnotations{IdempotentHint: true},
		},
	}, nil
}

func (i *CodeInterpreter) HandlesTool(name string) bool {
	return name == codeInterpreterToolName
}

func (i *CodeInterpreter) HandleCall(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	if !i.HandlesTool(name) {
		return nil, fmt.Errorf("code interpreter does not provide %s", name)
	}
	script := getString(args, "script")
	if script == "" {
		return nil, fmt.Errorf("script is required")
	}
	scriptArgs, _ := args["arguments"].(map[string]interface{})

	value, err := i.Execute(ctx, script, scriptArgs)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"result": value}, nil
}

// Execute runs script wrapped in a function so 'return' works at top level.
func (i *CodeInterpreter) Execute(ctx context.Context, script string, args map[string]interface{}) (interface{}, error) {
	if args == nil {
		args = map[string]interface{}{}
	}

	vm := goja.New()
	vm.SetFieldNameMapper(goja.TagFieldNameMapper("json", true))
	if err := vm.Set("args", args); err != nil {
		return nil, err
	}
	if err := vm.Set("log", func(msg interface{}) {
		i.logf("[run_javascript] %v", msg)
	}); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, func() {
		vm.Interrupt(ctx.Err())
	})
	defer stop()

	value, err := vm.RunString(fmt.Sprintf("(function() {\n%s\n})()", script))
	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			return nil, fmt.Errorf("script interrupted: %w", ctx.Err())
		}
		return nil, fmt.Errorf("script error: %w", err)
	}
	if value == nil || goja.IsUndefined(value) || goja.IsNull(value) {
		return nil, nil
	}
	return value.Export(), nil
}
