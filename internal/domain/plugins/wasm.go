package plugins

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"

	"github.com/mcp-assist/customtools/internal/domain/registry"
)

const (
	wasmToolPrefix     = "wasm_"
	defaultWASMTimeout = 30 * time.Second
)

// wasmSidecar is the optional <module>.json describing a module's tool.
type wasmSidecar struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	InputSchema *registry.JSONSchema `json:"inputSchema"`
}

type wasmModule struct {
	tool     registry.Tool
	path     string
	compiled wazero.CompiledModule
}

// WASMTools exposes every WASI command module in a directory as a tool.
// The call arguments are written to the module's stdin as JSON and whatever
// it prints to stdout is the result.
type WASMTools struct {
	dir     string
	timeout time.Duration
	runtime wazero.Runtime
	modules map[string]*wasmModule
	names   []string
}

func NewWASMTools(dir string) (*WASMTools, error) {
	if dir == "" {
		return nil, fmt.Errorf("wasm tools: wasm_dir: %w", ErrMissingOption)
	}
	return &WASMTools{
		dir:     dir,
		timeout: defaultWASMTimeout,
		modules: make(map[string]*wasmModule),
	}, nil
}

// Initialize compiles every *.wasm file in the directory. A module that
// fails to compile fails the whole plugin.
func (w *WASMTools) Initialize(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("read wasm dir: %w", err)
	}

	w.runtime = wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig().WithCloseOnContextDone(true))
	wasi_snapshot_preview1.MustInstantiate(ctx, w.runtime)

	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".wasm") {
			continue
		}
		path := filepath.Join(w.dir, e.Name())
		mod, err := w.compile(ctx, path)
		if err != nil {
			w.runtime.Close(ctx)
			w.runtime = nil
			return fmt.Errorf("%s: %w", e.Name(), err)
		}
		if _, dup := w.modules[mod.tool.Name]; dup {
			w.runtime.Close(ctx)
			w.runtime = nil
			return fmt.Errorf("%s: tool name %s already taken", e.Name(), mod.tool.Name)
		}
		w.modules[mod.tool.Name] = mod
		w.names = append(w.names, mod.tool.Name)
	}
	sort.Strings(w.names)
	return nil
}

func (w *WASMTools) compile(ctx context.Context, path string) (*wasmModule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	compiled, err := w.runtime.CompileModule(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	tool := registry.Tool{
		Name:        wasmToolPrefix + sanitizeToolName(base),
		Title:       base,
		Description: fmt.Sprintf("Runs the %s WebAssembly module with the arguments as JSON on stdin.", base),
		InputSchema: &registry.JSONSchema{Type: "object"},
	}

	sidecar := strings.TrimSuffix(path, filepath.Ext(path)) + ".json"
	if raw, err := os.ReadFile(sidecar); err == nil {
		var meta wasmSidecar
		if err := json.Unmarshal(raw, &meta); err != nil {
			return nil, fmt.Errorf("parse %s: %w", filepath.Base(sidecar), err)
		}
		if meta.Title != "" {
			tool.Title = meta.Title
		}
		if meta.Description != "" {
			tool.Description = meta.Description
		}
		if meta.InputSchema != nil {
			tool.InputSchema = meta.InputSchema
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	return &wasmModule{tool: tool, path: path, compiled: compiled}, nil
}

func sanitizeToolName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func (w *WASMTools) ToolDefinitions() ([]registry.Tool, error) {
	tools := make([]registry.Tool, 0, len(w.names))
	for _, name := range w.names {
		tools = append(tools, w.modules[name].tool)
	}
	return tools, nil
}

func (w *WASMTools) HandlesTool(name string) bool {
	_, ok := w.modules[name]
	return ok
}

func (w *WASMTools) HandleCall(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	mod, ok := w.modules[name]
	if !ok {
		return nil, fmt.Errorf("wasm tools do not provide %s", name)
	}

	input, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("encode arguments: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cfg := wazero.NewModuleConfig().
		WithName("").
		WithStdin(bytes.NewReader(input)).
		WithStdout(&stdout).
		WithStderr(&stderr).
		WithArgs(mod.tool.Title)

	// Instantiation runs _start; the call finishes when the module exits.
	instance, err := w.runtime.InstantiateModule(ctx, mod.compiled, cfg)
	if instance != nil {
		defer instance.Close(ctx)
	}
	if err != nil {
		var exitErr *sys.ExitError
		if !errors.As(err, &exitErr) || exitErr.ExitCode() != 0 {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return nil, fmt.Errorf("%s failed: %w: %s", name, err, truncate(msg, 500))
			}
			return nil, fmt.Errorf("%s failed: %w", name, err)
		}
	}

	out := bytes.TrimSpace(stdout.Bytes())
	var parsed interface{}
	if len(out) > 0 && json.Unmarshal(out, &parsed) == nil {
		return parsed, nil
	}
	return string(out), nil
}

// Close releases the runtime and every compiled module.
func (w *WASMTools) Close(ctx context.Context) error {
	if w.runtime == nil {
		return nil
	}
	return w.runtime.Close(ctx)
}
