package customtools

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mcp-assist/customtools/internal/domain/config"
	"github.com/mcp-assist/customtools/internal/domain/registry"
	"github.com/mcp-assist/customtools/internal/logger"
)

// ConfigSource supplies the enabled-tools list.
type ConfigSource interface {
	Load() (config.Config, error)
}

// Loader owns the live plugin instances for one host integration.
//
// Initialize holds the write lock for its whole run, so lookups and calls
// that arrive while it is in flight wait for the complete registry.
type Loader struct {
	mu           sync.RWMutex
	source       ConfigSource
	options      config.Options
	factories    map[string]Factory
	enabledTools []string
	configLoaded bool
	attempted    map[string]bool
	plugins      map[string]Plugin
	order        []string
	results      []PluginResult

	logf func(level, msg string)
}

// NewLoader creates a loader. source may be nil, meaning no tools enabled.
func NewLoader(source ConfigSource, options config.Options, factories map[string]Factory) *Loader {
	return &Loader{
		source:    source,
		options:   options,
		factories: factories,
		attempted: make(map[string]bool),
		plugins:   make(map[string]Plugin),
		logf:      logger.AddLog,
	}
}

// SetLogFunc replaces the log sink.
func (l *Loader) SetLogFunc(fn func(level, msg string)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if fn == nil {
		fn = func(string, string) {}
	}
	l.logf = fn
}

// Initialize reads the configuration on first use and constructs every
// enabled plugin not attempted before. The returned summary covers the
// identifiers attempted by this call. The error is non-nil only when ctx
// ends first.
func (l *Loader) Initialize(ctx context.Context) ([]PluginResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.configLoaded {
		cfg, err := l.loadConfig(ctx)
		if err != nil {
			return nil, err
		}
		l.enabledTools = cfg.EnabledTools
		l.configLoaded = true
	}

	var results []PluginResult
	for _, id := range l.enabledTools {
		if l.attempted[id] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return results, err
		}
		l.attempted[id] = true

		res := l.load(ctx, id)
		if res.OK() {
			l.logf(logger.LevelInfo, fmt.Sprintf("Loaded custom tool plugin: %s", res.ID))
		} else {
			l.logf(logger.LevelError, fmt.Sprintf("Failed to initialize %s tool: %v", res.ID, res.Err))
		}
		results = append(results, res)
		l.results = append(l.results, res)
	}
	return results, nil
}

// loadConfig runs the file read on its own goroutine so a slow disk never
// holds the caller past ctx. Read and parse errors fall back to no tools.
func (l *Loader) loadConfig(ctx context.Context) (config.Config, error) {
	if l.source == nil {
		return config.Config{}, nil
	}

	type loaded struct {
		cfg config.Config
		err error
	}
	ch := make(chan loaded, 1)
	go func() {
		cfg, err := l.source.Load()
		ch <- loaded{cfg: cfg, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			l.logf(logger.LevelError, fmt.Sprintf("Failed to load custom tools config: %v", r.err))
			return config.Config{}, nil
		}
		return r.cfg, nil
	case <-ctx.Done():
		return config.Config{}, ctx.Err()
	}
}

func (l *Loader) load(ctx context.Context, id string) PluginResult {
	factory, ok := l.factories[id]
	if !ok || factory == nil {
		return PluginResult{ID: id, Err: fmt.Errorf("%w for %q", ErrNoFactory, id)}
	}

	plugin, err := construct(factory, l.options)
	if err != nil {
		return PluginResult{ID: id, Err: fmt.Errorf("construct: %w", err)}
	}
	if err := plugin.Initialize(ctx); err != nil {
		return PluginResult{ID: id, Err: fmt.Errorf("initialize: %w", err)}
	}

	l.plugins[id] = plugin
	l.order = append(l.order, id)
	return PluginResult{ID: id}
}

func construct(factory Factory, opts config.Options) (p Plugin, err error) {
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	p, err = factory(opts)
	if err == nil && p == nil {
		err = fmt.Errorf("factory returned no plugin")
	}
	return p, err
}

// snapshot returns the live plugins in insertion order.
func (l *Loader) snapshot() ([]string, []Plugin) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := make([]string, len(l.order))
	copy(ids, l.order)
	plugins := make([]Plugin, len(l.order))
	for i, id := range l.order {
		plugins[i] = l.plugins[id]
	}
	return ids, plugins
}

// ToolDefinitions aggregates the schemas of every live plugin. A plugin
// whose schemas cannot be produced or fail validation is left out.
func (l *Loader) ToolDefinitions() []registry.Tool {
	ids, plugins := l.snapshot()

	definitions := []registry.Tool{}
	for i, p := range plugins {
		tools, _, err := checkDefinitions(p)
		if err != nil {
			l.log(logger.LevelError, fmt.Sprintf("Error getting tool definitions from %s: %v", ids[i], err))
			continue
		}
		definitions = append(definitions, tools...)
	}
	return definitions
}

// Validation runs the schema checks for every live plugin in load order,
// warnings included.
func (l *Loader) Validation() []PluginValidation {
	ids, plugins := l.snapshot()

	out := make([]PluginValidation, 0, len(plugins))
	for i, p := range plugins {
		_, result, err := checkDefinitions(p)
		v := PluginValidation{ID: ids[i], Result: result}
		if result == nil {
			v.Err = err
		}
		out = append(out, v)
	}
	return out
}

func checkDefinitions(p Plugin) ([]registry.Tool, *registry.ValidationResult, error) {
	tools, err := p.ToolDefinitions()
	if err != nil {
		return nil, nil, err
	}
	result := registry.ValidateTools(tools)
	return tools, result, result.Err()
}

// HandleToolCall dispatches to the first plugin that owns name. The plugin's
// result and error are returned unchanged.
func (l *Loader) HandleToolCall(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	p, ok := l.owner(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	if args == nil {
		args = map[string]interface{}{}
	}
	return p.HandleCall(ctx, name, args)
}

// IsCustomTool reports whether a live plugin owns name.
func (l *Loader) IsCustomTool(name string) bool {
	_, ok := l.owner(name)
	return ok
}

func (l *Loader) owner(name string) (Plugin, bool) {
	_, plugins := l.snapshot()
	for _, p := range plugins {
		if p.HandlesTool(name) {
			return p, true
		}
	}
	return nil, false
}

// EnabledTools returns the identifiers read from configuration.
func (l *Loader) EnabledTools() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.enabledTools))
	copy(out, l.enabledTools)
	return out
}

// Loaded returns the identifiers of live plugins in insertion order.
func (l *Loader) Loaded() []string {
	ids, _ := l.snapshot()
	return ids
}

// Results returns every load outcome recorded so far.
func (l *Loader) Results() []PluginResult {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]PluginResult, len(l.results))
	copy(out, l.results)
	return out
}

func (l *Loader) log(level, msg string) {
	l.mu.RLock()
	fn := l.logf
	l.mu.RUnlock()
	fn(level, msg)
}

type closer interface {
	Close(ctx context.Context) error
}

// Close releases plugins that hold resources, in reverse load order. Live
// plugins are dropped so later lookups find nothing.
func (l *Loader) Close(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var errs []error
	for i := len(l.order) - 1; i >= 0; i-- {
		id := l.order[i]
		if c, ok := l.plugins[id].(closer); ok {
			if err := c.Close(ctx); err != nil {
				errs = append(errs, fmt.Errorf("close %s: %w", id, err))
			}
		}
	}
	l.plugins = make(map[string]Plugin)
	l.order = nil
	return errors.Join(errs...)
}
