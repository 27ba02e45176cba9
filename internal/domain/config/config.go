// Package config reads the enabled-tools list and the host-supplied options
// the custom tool plugins are constructed with.
package config

// Config is the top-level structure of the custom tools file.
type Config struct {
	// EnabledTools lists plugin identifiers in load order.
	EnabledTools []string `yaml:"enabled_tools" toml:"enabled_tools" json:"enabled_tools"`
}

// Enabled reports whether id appears in the enabled list.
func (c Config) Enabled(id string) bool {
	for _, t := range c.EnabledTools {
		if t == id {
			return true
		}
	}
	return false
}

// Well-known option keys read by the bundled plugins.
const (
	OptBraveAPIKey      = "brave_api_key"
	OptReadURLToken     = "read_url_token"
	OptReadURLTokenHost = "read_url_token_host"
	OptWASMDir          = "wasm_dir"
)

// Options carries host-supplied plugin parameters such as API keys.
type Options map[string]string

// Get returns the value for key, or "" when unset.
func (o Options) Get(key string) string {
	if o == nil {
		return ""
	}
	return o[key]
}

// Merge returns a copy of o with the non-empty values of other applied on top.
func (o Options) Merge(other Options) Options {
	out := make(Options, len(o)+len(other))
	for k, v := range o {
		out[k] = v
	}
	for k, v := range other {
		if v != "" {
			out[k] = v
		}
	}
	return out
}
