package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// envOptions maps environment variables onto option keys.
var envOptions = map[string]string{
	"BRAVE_API_KEY":       OptBraveAPIKey,
	"READ_URL_TOKEN":      OptReadURLToken,
	"READ_URL_TOKEN_HOST": OptReadURLTokenHost,
	"WASM_TOOLS_DIR":      OptWASMDir,
}

// LoadOptions reads a flat YAML map of options. An empty path or a missing
// file yields empty options.
func LoadOptions(path string) (Options, error) {
	opts := Options{}
	if path == "" {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return nil, fmt.Errorf("failed to read options %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("failed to parse options %s: %w", path, err)
	}
	if opts == nil {
		opts = Options{}
	}
	return opts, nil
}

// OptionsFromEnv collects the options set through environment variables.
func OptionsFromEnv() Options {
	opts := Options{}
	for env, key := range envOptions {
		if v := os.Getenv(env); v != "" {
			opts[key] = v
		}
	}
	return opts
}
