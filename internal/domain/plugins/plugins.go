// Package plugins holds the bundled custom tool plugins and the table that
// maps their configuration identifiers to constructors.
package plugins

import (
	"errors"

	"github.com/mcp-assist/customtools/internal/domain/config"
	"github.com/mcp-assist/customtools/internal/domain/customtools"
)

// Identifiers accepted in enabled_tools.
const (
	BraveSearchID     = "brave_search"
	ReadURLID         = "read_url"
	CodeInterpreterID = "code_interpreter"
	WASMToolsID       = "wasm_tools"
)

var (
	// ErrMissingAPIKey is returned when a plugin needs a key the host did not supply.
	ErrMissingAPIKey = errors.New("api key not configured")
	// ErrMissingOption is returned when a required option is unset.
	ErrMissingOption = errors.New("required option not set")
)

// Factories returns the constructor for every bundled plugin.
func Factories() map[string]customtools.Factory {
	return map[string]customtools.Factory{
		BraveSearchID: func(opts config.Options) (customtools.Plugin, error) {
			return NewBraveSearch(opts.Get(config.OptBraveAPIKey))
		},
		ReadURLID: func(opts config.Options) (customtools.Plugin, error) {
			return NewReadURL(opts.Get(config.OptReadURLToken), opts.Get(config.OptReadURLTokenHost))
		},
		CodeInterpreterID: func(config.Options) (customtools.Plugin, error) {
			return NewCodeInterpreter(), nil
		},
		WASMToolsID: func(opts config.Options) (customtools.Plugin, error) {
			return NewWASMTools(opts.Get(config.OptWASMDir))
		},
	}
}
