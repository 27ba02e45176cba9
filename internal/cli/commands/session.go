package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mcp-assist/customtools/internal/domain/config"
	"github.com/mcp-assist/customtools/internal/domain/customtools"
	"github.com/mcp-assist/customtools/internal/domain/plugins"
	"github.com/mcp-assist/customtools/internal/logger"
)

// secrets is the credential store consulted for option values.
var secrets config.SecretStore = config.NewKeychain("customtools")

// session is an initialized loader plus what it was built from.
type session struct {
	configPath string
	loader     *customtools.Loader
	results    []customtools.PluginResult
}

// openSession wires logging, options and the config store into a loader and
// initializes it. Options layer as file, then credential store, then
// environment, later sources winning.
// Log lines are echoed to console; nil keeps them off the terminal.
func openSession(ctx context.Context, console io.Writer) (*session, error) {
	logger.SetConsole(console)
	if logDir != "" {
		if err := logger.Init(logDir); err != nil {
			return nil, err
		}
	}

	fileOpts, err := config.LoadOptions(optionsFile)
	if err != nil {
		return nil, err
	}
	opts := fileOpts.Merge(config.OptionsFromSecrets(secrets)).Merge(config.OptionsFromEnv())

	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}

	loader := customtools.NewLoader(config.NewStore(path), opts, plugins.Factories())
	results, err := loader.Initialize(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize custom tools: %w", err)
	}
	return &session{configPath: path, loader: loader, results: results}, nil
}

func (s *session) Close() {
	if err := s.loader.Close(context.Background()); err != nil {
		logger.Warnf("closing plugins: %v", err)
	}
}

// logConsole returns where log lines go for commands whose output is the
// point: stderr with --verbose, nowhere otherwise.
func logConsole(cmd *cobra.Command) io.Writer {
	if verbose {
		return cmd.ErrOrStderr()
	}
	return nil
}
