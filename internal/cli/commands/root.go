package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcp-assist/customtools/internal/cli/errors"
	"github.com/mcp-assist/customtools/internal/cli/inference"
	"github.com/mcp-assist/customtools/internal/cli/output"
	"github.com/mcp-assist/customtools/internal/logger"
)

// Version is set at build time.
var Version = "dev"

var (
	cfgFile     string
	optionsFile string
	logDir      string
	jsonOutput  bool
	rawOutput   bool
	verbose     bool
	timeout     int
)

var rootCmd = &cobra.Command{
	Use:   "customtools",
	Short: "Config-driven custom tools for MCP hosts",
	Long: `customtools loads the tool plugins listed under enabled_tools in its
config file and serves them to MCP clients, or runs them directly from the
command line.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI with the process arguments.
func Execute(ctx context.Context) error {
	return ExecuteArgs(ctx, os.Args[1:])
}

// ExecuteArgs runs the CLI with args. Errors are printed classified on
// stderr and returned.
func ExecuteArgs(ctx context.Context, args []string) error {
	// Simple command inference - prepend inferred command to args
	if inferred, _ := inference.InferCommand(args, knownCommands()); inferred != "" {
		args = append([]string{inferred}, args...)
	}
	rootCmd.SetArgs(args)
	defer logger.Close()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		formatter := output.NewFormatter(rootCmd.ErrOrStderr(), outputFormat(), !jsonOutput)
		fmt.Fprintln(rootCmd.ErrOrStderr(), formatter.FormatError(errors.Classify(err)))
	}
	return err
}

func knownCommands() []string {
	known := []string{"help", "completion"}
	for _, c := range rootCmd.Commands() {
		known = append(known, c.Name())
		known = append(known, c.Aliases...)
	}
	return known
}

func outputFormat() output.OutputFormat {
	switch {
	case jsonOutput:
		return output.FormatJSON
	case rawOutput:
		return output.FormatRaw
	}
	return output.FormatText
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yaml next to the executable)")
	rootCmd.PersistentFlags().StringVar(&optionsFile, "options", "", "YAML file with plugin options such as brave_api_key")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "directory for JSON log files (disabled when empty)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&rawOutput, "raw", false, "raw output (no formatting)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "echo log lines to stderr")
	rootCmd.PersistentFlags().IntVar(&timeout, "timeout", 30000, "tool call timeout in milliseconds")
}
