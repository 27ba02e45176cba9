package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcp-assist/customtools/internal/cli/output"
)

var argsJSON string

var callCmd = &cobra.Command{
	Use:   "call <tool> [key=value...]",
	Short: "Call a custom tool once",
	Long: `Call a custom tool and print its result. Values are parsed as JSON when
they can be (numbers, booleans, objects) and passed as strings otherwise.`,
	Example: `  customtools call run_javascript script='return 6 * 7'
  customtools read_url url=https://example.com max_length=500`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		toolArgs, err := parseToolArgs(argsJSON, args[1:])
		if err != nil {
			return err
		}

		s, err := openSession(cmd.Context(), logConsole(cmd))
		if err != nil {
			return err
		}
		defer s.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(timeout)*time.Millisecond)
		defer cancel()

		res, err := s.loader.HandleToolCall(ctx, args[0], toolArgs)
		if err != nil {
			return err
		}

		formatter := output.NewFormatter(cmd.OutOrStdout(), outputFormat(), true)
		fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatResult(output.NewCallResult(args[0], res)))
		return nil
	},
}

// parseToolArgs merges the --args object with key=value pairs; pairs win.
func parseToolArgs(base string, pairs []string) (map[string]interface{}, error) {
	toolArgs := make(map[string]interface{})
	if base != "" {
		if err := json.Unmarshal([]byte(base), &toolArgs); err != nil {
			return nil, fmt.Errorf("--args must be a JSON object: %w", err)
		}
	}
	for _, arg := range pairs {
		kv := strings.SplitN(arg, "=", 2)
		if len(kv) != 2 || kv[0] == "" {
			return nil, fmt.Errorf("invalid argument %q: expected key=value", arg)
		}
		toolArgs[kv[0]] = parseValue(kv[1])
	}
	return toolArgs, nil
}

func parseValue(s string) interface{} {
	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err == nil {
		return v
	}
	return s
}

func init() {
	rootCmd.AddCommand(callCmd)
	callCmd.Flags().StringVar(&argsJSON, "args", "", "arguments as a JSON object")
}
