package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mcp-assist/customtools/internal/cli/output"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which enabled plugins loaded and why others failed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), logConsole(cmd))
		if err != nil {
			return err
		}
		defer s.Close()

		if !jsonOutput {
			color.New(color.FgCyan).Fprintln(cmd.OutOrStdout(), "Custom Tools Status:")
		}
		formatter := output.NewFormatter(cmd.OutOrStdout(), outputFormat(), true)
		return formatter.FormatStatus(output.NewStatus(s.configPath, s.results, s.loader.ToolDefinitions()))
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
