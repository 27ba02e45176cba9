package commands

import (
	"github.com/spf13/cobra"

	"github.com/mcp-assist/customtools/internal/cli/output"
	"github.com/mcp-assist/customtools/internal/logger"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Load the enabled plugins and print the log of that start-up",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.ClearLogs()
		s, err := openSession(cmd.Context(), nil)
		if err != nil {
			return err
		}
		s.Close()

		formatter := output.NewFormatter(cmd.OutOrStdout(), outputFormat(), true)
		return formatter.FormatLogs(logger.GetLogs())
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)
}
