package commands

import (
	"github.com/spf13/cobra"

	"github.com/mcp-assist/customtools/internal/cli/output"
)

var listSchema bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the tools provided by enabled plugins",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), logConsole(cmd))
		if err != nil {
			return err
		}
		defer s.Close()

		formatter := output.NewFormatter(cmd.OutOrStdout(), outputFormat(), true)
		return formatter.FormatTools(s.loader.ToolDefinitions(), listSchema)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listSchema, "schema", false, "include a parameters column")
}
