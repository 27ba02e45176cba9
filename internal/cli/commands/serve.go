package commands

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/mcp-assist/customtools/internal/api"
	"github.com/mcp-assist/customtools/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the enabled tools to an MCP client over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol; logs only ever go to stderr.
		s, err := openSession(cmd.Context(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer s.Close()

		server, names, err := api.NewServer("customtools", Version, s.loader)
		if err != nil {
			return err
		}
		logger.Infof("Serving %d custom tools over stdio: %v", len(names), names)

		return server.Run(cmd.Context(), &sdkmcp.StdioTransport{})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
