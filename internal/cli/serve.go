package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-scaler/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve image tools over MCP on stdin/stdout",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	loader, log, err := setup(false)
	if err != nil {
		return err
	}

	log.Debug().Str("version", version).Msg("starting image-scaler MCP server")

	// stdout carries the protocol
	return server.New(loader, log).Run(cmd.Context(), os.Stdin, os.Stdout)
}
