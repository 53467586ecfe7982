package cli

import (
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <source> <destination>",
	Short: "Copy an image to a local path and show its metadata",
	Long: `Copy an image from a local path or an http, ftp or sftp URL.

When the destination has no file name (no dot in its last segment) it is
treated as a directory and the file name is taken from the source URL.
Missing directories are created.

Examples:
  image-scaler fetch https://example.com/media/banner.jpg ./downloads
  image-scaler fetch sftp://user@host/photos/a.jpg ./a.jpg`,
	Args: cobra.ExactArgs(2),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	loader, _, err := setup(true)
	if err != nil {
		return err
	}

	img, err := loader.FromURLToLocalPath(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}

	return printImage(cmd.OutOrStdout(), img)
}
