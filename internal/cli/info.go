package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-scaler/pkg/imagefile"
)

var infoCmd = &cobra.Command{
	Use:   "info <path>",
	Short: "Show image metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	loader, _, err := setup(true)
	if err != nil {
		return err
	}

	img, err := loader.AtLocalPath(args[0])
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	return printImage(cmd.OutOrStdout(), img)
}

func printImage(out io.Writer, img *imagefile.Image) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "path\t%s\n", img.Path())
	fmt.Fprintf(w, "filename\t%s\n", img.Filename())
	fmt.Fprintf(w, "mime\t%s\n", img.MIME())
	fmt.Fprintf(w, "type\t%d\n", img.Type())
	fmt.Fprintf(w, "width\t%d\n", img.Width())
	fmt.Fprintf(w, "height\t%d\n", img.Height())
	fmt.Fprintf(w, "attr\t%s\n", img.Attr())
	fmt.Fprintf(w, "bits\t%d\n", img.Bits())
	fmt.Fprintf(w, "channels\t%d\n", img.Channels())
	return w.Flush()
}
