package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-scaler/pkg/imagefile"
)

var (
	scaleFactor float64
	scaleWidth  int
	scaleHeight int
)

var scaleCmd = &cobra.Command{
	Use:   "scale <source> <destination>",
	Short: "Write a scaled copy of a JPEG image",
	Long: `Write a scaled copy of a JPEG image. Exactly one of --factor, --width
or --height must be given. The aspect ratio is always preserved.

Examples:
  image-scaler scale photo.jpg thumbs/photo.jpg --factor 0.5
  image-scaler scale photo.jpg thumbs/photo.jpg --width 320`,
	Args: cobra.ExactArgs(2),
	RunE: runScale,
}

func init() {
	scaleCmd.Flags().Float64Var(&scaleFactor, "factor", 0, "scale factor (e.g. 0.5)")
	scaleCmd.Flags().IntVar(&scaleWidth, "width", 0, "target width in pixels")
	scaleCmd.Flags().IntVar(&scaleHeight, "height", 0, "target height in pixels")
	scaleCmd.MarkFlagsMutuallyExclusive("factor", "width", "height")
	scaleCmd.MarkFlagsOneRequired("factor", "width", "height")

	rootCmd.AddCommand(scaleCmd)
}

func runScale(cmd *cobra.Command, args []string) error {
	loader, _, err := setup(true)
	if err != nil {
		return err
	}

	img, err := loader.AtLocalPath(args[0])
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	var scaled *imagefile.Image
	switch {
	case cmd.Flags().Changed("width"):
		scaled, err = img.ScaleToWidth(scaleWidth, args[1])
	case cmd.Flags().Changed("height"):
		scaled, err = img.ScaleToHeight(scaleHeight, args[1])
	default:
		scaled, err = img.Scale(scaleFactor, args[1])
	}
	if err != nil {
		return err
	}

	return printImage(cmd.OutOrStdout(), scaled)
}
