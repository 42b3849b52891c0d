package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaleman/shrinky/internal/encoder"
	"github.com/yaleman/shrinky/internal/imagedata"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported output formats and whether their encoders work here",
	Args:  cobra.NoArgs,
	RunE:  runFormats,
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

var codecNames = map[imagedata.Format]string{
	imagedata.JPG:  "image/jpeg",
	imagedata.PNG:  "image/png",
	imagedata.WebP: "libwebp",
	imagedata.AVIF: "libheif (AV1)",
	imagedata.HEIC: "libheif (HEVC)",
	imagedata.HEIF: "libheif (HEVC)",
}

func runFormats(cmd *cobra.Command, _ []string) error {
	registry := encoder.NewRegistry(log)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-8s %-10s %-16s %s\n", "Format", "Extension", "Codec", "Available")
	for _, f := range imagedata.AllFormats() {
		avail := "yes"
		if registry.Get(f) == nil {
			avail = "no (missing libheif encoder plugin)"
		}
		fmt.Fprintf(out, "  %-8s %-10s %-16s %s\n", f, f.Extension(), codecNames[f], avail)
	}
	fmt.Fprintln(out)
	return nil
}
