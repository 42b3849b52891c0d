package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/yaleman/shrinky/internal/hasher"
	"github.com/yaleman/shrinky/internal/imagedata"
)

// runInfo prints what shrinky knows about an image without writing anything.
// Reached through the --info flag.
func runInfo(cmd *cobra.Command, filename string) error {
	img, err := imagedata.Load(filename)
	if err != nil {
		return fmt.Errorf("error loading image: %w", err)
	}
	format, err := imagedata.FormatFromFilename(filename)
	if err != nil {
		return err
	}

	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("open %s: %w", filename, err)
	}
	defer f.Close()
	digest, err := hasher.DigestReader(f)
	if err != nil {
		return fmt.Errorf("digest %s: %w", filename, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  File:       %s\n", filename)
	fmt.Fprintf(out, "  Format:     %s\n", format)
	fmt.Fprintf(out, "  Dimensions: %s\n", img.OriginalGeometry)
	fmt.Fprintf(out, "  File size:  %s bytes\n", humanize.Comma(img.OriginalFileSize))
	fmt.Fprintf(out, "  Digest:     %s\n", digest)
	fmt.Fprintln(out)
	return nil
}
