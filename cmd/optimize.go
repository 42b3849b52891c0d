package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaleman/shrinky/internal/encoder"
	"github.com/yaleman/shrinky/internal/hasher"
	"github.com/yaleman/shrinky/internal/imagedata"
)

func runOptimize(cmd *cobra.Command, args []string) error {
	filename := args[0]

	info, err := os.Stat(filename)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("file not found: %s", filename)
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", filename, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a file: %s", filename)
	}

	if flagInfo {
		return runInfo(cmd, filename)
	}

	log.Infof("processing image: %s", filename)
	img, err := imagedata.Load(filename)
	if err != nil {
		return fmt.Errorf("error loading image: %w", err)
	}

	if flagGeometry != "" {
		target, err := imagedata.ParseGeometry(flagGeometry)
		if err != nil {
			return fmt.Errorf("error parsing geometry: %w", err)
		}
		if !target.IsEmpty() {
			img.TargetGeometry = target
			resized := img.Resize()
			log.Debugf("resized image to %s", resized)
		}
	}

	registry := encoder.NewRegistry(log)
	log.Debugf("%s", registry)

	var data []byte
	if flagOutputType != "" {
		format, err := imagedata.ParseFormat(flagOutputType)
		if err != nil {
			return fmt.Errorf("error parsing output type: %w", err)
		}
		data, err = registry.Encode(img.Img, format, flagQuality)
		if err != nil {
			return fmt.Errorf("error encoding image as %s: %w", format, err)
		}
		img.OutputFormat = format
		log.Infof("encoded image to format %s, size %d bytes", format, len(data))
	} else {
		format, encoded, err := registry.EncodeSmallest(img.Img, flagQuality)
		if err != nil {
			return fmt.Errorf("error optimizing image: %w", err)
		}
		data = encoded
		img.OutputFormat = format
		log.Infof("optimized image to format %s, size %d bytes", format, len(data))
	}

	if len(data) == 0 {
		return errors.New("no image data to write, this is probably a bug")
	}

	if img.WillOverwrite() && !flagForce {
		return fmt.Errorf("output file %s already exists, use --force to overwrite", img.OutputFilename())
	}

	outPath := img.OutputFilename()
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("error writing image to %s: %w", outPath, err)
	}
	log.Infof("wrote %s (%d bytes)", outPath, len(data))
	log.Debugf("output digest %s", hasher.Digest(data))

	if flagDelete {
		offerDeleteSource(cmd, img, int64(len(data)))
	}
	return nil
}

// deleteWorthwhile reports whether removing the original buys anything: the
// output must be a different format or strictly smaller.
func deleteWorthwhile(originalFormat, outputFormat imagedata.Format, originalSize, outputSize int64) bool {
	return originalFormat != outputFormat || outputSize < originalSize
}

// offerDeleteSource prompts for removal of the input file after a
// conversion. It never fails the run: the optimized file is already on disk,
// so prompt and removal problems are only logged.
func offerDeleteSource(cmd *cobra.Command, img *imagedata.Image, outputSize int64) {
	if img.WillOverwrite() {
		log.Debugf("skipping delete offer: output replaced the input file")
		return
	}

	originalFormat, err := imagedata.FormatFromFilename(img.InputFilename)
	if err != nil {
		log.Warnf("could not determine original format for %s: %v", img.InputFilename, err)
		return
	}
	if !deleteWorthwhile(originalFormat, img.OutputFormat, img.OriginalFileSize, outputSize) {
		log.Debugf("keeping %s: same format and no size win", img.InputFilename)
		return
	}

	confirmed, err := promptDeleteSource(cmd.InOrStdin(), cmd.OutOrStdout(), comparison{
		originalPath:   img.InputFilename,
		originalFormat: originalFormat,
		originalSize:   img.OriginalFileSize,
		outputPath:     img.OutputFilename(),
		outputFormat:   img.OutputFormat,
		outputSize:     outputSize,
	})
	if err != nil {
		log.Warnf("error reading delete confirmation: %v", err)
		return
	}
	if !confirmed {
		log.Infof("keeping original file: %s", img.InputFilename)
		return
	}
	if err := os.Remove(img.InputFilename); err != nil {
		log.Errorf("failed to delete original file %s: %v", img.InputFilename, err)
		return
	}
	log.Infof("deleted original file: %s", img.InputFilename)
}
