package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/yaleman/shrinky/internal/imagedata"
)

// comparison carries everything the delete prompt shows about the before
// and after files.
type comparison struct {
	originalPath   string
	originalFormat imagedata.Format
	originalSize   int64
	outputPath     string
	outputFormat   imagedata.Format
	outputSize     int64
}

// promptDeleteSource prints the before/after report and asks whether to
// delete the original. Only "y" or "yes" (any case) count as consent.
func promptDeleteSource(in io.Reader, out io.Writer, c comparison) (bool, error) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Original: %s (%s, %s bytes)\n",
		c.originalPath, c.originalFormat, humanize.Comma(c.originalSize))
	fmt.Fprintf(out, "New:      %s (%s, %s bytes)\n",
		c.outputPath, c.outputFormat, humanize.Comma(c.outputSize))

	if c.outputSize < c.originalSize {
		savings := c.originalSize - c.outputSize
		percent := float64(savings) / float64(c.originalSize) * 100
		fmt.Fprintf(out, "Savings:  %s bytes (%.0f%% smaller)\n", humanize.Comma(savings), percent)
	} else if c.outputSize > c.originalSize {
		increase := c.outputSize - c.originalSize
		percent := float64(increase) / float64(c.originalSize) * 100
		fmt.Fprintf(out, "Increase: %s bytes (%.0f%% larger)\n", humanize.Comma(increase), percent)
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, "Delete original file? [y/N]: ")

	// EOF is an answer too: no input means no.
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}
