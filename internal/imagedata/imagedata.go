// Package imagedata holds the decoded image container and the geometry and
// format value types the optimizer passes around.
package imagedata

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	_ "github.com/strukturag/libheif/go/heif"
	_ "golang.org/x/image/webp"
)

// Image is a decoded raster plus the metadata needed to pick an output path
// and format for it.
type Image struct {
	InputFilename    string
	OriginalFileSize int64
	OriginalGeometry Geometry
	TargetGeometry   Geometry // empty means no resize requested
	OutputFormat     Format   // FormatUnknown until an encoding is chosen
	Img              image.Image
}

// Load reads and decodes the image at path. The filename must carry a
// supported extension; that gate runs before any decode work so a .bmp or
// .tiff input fails the same way an unknown format name does.
func Load(path string) (*Image, error) {
	if _, err := FormatFromFilename(path); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	bounds := img.Bounds()
	return &Image{
		InputFilename:    path,
		OriginalFileSize: info.Size(),
		OriginalGeometry: Geometry{Width: uint(bounds.Dx()), Height: uint(bounds.Dy())},
		Img:              img,
	}, nil
}

// FinalGeometry resolves the target geometry against the current raster
// size. A half-specified target is completed from the raster's aspect ratio.
func (im *Image) FinalGeometry() Geometry {
	bounds := im.Img.Bounds()
	w := uint(bounds.Dx())
	h := uint(bounds.Dy())

	t := im.TargetGeometry
	switch {
	case t.Width > 0 && t.Height > 0:
		return t
	case t.Width > 0:
		ratio := float32(t.Width) / float32(w)
		return Geometry{Width: t.Width, Height: uint(float32(h) * ratio)}
	case t.Height > 0:
		ratio := float32(t.Height) / float32(h)
		return Geometry{Width: uint(float32(w) * ratio), Height: t.Height}
	default:
		return Geometry{Width: w, Height: h}
	}
}

// Resize resamples the raster to FinalGeometry with a Lanczos filter and
// keeps the result. A target matching the current size is a no-op. Returns
// the geometry the raster has afterwards.
func (im *Image) Resize() Geometry {
	final := im.FinalGeometry()
	bounds := im.Img.Bounds()
	current := Geometry{Width: uint(bounds.Dx()), Height: uint(bounds.Dy())}
	if final != current {
		im.Img = imaging.Resize(im.Img, int(final.Width), int(final.Height), imaging.Lanczos)
	}
	return final
}

// WillOverwrite reports whether writing the output would land on the input
// file itself. It compares names, not disk state: with no output format
// chosen the output path is the input path, and an output format whose
// extension matches the input's keeps the path unchanged too.
func (im *Image) WillOverwrite() bool {
	if im.OutputFormat == FormatUnknown {
		return true
	}
	ext := strings.TrimPrefix(filepath.Ext(im.InputFilename), ".")
	return im.OutputFormat.matchesExtension(ext)
}

// OutputFilename is the input path with its extension swapped for the output
// format's canonical one, so ".jpeg" inputs become ".jpg" outputs. Without a
// chosen output format the input path comes back unchanged.
func (im *Image) OutputFilename() string {
	if im.OutputFormat == FormatUnknown {
		return im.InputFilename
	}
	base := strings.TrimSuffix(im.InputFilename, filepath.Ext(im.InputFilename))
	return base + "." + im.OutputFormat.Extension()
}
