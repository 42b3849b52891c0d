package encoder

import (
	"image"

	"github.com/yaleman/shrinky/internal/imagedata"
)

// DefaultQuality is the encoding quality used when a caller passes a value
// outside 1-100.
const DefaultQuality = 85

// Encoder encodes an image to a specific output format.
type Encoder interface {
	// Format returns the output format this encoder produces.
	Format() imagedata.Format

	// Encode converts the image to bytes at the given quality (1-100).
	Encode(img image.Image, quality int) ([]byte, error)

	// Available returns true if the encoder is ready to use.
	// The HEIF family depends on which codec plugins libheif was built with.
	Available() bool

	// Extension returns the file extension without dot.
	Extension() string
}
