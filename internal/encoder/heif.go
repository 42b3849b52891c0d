package encoder

import (
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/strukturag/libheif/go/heif"

	"github.com/yaleman/shrinky/internal/imagedata"
)

// HeifEncoder encodes images into a HEIF container through libheif. AVIF
// pairs the container with AV1, HEIC and HEIF with HEVC. Which codecs are
// present depends on how libheif was built, so availability is probed at
// runtime.
type HeifEncoder struct {
	format imagedata.Format

	once      sync.Once
	available bool
}

// NewHeifEncoder returns an encoder for one of AVIF, HEIC or HEIF.
func NewHeifEncoder(format imagedata.Format) *HeifEncoder {
	return &HeifEncoder{format: format}
}

func (e *HeifEncoder) Format() imagedata.Format { return e.format }
func (e *HeifEncoder) Extension() string        { return e.format.Extension() }

func (e *HeifEncoder) compression() heif.Compression {
	if e.format == imagedata.AVIF {
		return heif.CompressionAV1
	}
	return heif.CompressionHEVC
}

func (e *HeifEncoder) Available() bool {
	e.once.Do(func() {
		ctx, err := heif.NewContext()
		if err != nil {
			return
		}
		if _, err := ctx.NewEncoder(e.compression()); err != nil {
			return
		}
		e.available = true
	})
	return e.available
}

func (e *HeifEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	if !e.Available() {
		return nil, fmt.Errorf("libheif has no encoder for %s compiled in", e.format)
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("cannot encode empty %dx%d image as %s", w, h, e.format)
	}

	ctx, err := heif.EncodeFromImage(flattenForEncode(img), e.compression(),
		quality, heif.LosslessModeDisabled, heif.LoggingLevelNone)
	if err != nil {
		return nil, fmt.Errorf("heif encode: %w", err)
	}
	return contextBytes(ctx, e.format.Extension())
}

// contextBytes extracts the encoded container. libheif only writes whole
// files, so the bytes round-trip through a temp file.
func contextBytes(ctx *heif.Context, ext string) ([]byte, error) {
	tmp, err := os.CreateTemp("", "shrinky_*."+ext)
	if err != nil {
		return nil, fmt.Errorf("create temp: %w", err)
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	if err := ctx.WriteToFile(path); err != nil {
		return nil, fmt.Errorf("heif write: %w", err)
	}
	return os.ReadFile(path)
}

// flattenForEncode returns a raster EncodeFromImage can marshal. The binding
// handles interleaved RGBA, RGBA64, Gray and YCbCr natively; anything else
// (NRGBA from a PNG decode or a resize, Paletted, ...) is copied into opaque
// interleaved RGBA. Color bytes are copied raw, so alpha is dropped, not
// premultiplied.
func flattenForEncode(src image.Image) image.Image {
	switch src.(type) {
	case *image.RGBA, *image.RGBA64, *image.Gray, *image.YCbCr:
		return src
	}
	return toOpaqueRGBA(src)
}

// toOpaqueRGBA copies src into an interleaved RGBA raster anchored at the
// origin with every alpha byte forced to 0xff. NRGBA rasters are walked
// through their Pix slices directly; everything else goes through the
// generic At path.
func toOpaqueRGBA(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	if n, ok := src.(*image.NRGBA); ok {
		base := n.PixOffset(bounds.Min.X, bounds.Min.Y)
		copyRawRGBA(dst.Pix, dst.Stride, n.Pix[base:], n.Stride, w, h)
		return dst
	}

	for y := 0; y < h; y++ {
		row := dst.Pix[y*dst.Stride:]
		for x := 0; x < w; x++ {
			r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			p := x * 4
			row[p] = uint8(r >> 8)
			row[p+1] = uint8(g >> 8)
			row[p+2] = uint8(b >> 8)
			row[p+3] = 0xff
		}
	}
	return dst
}

func copyRawRGBA(dst []byte, dstStride int, src []byte, srcStride, w, h int) {
	for y := 0; y < h; y++ {
		srow := src[y*srcStride:]
		drow := dst[y*dstStride:]
		for x := 0; x < w; x++ {
			p := x * 4
			drow[p] = srow[p]
			drow[p+1] = srow[p+1]
			drow[p+2] = srow[p+2]
			drow[p+3] = 0xff
		}
	}
}
