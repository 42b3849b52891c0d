package imagedata

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedFormat reports a format name or filename extension outside
// the supported set.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format identifies one of the supported output encodings. The declaration
// order doubles as the trial order for automatic format selection, so JPG
// wins ties.
type Format int

const (
	FormatUnknown Format = iota
	JPG
	PNG
	WebP
	AVIF
	HEIC
	HEIF
)

// AllFormats returns every supported format in canonical order.
func AllFormats() []Format {
	return []Format{JPG, PNG, WebP, AVIF, HEIC, HEIF}
}

// ParseFormat maps a format name like "png" to a Format. "jpeg" is an alias
// for "jpg". A string containing a dot is treated as a filename and resolved
// through its extension instead.
func ParseFormat(s string) (Format, error) {
	if strings.Contains(s, ".") {
		return FormatFromFilename(s)
	}
	if f, ok := formatFromExt(strings.ToLower(s)); ok {
		return f, nil
	}
	return FormatUnknown, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatFromFilename derives the format from the extension after the last
// dot in name.
func FormatFromFilename(name string) (Format, error) {
	ext := strings.ToLower(name)
	if i := strings.LastIndexByte(ext, '.'); i >= 0 {
		ext = ext[i+1:]
	}
	if f, ok := formatFromExt(ext); ok {
		return f, nil
	}
	return FormatUnknown, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

func formatFromExt(ext string) (Format, bool) {
	switch ext {
	case "jpg", "jpeg":
		return JPG, true
	case "png":
		return PNG, true
	case "webp":
		return WebP, true
	case "avif":
		return AVIF, true
	case "heic":
		return HEIC, true
	case "heif":
		return HEIF, true
	}
	return FormatUnknown, false
}

func (f Format) String() string {
	switch f {
	case JPG:
		return "JPG"
	case PNG:
		return "PNG"
	case WebP:
		return "WEBP"
	case AVIF:
		return "AVIF"
	case HEIC:
		return "HEIC"
	case HEIF:
		return "HEIF"
	}
	return "UNKNOWN"
}

// Extension returns the canonical file extension without the dot. JPEG
// inputs normalize to "jpg" on output.
func (f Format) Extension() string {
	switch f {
	case JPG:
		return "jpg"
	case PNG:
		return "png"
	case WebP:
		return "webp"
	case AVIF:
		return "avif"
	case HEIC:
		return "heic"
	case HEIF:
		return "heif"
	}
	return ""
}

// Native reports whether the format is encoded by the in-process raster
// codecs rather than libheif.
func (f Format) Native() bool {
	switch f {
	case JPG, PNG, WebP:
		return true
	}
	return false
}

// matchesExtension reports whether ext (no dot, any case) names this format
// on disk. HEIC and HEIF are interchangeable extensions for the same
// container family. ".jpeg" is deliberately not a match for JPG: writing a
// .jpg next to a .jpeg leaves the original alone.
func (f Format) matchesExtension(ext string) bool {
	switch f {
	case JPG:
		return strings.EqualFold(ext, "jpg")
	case PNG:
		return strings.EqualFold(ext, "png")
	case WebP:
		return strings.EqualFold(ext, "webp")
	case AVIF:
		return strings.EqualFold(ext, "avif")
	case HEIC, HEIF:
		return strings.EqualFold(ext, "heic") || strings.EqualFold(ext, "heif")
	}
	return false
}
