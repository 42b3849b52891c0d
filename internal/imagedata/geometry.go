package imagedata

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidGeometry reports a geometry string that does not follow the
// WxH / Wx / xH shapes.
var ErrInvalidGeometry = errors.New("invalid geometry")

// Geometry is a target size for a resize. A zero dimension is unset: "800x"
// fixes only the width, "x600" only the height. The zero value is the empty
// geometry.
type Geometry struct {
	Width  uint
	Height uint
}

// ParseGeometry parses strings like "800x600", "800x" or "x600",
// case-insensitively. Anything without an "x" separator, with more than one,
// or with a component that is not an unsigned number is rejected.
func ParseGeometry(s string) (Geometry, error) {
	lower := strings.ToLower(s)

	switch {
	case strings.HasPrefix(lower, "x"):
		h, err := parseDimension(lower[1:])
		if err != nil {
			return Geometry{}, fmt.Errorf("%w: bad height in %q", ErrInvalidGeometry, s)
		}
		return Geometry{Height: h}, nil
	case strings.HasSuffix(lower, "x"):
		w, err := parseDimension(strings.TrimSuffix(lower, "x"))
		if err != nil {
			return Geometry{}, fmt.Errorf("%w: bad width in %q", ErrInvalidGeometry, s)
		}
		return Geometry{Width: w}, nil
	case strings.Contains(lower, "x"):
		parts := strings.Split(lower, "x")
		if len(parts) != 2 {
			return Geometry{}, fmt.Errorf("%w: too many x separators in %q", ErrInvalidGeometry, s)
		}
		w, err := parseDimension(parts[0])
		if err != nil {
			return Geometry{}, fmt.Errorf("%w: bad width in %q", ErrInvalidGeometry, s)
		}
		h, err := parseDimension(parts[1])
		if err != nil {
			return Geometry{}, fmt.Errorf("%w: bad height in %q", ErrInvalidGeometry, s)
		}
		return Geometry{Width: w, Height: h}, nil
	default:
		return Geometry{}, fmt.Errorf("%w: %q", ErrInvalidGeometry, s)
	}
}

func parseDimension(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

// IsEmpty reports whether neither dimension is set.
func (g Geometry) IsEmpty() bool {
	return g.Width == 0 && g.Height == 0
}

func (g Geometry) String() string {
	switch {
	case g.Width > 0 && g.Height > 0:
		return fmt.Sprintf("%dx%d", g.Width, g.Height)
	case g.Width > 0:
		return fmt.Sprintf("%dx", g.Width)
	case g.Height > 0:
		return fmt.Sprintf("x%d", g.Height)
	default:
		return "empty"
	}
}
