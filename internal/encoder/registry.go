package encoder

import (
	"fmt"
	"image"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/yaleman/shrinky/internal/imagedata"
)

// Registry holds the usable encoders keyed by output format.
type Registry struct {
	encoders map[imagedata.Format]Encoder
	log      *zap.SugaredLogger
}

// NewRegistry creates a registry, probing all encoders for availability.
// A nil logger disables logging.
func NewRegistry(log *zap.SugaredLogger) *Registry {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	r := &Registry{
		encoders: make(map[imagedata.Format]Encoder),
		log:      log,
	}

	// Register all encoders. Only available ones will be used.
	all := []Encoder{
		&JPEGEncoder{},
		&PNGEncoder{},
		&WebPEncoder{},
		NewHeifEncoder(imagedata.AVIF),
		NewHeifEncoder(imagedata.HEIC),
		NewHeifEncoder(imagedata.HEIF),
	}

	for _, enc := range all {
		if enc.Available() {
			r.encoders[enc.Format()] = enc
		} else {
			log.Debugf("encoder for %s unavailable", enc.Format())
		}
	}

	return r
}

// Get returns the encoder for the given format, or nil if unavailable.
func (r *Registry) Get(format imagedata.Format) Encoder {
	return r.encoders[format]
}

// Available returns the usable formats in canonical order.
func (r *Registry) Available() []imagedata.Format {
	var result []imagedata.Format
	for _, f := range imagedata.AllFormats() {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// Encode converts img to the given format.
func (r *Registry) Encode(img image.Image, format imagedata.Format, quality int) ([]byte, error) {
	enc := r.Get(format)
	if enc == nil {
		return nil, fmt.Errorf("no encoder available for format %s", format)
	}
	return enc.Encode(img, quality)
}

// EncodeSmallest tries every available format concurrently and keeps the one
// that produced the fewest bytes. Ties go to the earliest format in
// canonical order, so the result is deterministic. Individual encoder
// failures are logged and skipped; only all of them failing is an error.
func (r *Registry) EncodeSmallest(img image.Image, quality int) (imagedata.Format, []byte, error) {
	formats := r.Available()
	if len(formats) == 0 {
		return imagedata.FormatUnknown, nil, fmt.Errorf("no encoders available")
	}

	type trial struct {
		data []byte
		err  error
	}
	results := make([]trial, len(formats))

	var wg sync.WaitGroup
	for i, f := range formats {
		wg.Add(1)
		go func(idx int, format imagedata.Format) {
			defer wg.Done()
			data, err := r.encoders[format].Encode(img, quality)
			results[idx] = trial{data: data, err: err}
		}(i, f)
	}
	wg.Wait()

	best := -1
	for i, f := range formats {
		if results[i].err != nil {
			r.log.Errorf("failed to encode image as %s: %v", f, results[i].err)
			continue
		}
		r.log.Debugf("format %s produced %d bytes", f, len(results[i].data))
		if best < 0 || len(results[i].data) < len(results[best].data) {
			best = i
		}
	}
	if best < 0 {
		return imagedata.FormatUnknown, nil, fmt.Errorf("failed to determine optimal image format")
	}
	return formats[best], results[best].data, nil
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	names := make([]string, len(avail))
	for i, f := range avail {
		names[i] = f.Extension()
	}
	return fmt.Sprintf("encoders: %s", strings.Join(names, ", "))
}
