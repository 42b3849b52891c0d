package imagedata

import (
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func writeJPEG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 85}); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.png")
	writePNG(t, path, gradient(450, 300))

	im, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if im.InputFilename != path {
		t.Errorf("InputFilename = %q, want %q", im.InputFilename, path)
	}
	if im.OriginalGeometry.Width != 450 || im.OriginalGeometry.Height != 300 {
		t.Errorf("OriginalGeometry = %v, want 450x300", im.OriginalGeometry)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat fixture: %v", err)
	}
	if im.OriginalFileSize != info.Size() {
		t.Errorf("OriginalFileSize = %d, want %d", im.OriginalFileSize, info.Size())
	}
	if im.OutputFormat != FormatUnknown {
		t.Errorf("fresh image has OutputFormat %v, want FormatUnknown", im.OutputFormat)
	}
	if !im.TargetGeometry.IsEmpty() {
		t.Errorf("fresh image has TargetGeometry %v, want empty", im.TargetGeometry)
	}
}

func TestLoadJPEG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.jpeg")
	writeJPEG(t, path, gradient(120, 80))

	im, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if im.OriginalGeometry.Width != 120 || im.OriginalGeometry.Height != 80 {
		t.Errorf("OriginalGeometry = %v, want 120x80", im.OriginalGeometry)
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.bmp")
	writePNG(t, path, gradient(10, 10))

	if _, err := Load(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Load(.bmp): want ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Fatal("Load on missing file: expected error")
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(path, []byte("not an image at all"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load on garbage bytes: expected error")
	}
}

func TestFinalGeometry(t *testing.T) {
	cases := []struct {
		name   string
		raster Geometry
		target Geometry
		want   Geometry
	}{
		{"no target", Geometry{450, 800}, Geometry{}, Geometry{450, 800}},
		{"both set", Geometry{450, 800}, Geometry{400, 400}, Geometry{400, 400}},
		{"width only", Geometry{450, 800}, Geometry{Width: 1234}, Geometry{1234, 2193}},
		{"height only", Geometry{450, 800}, Geometry{Height: 400}, Geometry{225, 400}},
		{"width only downscale", Geometry{320, 240}, Geometry{Width: 100}, Geometry{100, 75}},
	}
	for _, tc := range cases {
		im := &Image{
			Img:            image.NewNRGBA(image.Rect(0, 0, int(tc.raster.Width), int(tc.raster.Height))),
			TargetGeometry: tc.target,
		}
		if got := im.FinalGeometry(); got != tc.want {
			t.Errorf("%s: FinalGeometry() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestResize(t *testing.T) {
	im := &Image{
		Img:            gradient(450, 800),
		TargetGeometry: Geometry{Width: 100},
	}
	got := im.Resize()
	want := Geometry{Width: 100, Height: 177}
	if got != want {
		t.Fatalf("Resize() = %v, want %v", got, want)
	}
	bounds := im.Img.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 177 {
		t.Errorf("raster is %dx%d after resize, want 100x177", bounds.Dx(), bounds.Dy())
	}
}

func TestResizeNoopWhenGeometryUnchanged(t *testing.T) {
	original := gradient(200, 150)
	im := &Image{
		Img:            original,
		TargetGeometry: Geometry{Width: 200, Height: 150},
	}
	got := im.Resize()
	if got != (Geometry{Width: 200, Height: 150}) {
		t.Fatalf("Resize() = %v, want 200x150", got)
	}
	if im.Img != image.Image(original) {
		t.Error("raster was replaced even though the size did not change")
	}
}

func TestWillOverwrite(t *testing.T) {
	cases := []struct {
		input  string
		format Format
		want   bool
	}{
		{"photos/sample.jpg", JPG, true},
		{"photos/sample.JPG", JPG, true},
		{"photos/sample.jpeg", JPG, false},
		{"photos/sample.jpg", PNG, false},
		{"photos/sample.png", PNG, true},
		{"photos/sample.heic", HEIF, true},
		{"photos/sample.heif", HEIC, true},
		{"photos/sample.webp", AVIF, false},
		{"photos/sample.jpg", FormatUnknown, true},
		{"noextension", JPG, false},
	}
	for _, tc := range cases {
		im := &Image{InputFilename: tc.input, OutputFormat: tc.format}
		if got := im.WillOverwrite(); got != tc.want {
			t.Errorf("WillOverwrite(%q -> %v) = %t, want %t", tc.input, tc.format, got, tc.want)
		}
	}
}

func TestOutputFilename(t *testing.T) {
	cases := []struct {
		input  string
		format Format
		want   string
	}{
		{"photos/sample.jpeg", JPG, "photos/sample.jpg"},
		{"photos/sample.png", WebP, "photos/sample.webp"},
		{"photos/sample.jpg", HEIC, "photos/sample.heic"},
		{"sample", JPG, "sample.jpg"},
		{"photos/sample.png", FormatUnknown, "photos/sample.png"},
	}
	for _, tc := range cases {
		im := &Image{InputFilename: tc.input, OutputFormat: tc.format}
		if got := im.OutputFilename(); got != tc.want {
			t.Errorf("OutputFilename(%q -> %v) = %q, want %q", tc.input, tc.format, got, tc.want)
		}
	}
}
