package pipeline

import (
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"brandassets/internal/config"
	"brandassets/internal/models"
)

func TestEligible(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{name: "logo.jpg", want: true},
		{name: "LOGO.JPG", want: true},
		{name: "photo.jpeg", want: true},
		{name: "icon.PNG", want: true},
		{name: "banner.Png", want: true},
		{name: "vector.svg", want: false},
		{name: "anim.gif", want: false},
		{name: "notes.txt", want: false},
		{name: "jpg", want: false},
	}

	for _, tt := range tests {
		if got := eligible(tt.name); got != tt.want {
			t.Errorf("eligible(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func newTestPipeline(t *testing.T, inputDir, outputDir string) *Pipeline {
	t.Helper()
	cfg := config.Default()
	cfg.InputDir = inputDir
	cfg.OutputDir = outputDir

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p, err := New(cfg, logger)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return p
}

func readCatalog(t *testing.T, path string) models.Catalog {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read catalog: %v", err)
	}
	var c models.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		t.Fatalf("catalog is not valid JSON: %v", err)
	}
	return c
}

// gradientImage gives the palette extractor more than one tone to work with.
func gradientImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 120,
				A: 255,
			})
		}
	}
	return img
}

func writeImage(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	switch filepath.Ext(path) {
	case ".jpg", ".JPG", ".jpeg":
		err = jpeg.Encode(f, img, nil)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		t.Fatalf("failed to encode fixture %s: %v", path, err)
	}
}

func TestRunEmptyInput(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "processed")

	path, err := newTestPipeline(t, inputDir, outputDir).Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	c := readCatalog(t, path)
	if c.Assets == nil || len(c.Assets) != 0 {
		t.Errorf("assets = %v, want empty array", c.Assets)
	}
	if _, err := os.Stat(outputDir); err != nil {
		t.Errorf("output directory not created: %v", err)
	}
}

func TestRun(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "processed")

	writeImage(t, filepath.Join(inputDir, "logo.png"), gradientImage(1600, 800))
	writeImage(t, filepath.Join(inputDir, "photo.JPG"), gradientImage(640, 480))
	if err := os.WriteFile(filepath.Join(inputDir, "broken.png"), []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(inputDir, "notes.txt"), []byte("ignored"), 0644); err != nil {
		t.Fatal(err)
	}
	// A directory with an image extension must be skipped too.
	if err := os.Mkdir(filepath.Join(inputDir, "archive.png"), 0755); err != nil {
		t.Fatal(err)
	}

	path, err := newTestPipeline(t, inputDir, outputDir).Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	c := readCatalog(t, path)
	if len(c.Assets) != 3 {
		t.Fatalf("got %d assets, want 3", len(c.Assets))
	}

	byName := map[string]models.AssetMetadata{}
	for _, a := range c.Assets {
		byName[a.Original] = a
	}

	// The corrupt file degrades but does not abort the run.
	broken, ok := byName["broken.png"]
	if !ok {
		t.Fatal("broken.png missing from catalog")
	}
	if broken.Error == "" {
		t.Error("broken.png should carry an error")
	}
	if len(broken.Palette) != 0 || len(broken.Variants) != 0 {
		t.Errorf("broken.png should have empty palette and variants, got %+v", broken)
	}

	logo, ok := byName["logo.png"]
	if !ok {
		t.Fatal("logo.png missing from catalog")
	}
	if logo.Error != "" {
		t.Errorf("logo.png unexpectedly failed: %s", logo.Error)
	}
	if len(logo.Variants) != 4 {
		t.Fatalf("logo.png has %d variants, want 4", len(logo.Variants))
	}
	if logo.Variants[0].Format != "webp" {
		t.Errorf("first variant = %+v, want webp", logo.Variants[0])
	}
	for i, want := range []int{480, 800, 1200} {
		if logo.Variants[i+1].Width != want {
			t.Errorf("variant %d width = %d, want %d", i+1, logo.Variants[i+1].Width, want)
		}
	}
	if len(logo.Icons) != 3 {
		t.Errorf("logo.png has %d icons, want 3", len(logo.Icons))
	}
	if len(logo.Palette) == 0 || len(logo.Palette) > 6 {
		t.Errorf("logo.png palette has %d colors, want 1-6", len(logo.Palette))
	}

	// Every recorded path must exist on disk.
	for _, v := range logo.Variants {
		if _, err := os.Stat(v.Path); err != nil {
			t.Errorf("variant path %s missing: %v", v.Path, err)
		}
	}
	for _, ic := range logo.Icons {
		if _, err := os.Stat(ic.Path); err != nil {
			t.Errorf("icon path %s missing: %v", ic.Path, err)
		}
	}

	if photo := byName["photo.JPG"]; photo.Error != "" || len(photo.Variants) != 4 {
		t.Errorf("photo.JPG = %+v, want 4 variants and no error", photo)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "processed")
	writeImage(t, filepath.Join(inputDir, "logo.png"), gradientImage(320, 160))

	first, err := newTestPipeline(t, inputDir, outputDir).Run()
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := newTestPipeline(t, inputDir, outputDir).Run()
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	a, b := readCatalog(t, first), readCatalog(t, second)
	if len(a.Assets) != len(b.Assets) {
		t.Fatalf("asset count changed between runs: %d vs %d", len(a.Assets), len(b.Assets))
	}
	for i := range a.Assets {
		if len(a.Assets[i].Variants) != len(b.Assets[i].Variants) {
			t.Errorf("variant count changed for %s", a.Assets[i].Original)
		}
	}
}
