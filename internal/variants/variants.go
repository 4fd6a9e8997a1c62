// Package variants writes the derived files for one source image: a full-size
// WebP copy, width-scaled JPEG copies, and square PNG icons.
package variants

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"slices"

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"

	"brandassets/internal/config"
	"brandassets/internal/models"
)

// Generator writes web-optimized renditions into the output directory, which
// the driver creates before any file is processed.
type Generator struct {
	outputDir   string
	widths      []int
	iconSizes   []int
	webpQuality int
	jpegQuality int
}

func NewGenerator(cfg *config.Config) *Generator {
	widths := slices.Clone(cfg.ResponsiveWidths)
	slices.Sort(widths)
	sizes := slices.Clone(cfg.IconSizes)
	slices.Sort(sizes)

	return &Generator{
		outputDir:   cfg.OutputDir,
		widths:      widths,
		iconSizes:   sizes,
		webpQuality: cfg.Quality.WebP,
		jpegQuality: cfg.Quality.JPEG,
	}
}

// Variants produces the full-resolution WebP copy followed by one scaled JPEG
// per configured width, ascending. Every resize starts from the original
// decoded image, never from a previous variant, so quality loss does not
// compound. Target widths at or above the original are still generated. On
// error the variants already written are returned alongside it.
func (g *Generator) Variants(img image.Image, baseName string) ([]models.Variant, error) {
	generated := []models.Variant{}

	webpPath := filepath.Join(g.outputDir, baseName+".webp")
	if err := g.writeWebP(img, webpPath); err != nil {
		return generated, fmt.Errorf("webp %s: %w", webpPath, err)
	}
	generated = append(generated, models.Variant{Format: "webp", Path: webpPath})

	origW := img.Bounds().Dx()
	origH := img.Bounds().Dy()
	for _, w := range g.widths {
		h := int(math.Round(float64(origH) * float64(w) / float64(origW)))
		resized := imaging.Resize(img, w, h, imaging.Lanczos)

		path := filepath.Join(g.outputDir, fmt.Sprintf("%s_%dw.jpg", baseName, w))
		if err := imaging.Save(resized, path, imaging.JPEGQuality(g.jpegQuality)); err != nil {
			return generated, fmt.Errorf("jpeg %s: %w", path, err)
		}
		generated = append(generated, models.Variant{Width: w, Path: path})
	}

	return generated, nil
}

// Icons produces one square, center-cropped PNG per configured size,
// ascending.
func (g *Generator) Icons(img image.Image, baseName string) ([]models.Icon, error) {
	generated := []models.Icon{}

	for _, size := range g.iconSizes {
		icon := imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)

		path := filepath.Join(g.outputDir, fmt.Sprintf("%s_icon_%d.png", baseName, size))
		if err := imaging.Save(icon, path); err != nil {
			return generated, fmt.Errorf("icon %s: %w", path, err)
		}
		generated = append(generated, models.Icon{Size: size, Path: path})
	}

	return generated, nil
}

func (g *Generator) writeWebP(img image.Image, path string) error {
	opts, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(g.webpQuality))
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return webp.Encode(f, img, opts)
}
