// Package pipeline drives one batch run: enumerate the raw assets, derive
// palette, variants and icons for each, and write the catalog.
package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"brandassets/internal/catalog"
	"brandassets/internal/config"
	"brandassets/internal/models"
	"brandassets/internal/palette"
	"brandassets/internal/variants"
)

type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
	gen    *variants.Generator
	method palette.Method
}

func New(cfg *config.Config, logger *slog.Logger) (*Pipeline, error) {
	method, err := palette.ParseMethod(cfg.Palette.Method)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		cfg:    cfg,
		logger: logger,
		gen:    variants.NewGenerator(cfg),
		method: method,
	}, nil
}

// Run processes every eligible file in the input directory and returns the
// path of the written catalog. Files are processed one at a time, fully, in
// enumeration order; a failure on one file is recorded on its catalog entry
// and does not stop the run. Only setup and catalog-write errors are fatal.
func (p *Pipeline) Run() (string, error) {
	if err := os.MkdirAll(p.cfg.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory '%s': %w", p.cfg.OutputDir, err)
	}

	entries, err := os.ReadDir(p.cfg.InputDir)
	if err != nil {
		return "", fmt.Errorf("failed to read input directory '%s': %w", p.cfg.InputDir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && eligible(entry.Name()) {
			files = append(files, entry.Name())
		}
	}

	fmt.Printf("Processing %d assets...\n", len(files))

	builder := catalog.NewBuilder()
	for _, name := range files {
		fmt.Printf("  -> Processing %s...\n", name)
		builder.Add(p.processAsset(name))
	}

	path, err := builder.WriteFile(p.cfg.OutputDir)
	if err != nil {
		return "", err
	}

	fmt.Printf("Success! Catalog generated at %s\n", path)
	return path, nil
}

// processAsset derives everything for one source file. Palette failures
// degrade to an empty palette; decode and encode failures end up on the
// record's Error field together with whatever variants were written first.
func (p *Pipeline) processAsset(name string) models.AssetMetadata {
	srcPath := filepath.Join(p.cfg.InputDir, name)
	baseName := strings.TrimSuffix(name, filepath.Ext(name))

	asset := models.AssetMetadata{
		Original: name,
		Variants: []models.Variant{},
		Icons:    []models.Icon{},
		Palette:  []string{},
	}

	pal, err := palette.Extract(srcPath, p.cfg.Palette.Count, p.method)
	if err != nil {
		p.logger.Warn("palette extraction failed", "file", name, "error", err)
	} else {
		asset.Palette = pal
	}

	img, err := imaging.Open(srcPath)
	if err != nil {
		asset.Error = fmt.Sprintf("decode: %v", err)
		p.logger.Error("failed to decode image", "file", name, "error", err)
		return asset
	}

	vars, err := p.gen.Variants(img, baseName)
	asset.Variants = vars
	if err != nil {
		asset.Error = err.Error()
		p.logger.Error("variant generation failed", "file", name, "error", err)
		return asset
	}

	icons, err := p.gen.Icons(img, baseName)
	asset.Icons = icons
	if err != nil {
		asset.Error = err.Error()
		p.logger.Error("icon generation failed", "file", name, "error", err)
	}

	return asset
}

// eligible reports whether a directory entry name is a candidate source
// image. Matching is case-insensitive on the extension.
func eligible(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".jpg") ||
		strings.HasSuffix(lower, ".jpeg") ||
		strings.HasSuffix(lower, ".png")
}
