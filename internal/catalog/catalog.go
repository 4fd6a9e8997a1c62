// Package catalog accumulates per-asset records and writes the manifest that
// describes a full pipeline run.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"brandassets/internal/models"
)

// Filename is the manifest name inside the output directory.
const Filename = "catalog.json"

// Builder collects asset records in insertion order. The whole catalog is
// held in memory and written once at the end of the run; branding asset sets
// are small, so there is no streaming write.
type Builder struct {
	assets []models.AssetMetadata
}

func NewBuilder() *Builder {
	return &Builder{assets: []models.AssetMetadata{}}
}

// Add appends one asset record.
func (b *Builder) Add(asset models.AssetMetadata) {
	b.assets = append(b.assets, asset)
}

// Len reports the number of records added so far.
func (b *Builder) Len() int {
	return len(b.assets)
}

// Catalog returns the accumulated manifest document. An empty run yields
// {"assets": []}, never null.
func (b *Builder) Catalog() models.Catalog {
	return models.Catalog{Assets: b.assets}
}

// WriteFile serializes the catalog to catalog.json inside outputDir and
// returns the path written.
func (b *Builder) WriteFile(outputDir string) (string, error) {
	path := filepath.Join(outputDir, Filename)

	data, err := json.MarshalIndent(b.Catalog(), "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write catalog: %w", err)
	}

	return path, nil
}
