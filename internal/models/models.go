package models

// Variant is one derived output file. Full-size WebP copies carry Format,
// width-scaled JPEG copies carry Width; never both. Downstream consumers of
// the catalog rely on that asymmetry, so both fields are omitempty.
type Variant struct {
	Format string `json:"format,omitempty"`
	Width  int    `json:"width,omitempty"`
	Path   string `json:"path"`
}

// Icon is one square icon rendition of a source asset.
type Icon struct {
	Size int    `json:"size"`
	Path string `json:"path"`
}

// AssetMetadata is the per-source-image record accumulated into the catalog.
// Error is set when processing the file failed partway; any variants written
// before the failure are kept.
type AssetMetadata struct {
	Original string    `json:"original"`
	Variants []Variant `json:"variants"`
	Icons    []Icon    `json:"icons"`
	Palette  []string  `json:"palette"`
	Error    string    `json:"error,omitempty"`
}

// Catalog is the root manifest document.
type Catalog struct {
	Assets []AssetMetadata `json:"assets"`
}
