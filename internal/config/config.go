package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every knob of a pipeline run. All fields have defaults, so an
// empty config file (or no file at all) produces the standard run: current
// directory in, ./processed_assets out.
type Config struct {
	InputDir         string        `yaml:"input_dir"`
	OutputDir        string        `yaml:"output_dir"`
	ResponsiveWidths []int         `yaml:"responsive_widths"`
	IconSizes        []int         `yaml:"icon_sizes"`
	Palette          PaletteConfig `yaml:"palette"`
	Quality          QualityConfig `yaml:"quality"`
}

type PaletteConfig struct {
	Count  int    `yaml:"count"`
	Method string `yaml:"method"`
}

type QualityConfig struct {
	WebP int `yaml:"webp"`
	JPEG int `yaml:"jpeg"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		InputDir:         ".",
		OutputDir:        "./processed_assets",
		ResponsiveWidths: []int{480, 800, 1200},
		IconSizes:        []int{64, 192, 512},
		Palette: PaletteConfig{
			Count:  6,
			Method: "dominant",
		},
		Quality: QualityConfig{
			WebP: 80,
			JPEG: 85,
		},
	}
}

// Load reads and parses the configuration file, filling omitted fields with
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.InputDir == "" {
		c.InputDir = d.InputDir
	}
	if c.OutputDir == "" {
		c.OutputDir = d.OutputDir
	}
	if len(c.ResponsiveWidths) == 0 {
		c.ResponsiveWidths = d.ResponsiveWidths
	}
	if len(c.IconSizes) == 0 {
		c.IconSizes = d.IconSizes
	}
	if c.Palette.Count == 0 {
		c.Palette.Count = d.Palette.Count
	}
	if c.Palette.Method == "" {
		c.Palette.Method = d.Palette.Method
	}
	if c.Quality.WebP == 0 {
		c.Quality.WebP = d.Quality.WebP
	}
	if c.Quality.JPEG == 0 {
		c.Quality.JPEG = d.Quality.JPEG
	}
}

// Validate checks that all configured values are usable.
func (c *Config) Validate() error {
	for _, w := range c.ResponsiveWidths {
		if w <= 0 {
			return fmt.Errorf("responsive width must be positive, got %d", w)
		}
	}
	for _, s := range c.IconSizes {
		if s <= 0 {
			return fmt.Errorf("icon size must be positive, got %d", s)
		}
	}
	if c.Palette.Count <= 0 {
		return fmt.Errorf("palette.count must be positive, got %d", c.Palette.Count)
	}
	if c.Palette.Method != "dominant" && c.Palette.Method != "kmeans" {
		return fmt.Errorf("palette.method must be %q or %q, got %q", "dominant", "kmeans", c.Palette.Method)
	}
	if c.Quality.WebP < 1 || c.Quality.WebP > 100 {
		return fmt.Errorf("quality.webp must be in 1-100, got %d", c.Quality.WebP)
	}
	if c.Quality.JPEG < 1 || c.Quality.JPEG > 100 {
		return fmt.Errorf("quality.jpeg must be in 1-100, got %d", c.Quality.JPEG)
	}
	return nil
}
