package main

import (
	"fmt"
	"log"
	"os"

	"log/slog"

	"github.com/lmittmann/tint"

	"brandassets/internal/config"
	"brandassets/internal/pipeline"
)

func main() {
	// Configure logger
	logger := slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: "15:04:05",
		}),
	)

	// Parse command line arguments; everything is optional and falls back to
	// the defaults (process the current directory into ./processed_assets).
	var configPath, inputDir, outputDir string

	for i := 1; i < len(os.Args); i++ {
		switch os.Args[i] {
		case "--config":
			if i+1 < len(os.Args) {
				configPath = os.Args[i+1]
				i++
			}
		case "--input":
			if i+1 < len(os.Args) {
				inputDir = os.Args[i+1]
				i++
			}
		case "--output":
			if i+1 < len(os.Args) {
				outputDir = os.Args[i+1]
				i++
			}
		case "--help", "-h":
			fmt.Println("Usage: brandassets [--config config.yaml] [--input raw_dir] [--output processed_dir]")
			return
		}
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if inputDir != "" {
		cfg.InputDir = inputDir
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize pipeline: %v", err)
	}

	if _, err := p.Run(); err != nil {
		log.Printf("Error processing assets: %v", err)
		os.Exit(1)
	}
}
