package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jchantrell/wadex/internal/wad"
)

// LumpLoader defines the interface for loading lumps from an archive
type LumpLoader interface {
	NumLumps() int
	LumpName(i int) wad.Name
	ReadRaw(i int) ([]byte, error)
}

// Exporter handles exporting lumps from an archive to disk
type Exporter struct {
	loader    LumpLoader
	outputDir string
}

// NewExporter creates a new lump exporter
func NewExporter(loader LumpLoader, outputDir string) *Exporter {
	return &Exporter{
		loader:    loader,
		outputDir: outputDir,
	}
}

// ProgressCallback is called to report export progress
type ProgressCallback func(current int, total int, description string)

// Selection is a set of lump positions to export, optionally grouped under a subdirectory
type Selection struct {
	Dir     string
	Indices []int
}

// ExportLumps writes the selected lumps to the output directory. Each lump is
// written as NNNN_NAME.lmp so that duplicate names and directory order survive.
// Lumps with a known format additionally get a converted file next to them.
func (e *Exporter) ExportLumps(selections []Selection, progressCallback ProgressCallback) (int, error) {
	totalLumps := 0
	for _, sel := range selections {
		totalLumps += len(sel.Indices)
	}

	if totalLumps == 0 {
		return 0, nil
	}

	processedCount := 0
	for _, sel := range selections {
		dir, err := e.selectionDir(sel)
		if err != nil {
			return processedCount, err
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return processedCount, fmt.Errorf("creating output directory: %w", err)
		}

		for _, i := range sel.Indices {
			name := e.loader.LumpName(i).String()

			data, err := e.loader.ReadRaw(i)
			if err != nil {
				return processedCount, fmt.Errorf("reading lump %s (%d): %w", name, i, err)
			}

			base := fmt.Sprintf("%04d_%s", i, sanitizeName(name))
			outputPath := filepath.Join(dir, base+".lmp")
			if err := os.WriteFile(outputPath, data, 0644); err != nil {
				return processedCount, fmt.Errorf("writing file %s: %w", outputPath, err)
			}
			slog.Debug("Exported lump", "lump", name, "index", i, "output", outputPath)

			if err := convertLump(name, data, filepath.Join(dir, base)); err != nil {
				slog.Warn("Failed to convert lump", "lump", name, "index", i, "error", err)
			}

			processedCount++
			if progressCallback != nil {
				progressCallback(processedCount, totalLumps, name)
			}
		}
	}

	return processedCount, nil
}

// selectionDir resolves the directory for sel. An empty Dir is the output
// directory itself; anything else must stay below it.
func (e *Exporter) selectionDir(sel Selection) (string, error) {
	if sel.Dir == "" {
		return e.outputDir, nil
	}
	dir := filepath.Join(e.outputDir, sanitizeName(sel.Dir))
	rel, err := filepath.Rel(e.outputDir, dir)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("selection directory %q escapes %s", sel.Dir, e.outputDir)
	}
	return dir, nil
}

// sanitizeName makes a lump name safe for use as a filename
// Doom names may contain backslashes and brackets
func sanitizeName(name string) string {
	switch name {
	case "", ".", "..":
		return "_"
	}
	return strings.NewReplacer(`\`, "^", "/", "^", ":", "_").Replace(name)
}
