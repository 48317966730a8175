// =============================================================================
// Packing Slip Generator - File Manager
// =============================================================================
//
// This module owns the output directory: it creates it, names the files for
// each order, and writes the rendered HTML.
//
// FILE NAMING:
//   <output_dir>/<prefix>_<order_number>.html
//   <output_dir>/<prefix>_<order_number>.pdf
//
//   Path separators and other characters that cannot appear in a file name
//   are replaced with "_", so order "12/34" becomes mj_packing_slip_12_34.pdf.
//
// Writes are not atomic. A crash mid-write can leave a partial file for the
// order in progress; files from earlier orders are unaffected.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileManager handles output paths for a run.
type FileManager struct {
	// OutputDir is the directory the slips are written to.
	OutputDir string

	// Prefix starts every output file name.
	Prefix string
}

// OrderFiles are the two output paths for one order.
type OrderFiles struct {
	HTML string
	PDF  string
}

// NewFileManager creates a FileManager.
func NewFileManager(outputDir, prefix string) *FileManager {
	return &FileManager{
		OutputDir: outputDir,
		Prefix:    prefix,
	}
}

// EnsureOutputDir creates the output directory if needed.
func (fm *FileManager) EnsureOutputDir() error {
	if err := os.MkdirAll(fm.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fm.OutputDir, err)
	}
	return nil
}

// FilesFor returns the output paths for an order number.
func (fm *FileManager) FilesFor(orderNumber string) OrderFiles {
	base := fm.Prefix + "_" + SanitizeFileName(orderNumber)
	return OrderFiles{
		HTML: filepath.Join(fm.OutputDir, base+".html"),
		PDF:  filepath.Join(fm.OutputDir, base+".pdf"),
	}
}

// WriteFile writes content to path, replacing any existing file.
func (fm *FileManager) WriteFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// SanitizeFileName replaces characters that are not allowed in file names on
// Windows or Unix.
func SanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return '_'
		}
		return r
	}, name)
}
