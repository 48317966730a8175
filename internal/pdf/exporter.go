// =============================================================================
// Packing Slip Generator - PDF Exporter
// =============================================================================
//
// Converts rendered packing slip HTML to PDF with an external rendering
// engine. Two engines are supported:
//
//   | Engine       | Driver                            | Binary lookup        |
//   |--------------|-----------------------------------|----------------------|
//   | wkhtmltopdf  | SebastiaanKlippert/go-wkhtmltopdf | path, exe dir, PATH  |
//   | chrome       | go-rod (headless Chrome, CDP)     | path, exe dir, PATH  |
//
// FIXED OPTIONS (defaults, see config):
//   page-size      Letter
//   encoding       UTF-8
//   custom-header  Accept-Encoding: gzip
//   no-outline     true
//
// =============================================================================

package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"go.uber.org/zap"
)

// Engine names.
const (
	EngineWkhtmltopdf = "wkhtmltopdf"
	EngineChrome      = "chrome"
)

// ErrEngineNotFound is returned when the rendering engine binary cannot be
// located.
var ErrEngineNotFound = errors.New("rendering engine not found")

// EngineError reports a rendering engine that is missing or failed.
type EngineError struct {
	Engine string
	Path   string
	Err    error
}

func (e *EngineError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Engine, e.Err)
	}
	return fmt.Sprintf("%s (%s): %v", e.Engine, e.Path, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

// Options configures the exporter.
type Options struct {
	// Engine selects the renderer: "wkhtmltopdf" or "chrome".
	Engine string

	// Path is the engine binary. Empty means look next to the executable,
	// then on PATH.
	Path string

	// PageSize is a paper name such as "Letter", "Legal" or "A4".
	PageSize string

	// Encoding is the input HTML encoding passed to the engine.
	Encoding string

	// CustomHeaders are sent with any request the engine makes for remote
	// assets.
	CustomHeaders map[string]string

	// NoOutline disables the PDF outline (bookmarks).
	NoOutline bool
}

// DefaultOptions returns the stock packing slip settings.
func DefaultOptions() Options {
	return Options{
		Engine:        EngineWkhtmltopdf,
		PageSize:      "Letter",
		Encoding:      "UTF-8",
		CustomHeaders: map[string]string{"Accept-Encoding": "gzip"},
		NoOutline:     true,
	}
}

// renderer writes one PDF file from HTML.
type renderer interface {
	render(ctx context.Context, html, outPath string) error
}

// Exporter converts HTML documents to PDF files.
type Exporter struct {
	opts   Options
	bin    string
	engine renderer
	log    *zap.Logger
}

// NewExporter resolves the engine binary and prepares the exporter.
// A missing binary fails here, before any order is processed.
func NewExporter(opts Options, log *zap.Logger) (*Exporter, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Engine == "" {
		opts.Engine = EngineWkhtmltopdf
	}

	if opts.Engine != EngineWkhtmltopdf && opts.Engine != EngineChrome {
		return nil, fmt.Errorf("unknown PDF engine %q", opts.Engine)
	}

	bin, err := ResolveBinary(opts.Engine, opts.Path)
	if err != nil {
		return nil, &EngineError{Engine: opts.Engine, Path: opts.Path, Err: err}
	}

	e := &Exporter{opts: opts, bin: bin, log: log}
	if opts.Engine == EngineChrome {
		e.engine = &chromeEngine{bin: bin, opts: opts}
	} else {
		e.engine = &wkhtmlEngine{bin: bin, opts: opts}
	}

	log.Debug("PDF engine ready", zap.String("engine", opts.Engine), zap.String("path", bin))
	return e, nil
}

// BinaryPath returns the resolved engine binary.
func (e *Exporter) BinaryPath() string { return e.bin }

// Export renders html to a PDF at outPath, overwriting any existing file.
func (e *Exporter) Export(ctx context.Context, html, outPath string) error {
	start := time.Now()

	if err := e.engine.render(ctx, html, outPath); err != nil {
		return &EngineError{Engine: e.opts.Engine, Path: e.bin, Err: err}
	}

	e.log.Debug("PDF written",
		zap.String("file", outPath),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// =============================================================================
// BINARY RESOLUTION
// =============================================================================

// ResolveBinary finds the engine binary.
//
// LOOKUP ORDER:
//   1. configured, if set (must exist; no fallback)
//   2. next to the running executable
//   3. PATH
func ResolveBinary(engine, configured string) (string, error) {
	if configured != "" {
		info, err := os.Stat(configured)
		if err != nil || info.IsDir() {
			return "", fmt.Errorf("%w: %s", ErrEngineNotFound, configured)
		}
		return configured, nil
	}

	names, err := binaryNames(engine)
	if err != nil {
		return "", err
	}

	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
	}

	for _, name := range names {
		if found, err := exec.LookPath(name); err == nil {
			return found, nil
		}
	}

	if engine == EngineChrome {
		if found, ok := chromeLookPath(); ok {
			return found, nil
		}
	}

	return "", fmt.Errorf("%w: %s not next to executable or on PATH", ErrEngineNotFound, engine)
}

func binaryNames(engine string) ([]string, error) {
	var names []string
	switch engine {
	case EngineWkhtmltopdf:
		names = []string{"wkhtmltopdf"}
	case EngineChrome:
		names = []string{"chrome", "google-chrome", "chromium", "chromium-browser"}
	default:
		return nil, fmt.Errorf("unknown PDF engine %q", engine)
	}

	if runtime.GOOS == "windows" {
		for i, name := range names {
			names[i] = name + ".exe"
		}
	}
	return names, nil
}
