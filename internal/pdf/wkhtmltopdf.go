package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// wkhtmlEngine drives the wkhtmltopdf binary.
type wkhtmlEngine struct {
	bin  string
	opts Options
}

func (w *wkhtmlEngine) render(_ context.Context, html, outPath string) error {
	// The library keeps the binary path globally; the pipeline is sequential.
	wkhtmltopdf.SetPath(w.bin)

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return fmt.Errorf("create generator: %w", err)
	}

	if w.opts.PageSize != "" {
		pdfg.PageSize.Set(w.opts.PageSize)
	}
	pdfg.NoOutline.Set(w.opts.NoOutline)

	page := wkhtmltopdf.NewPageReader(strings.NewReader(html))
	if w.opts.Encoding != "" {
		page.Encoding.Set(w.opts.Encoding)
	}
	for name, value := range w.opts.CustomHeaders {
		page.CustomHeader.Set(name, value)
	}
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	if err := pdfg.WriteFile(outPath); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}
