// =============================================================================
// Packing Slip Generator - Driver
// =============================================================================
//
// This module runs the packing slip pipeline over a loaded order table.
//
// PIPELINE:
//   1. Normalize the date columns of the whole table
//   2. Group rows by order number (first occurrence order); rows with a
//      blank order number are skipped
//   3. For each order, sequentially:
//      a. Normalize the group's date columns
//      b. Build the order model (totals, line items, padding)
//      c. Render the HTML template
//      d. Write <prefix>_<order>.html
//      e. Convert to <prefix>_<order>.pdf
//      f. Print the status line
//   4. Print the completion line
//
// FAILURE:
//   The first error stops the run. Orders already written keep their files;
//   nothing is retried. A model is fully built before any file for that order
//   is written, so a bad Order_Unit never leaves output behind.
//
// =============================================================================

package slips

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ginjaninja78/packing-slips/internal/dates"
	"github.com/ginjaninja78/packing-slips/internal/order"
	"github.com/ginjaninja78/packing-slips/internal/types"
	"github.com/ginjaninja78/packing-slips/pkg/utils"
)

// =============================================================================
// COLLABORATORS
// =============================================================================

// Renderer turns an order model into HTML.
type Renderer interface {
	Render(model order.Model) (string, error)
}

// Exporter converts HTML to a PDF file.
type Exporter interface {
	Export(ctx context.Context, html, outPath string) error
}

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result describes a completed run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	// Orders lists the written orders in processing order.
	Orders []OrderResult

	// Stats contains processing statistics.
	Stats Stats
}

// OrderResult is the output of one order.
type OrderResult struct {
	OrderNumber string
	Files       utils.OrderFiles
	LineItems   int
}

// Stats contains statistics about the run.
type Stats struct {
	RowsProcessed  int
	OrdersWritten  int
	ProcessingTime time.Duration
}

// =============================================================================
// GENERATOR
// =============================================================================

// Options wires a Generator.
type Options struct {
	Aggregator  *order.Aggregator
	Renderer    Renderer
	Exporter    Exporter
	Files       *utils.FileManager
	DateColumns []string

	// CompanyName appears in the console status lines.
	CompanyName string

	// Out receives the operator status lines. Defaults to io.Discard.
	Out io.Writer

	Logger *zap.Logger
}

// Generator runs the packing slip pipeline.
type Generator struct {
	aggregator  *order.Aggregator
	renderer    Renderer
	exporter    Exporter
	files       *utils.FileManager
	dateColumns []string
	company     string
	out         io.Writer
	log         *zap.Logger
}

// New creates a Generator. Renderer, Exporter and Files are required.
func New(opts Options) (*Generator, error) {
	if opts.Renderer == nil || opts.Exporter == nil || opts.Files == nil {
		return nil, fmt.Errorf("slips: renderer, exporter and file manager are required")
	}

	g := &Generator{
		aggregator:  opts.Aggregator,
		renderer:    opts.Renderer,
		exporter:    opts.Exporter,
		files:       opts.Files,
		dateColumns: opts.DateColumns,
		company:     opts.CompanyName,
		out:         opts.Out,
		log:         opts.Logger,
	}
	if g.aggregator == nil {
		g.aggregator = order.NewAggregator()
	}
	if g.dateColumns == nil {
		g.dateColumns = dates.DefaultColumns
	}
	if g.out == nil {
		g.out = io.Discard
	}
	if g.log == nil {
		g.log = zap.NewNop()
	}
	return g, nil
}

// Run generates one HTML and one PDF packing slip per order in table.
func (g *Generator) Run(ctx context.Context, table *types.Table) (*Result, error) {
	start := time.Now()
	result := &Result{RunID: uuid.New().String()}
	log := g.log.With(zap.String("run_id", result.RunID))

	result.Stats.RowsProcessed = len(table.Rows)
	log.Info("Generating packing slips",
		zap.String("source", table.SourceFile),
		zap.Int("rows", len(table.Rows)),
	)

	if err := g.files.EnsureOutputDir(); err != nil {
		return result, err
	}

	if err := dates.Normalize(table.Rows, g.dateColumns); err != nil {
		return result, fmt.Errorf("failed to normalize dates: %w", err)
	}

	groups, err := order.GroupRows(table)
	if err != nil {
		return result, fmt.Errorf("failed to group orders: %w", err)
	}
	log.Debug("Grouped rows into orders", zap.Int("orders", len(groups)))
	if skipped := len(table.Rows) - order.GroupedRows(groups); skipped > 0 {
		log.Warn("Skipping rows without an order number", zap.Int("rows", skipped))
	}

	for _, group := range groups {
		written, err := g.processOrder(ctx, group)
		if err != nil {
			return result, fmt.Errorf("order %s: %w", group.Key, err)
		}

		result.Orders = append(result.Orders, written)
		result.Stats.OrdersWritten++

		fmt.Fprintf(g.out, "Generated %s packing slip for order number %s saved as %s\n",
			g.company, group.Key, written.Files.PDF)
		log.Debug("Order written",
			zap.String("order", group.Key),
			zap.Int("line_items", written.LineItems),
		)
	}

	fmt.Fprintf(g.out, "All %s packing slips have been processed.\n", g.company)

	result.Stats.ProcessingTime = time.Since(start)
	log.Info("Packing slips complete",
		zap.Int("orders", result.Stats.OrdersWritten),
		zap.Duration("took", result.Stats.ProcessingTime),
	)
	return result, nil
}

// processOrder builds, renders and exports a single order.
func (g *Generator) processOrder(ctx context.Context, group order.Group) (OrderResult, error) {
	out := OrderResult{OrderNumber: group.Key}

	if err := dates.Normalize(group.Rows, g.dateColumns); err != nil {
		return out, fmt.Errorf("failed to normalize dates: %w", err)
	}

	model, err := g.aggregator.Build(group)
	if err != nil {
		return out, err
	}
	out.LineItems = len(group.Rows)

	html, err := g.renderer.Render(model)
	if err != nil {
		return out, err
	}

	out.Files = g.files.FilesFor(group.Key)

	if err := g.files.WriteFile(out.Files.HTML, html); err != nil {
		return out, err
	}

	if err := g.exporter.Export(ctx, html, out.Files.PDF); err != nil {
		return out, err
	}

	return out, nil
}
