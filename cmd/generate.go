// =============================================================================
// Packing Slip Generator - Generate Command
// =============================================================================
//
// COMMAND USAGE:
//   packslip generate [flags]
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Load the order spreadsheet
//   3. Parse the HTML template
//   4. Locate the PDF engine
//   5. For each order: build, render, write HTML, convert to PDF
//
// The run stops at the first error. Files for orders that completed before
// the error are kept.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/packing-slips/internal/order"
	"github.com/ginjaninja78/packing-slips/internal/pdf"
	"github.com/ginjaninja78/packing-slips/internal/render"
	"github.com/ginjaninja78/packing-slips/internal/sheet"
	"github.com/ginjaninja78/packing-slips/internal/slips"
	"github.com/ginjaninja78/packing-slips/pkg/logger"
	"github.com/ginjaninja78/packing-slips/pkg/utils"
)

// generateCmd represents the 'generate' command.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate HTML and PDF packing slips for every order",
	Long: `The generate command loads the order spreadsheet, groups the rows by
Order_number and writes <prefix>_<order>.html and <prefix>_<order>.pdf for
each order to the output directory.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

// runGenerate is the main function that orchestrates the pipeline.
func runGenerate(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	table, err := sheet.Load(cfg.InputFile, sheet.Options{Sheet: cfg.Sheet})
	if err != nil {
		return err
	}
	log.Debug("Loaded spreadsheet",
		zap.String("file", cfg.InputFile),
		zap.Int("rows", len(table.Rows)),
		zap.Strings("columns", table.Headers),
	)

	renderer, err := render.New(cfg.TemplatesDir, cfg.TemplateName)
	if err != nil {
		return err
	}

	exporter, err := pdf.NewExporter(cfg.Engine.PDFOptions(), logger.Named(log, "pdf"))
	if err != nil {
		return err
	}

	generator, err := slips.New(slips.Options{
		Aggregator:  order.NewAggregator(order.WithMinLineItems(cfg.MinLineItems)),
		Renderer:    renderer,
		Exporter:    exporter,
		Files:       utils.NewFileManager(cfg.OutputDir, cfg.OutputPrefix),
		DateColumns: cfg.DateColumns,
		CompanyName: cfg.CompanyName,
		Out:         cmd.OutOrStdout(),
		Logger:      logger.Named(log, "slips"),
	})
	if err != nil {
		return err
	}

	if _, err := generator.Run(cmd.Context(), table); err != nil {
		return fmt.Errorf("generate packing slips: %w", err)
	}
	return nil
}
