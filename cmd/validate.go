// =============================================================================
// Packing Slip Generator - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks everything a run
// depends on without writing any output files.
//
// COMMAND USAGE:
//   packslip validate [flags]
//
// CHECKS:
//   1. The configuration loads and is valid
//   2. The spreadsheet loads and has the required columns
//   3. Every date cell can be normalized
//   4. Every order builds (Order_Unit, Pack, Vol, Total_WT parse)
//   5. The HTML template parses
//   6. The PDF engine binary can be found
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/packing-slips/internal/dates"
	"github.com/ginjaninja78/packing-slips/internal/order"
	"github.com/ginjaninja78/packing-slips/internal/pdf"
	"github.com/ginjaninja78/packing-slips/internal/render"
	"github.com/ginjaninja78/packing-slips/internal/sheet"
	"github.com/ginjaninja78/packing-slips/internal/types"
)

// RequiredColumns are the spreadsheet columns every packing slip run reads.
var RequiredColumns = []string{
	order.KeyColumn,
	"Order_Unit",
	"Pack",
}

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check configuration, spreadsheet, template and PDF engine",
	Long: `The validate command performs every check a 'generate' run depends on
and reports the first problem it finds. No files are written.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// runValidate performs the preflight checks and prints one line per check.
func runValidate(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Validating packing slip setup...")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "  ✓ Configuration (%s)\n", cfgFile)

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	table, err := sheet.Load(cfg.InputFile, sheet.Options{Sheet: cfg.Sheet})
	if err != nil {
		return err
	}
	if err := checkColumns(table); err != nil {
		return err
	}
	fmt.Fprintf(out, "  ✓ Spreadsheet %s (%d rows)\n", cfg.InputFile, len(table.Rows))

	if err := dates.Normalize(table.Rows, cfg.DateColumns); err != nil {
		return fmt.Errorf("failed to normalize dates: %w", err)
	}
	fmt.Fprintln(out, "  ✓ Date columns")

	groups, err := order.GroupRows(table)
	if err != nil {
		return err
	}
	aggregator := order.NewAggregator(order.WithMinLineItems(cfg.MinLineItems))
	for _, group := range groups {
		if _, err := aggregator.Build(group); err != nil {
			return fmt.Errorf("order %s: %w", group.Key, err)
		}
	}
	fmt.Fprintf(out, "  ✓ %d orders\n", len(groups))

	renderer, err := render.New(cfg.TemplatesDir, cfg.TemplateName)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "  ✓ Template %s\n", renderer.Name())

	exporter, err := pdf.NewExporter(cfg.Engine.PDFOptions(), log)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "  ✓ PDF engine %s (%s)\n", cfg.Engine.Kind, exporter.BinaryPath())

	fmt.Fprintln(out, "\nValidation passed.")
	return nil
}

// checkColumns reports the first required column the table lacks.
func checkColumns(table *types.Table) error {
	for _, column := range RequiredColumns {
		if !table.HasColumn(column) {
			return &order.MissingColumnError{Column: column}
		}
	}
	return nil
}
