// =============================================================================
// Packing Slip Generator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Run without a
// subcommand, packslip behaves like 'packslip generate', so the tool can be
// invoked as a one-shot script.
//
// COBRA CLI STRUCTURE:
//   rootCmd (packslip)
//   ├── generateCmd (packslip generate)
//   ├── validateCmd (packslip validate)
//   └── versionCmd  (packslip version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/packing-slips/internal/config"
	"github.com/ginjaninja78/packing-slips/pkg/logger"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// Run overrides shared by generate and validate.
var (
	inputFile    string
	sheetName    string
	outputDir    string
	templateName string
	engineKind   string
	enginePath   string
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "packslip",
	Short: "Packing Slip Generator - Turn an order spreadsheet into packing slip PDFs",
	Long: `Packing Slip Generator reads order lines from a spreadsheet, groups them by
order number, and writes one HTML and one PDF packing slip per order.

For each order it computes case count, shipped quantity, weight and volume
totals, pads the line item table to a fixed number of rows, renders the HTML
template and converts it to PDF with wkhtmltopdf (or headless Chrome).

Example Usage:
  packslip                                 # Same as 'packslip generate'
  packslip generate --input orders.xlsx    # Use a different spreadsheet
  packslip validate                        # Check inputs without writing files`,

	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	flags := rootCmd.PersistentFlags()

	flags.StringVar(&cfgFile, "config", config.DefaultConfigFile, "Path to the configuration file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")

	flags.StringVar(&inputFile, "input", "", "Order spreadsheet (.xlsx or .csv)")
	flags.StringVar(&sheetName, "sheet", "", "Worksheet to read (default: first sheet)")
	flags.StringVar(&outputDir, "output-dir", "", "Directory for the generated files")
	flags.StringVar(&templateName, "template", "", "HTML template file name")
	flags.StringVar(&engineKind, "engine", "", "PDF engine: wkhtmltopdf or chrome")
	flags.StringVar(&enginePath, "engine-path", "", "Path to the PDF engine binary")
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// loadConfig reads the configuration file and applies command line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	overrides := []struct {
		flag   string
		value  string
		target *string
	}{
		{"input", inputFile, &cfg.InputFile},
		{"sheet", sheetName, &cfg.Sheet},
		{"output-dir", outputDir, &cfg.OutputDir},
		{"template", templateName, &cfg.TemplateName},
		{"engine", engineKind, &cfg.Engine.Kind},
		{"engine-path", enginePath, &cfg.Engine.Path},
	}
	for _, o := range overrides {
		if flags.Changed(o.flag) {
			*o.target = o.value
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the diagnostic logger for a command.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(cfg.LogLevel, verbose)
}
