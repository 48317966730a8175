// =============================================================================
// Packing Slip Generator - Main Entry Point
// =============================================================================
//
// USAGE:
//   packslip                - Generate packing slips (same as 'generate')
//   packslip generate       - Generate HTML and PDF packing slips
//   packslip validate       - Check inputs without writing files
//   packslip version        - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Spreadsheet loading, aggregation, rendering, PDF export
//   - pkg/           : Logger and output file helpers
//   - templates/     : The stock packing slip HTML template
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/packing-slips/cmd"
)

func main() {
	cmd.Execute()
}
