// =============================================================================
// Packing Slip Generator - Configuration Module
// =============================================================================
//
// This module loads the application configuration. Settings come from three
// layers, later layers winning:
//
//   1. Built-in defaults (the stock M&J Toys packing slip run)
//   2. config.yaml (optional; a missing default file is not an error)
//   3. Environment variables, optionally from a .env file
//
// ENVIRONMENT OVERRIDES:
//   PACKSLIP_INPUT        input spreadsheet
//   PACKSLIP_OUTPUT_DIR   output directory
//   PACKSLIP_ENGINE       wkhtmltopdf | chrome
//   PACKSLIP_ENGINE_PATH  engine binary
//   PACKSLIP_LOG_LEVEL    debug | info | warn | error
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/packing-slips/internal/dates"
	"github.com/ginjaninja78/packing-slips/internal/order"
	"github.com/ginjaninja78/packing-slips/internal/pdf"
	"github.com/ginjaninja78/packing-slips/internal/render"
)

// DefaultConfigFile is the configuration file read when --config is not set.
const DefaultConfigFile = "config.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the settings for one packing slip run.
type Config struct {
	// =========================================================================
	// INPUT
	// =========================================================================

	// InputFile is the order spreadsheet (.xlsx or .csv).
	// Default: "template.xlsx"
	InputFile string `yaml:"input_file"`

	// Sheet is the worksheet to read. Empty means the first sheet.
	Sheet string `yaml:"sheet"`

	// DateColumns are rewritten to MM/DD/YYYY before rendering.
	// Default: Invoice_Date, SO_Date, Date_Paid, Ship_Date
	DateColumns []string `yaml:"date_columns"`

	// =========================================================================
	// TEMPLATE
	// =========================================================================

	// TemplatesDir is the directory the template is looked up in.
	// Default: "."
	TemplatesDir string `yaml:"templates_dir"`

	// TemplateName is the HTML template file name.
	// Default: "mj_packing_slip_template.html"
	TemplateName string `yaml:"template_name"`

	// MinLineItems is the number of rows the slip layout always shows.
	// Orders with fewer lines are padded with blank rows.
	// Default: 16
	MinLineItems int `yaml:"min_line_items"`

	// =========================================================================
	// OUTPUT
	// =========================================================================

	// OutputDir is where the .html and .pdf files are written.
	// Default: "."
	OutputDir string `yaml:"output_dir"`

	// OutputPrefix starts every output file name: <prefix>_<order>.pdf
	// Default: "mj_packing_slip"
	OutputPrefix string `yaml:"output_prefix"`

	// CompanyName appears in the console status lines.
	// Default: "M&J Toys"
	CompanyName string `yaml:"company_name"`

	// =========================================================================
	// LOGGING
	// =========================================================================

	// LogLevel controls diagnostic logging on stderr.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// PDF ENGINE
	// =========================================================================

	Engine EngineConfig `yaml:"engine"`
}

// EngineConfig configures the HTML to PDF rendering engine.
type EngineConfig struct {
	// Kind is "wkhtmltopdf" or "chrome".
	Kind string `yaml:"kind"`

	// Path is the engine binary. Empty means next to the executable, then PATH.
	Path string `yaml:"path"`

	PageSize      string            `yaml:"page_size"`
	Encoding      string            `yaml:"encoding"`
	CustomHeaders map[string]string `yaml:"custom_headers"`

	// NoOutline is a pointer so an explicit false in YAML survives defaults.
	NoOutline *bool `yaml:"no_outline"`
}

// PDFOptions converts the engine settings for the exporter.
func (e EngineConfig) PDFOptions() pdf.Options {
	opts := pdf.Options{
		Engine:        e.Kind,
		Path:          e.Path,
		PageSize:      e.PageSize,
		Encoding:      e.Encoding,
		CustomHeaders: e.CustomHeaders,
		NoOutline:     true,
	}
	if e.NoOutline != nil {
		opts.NoOutline = *e.NoOutline
	}
	return opts
}

// =============================================================================
// LOADING
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the configuration from path, then applies .env and environment
// overrides.
//
// PARAMETERS:
//   - path: The YAML file. If it is DefaultConfigFile and does not exist,
//     defaults are used. Any other missing path is an error.
//
// RETURNS:
//   - The configuration with defaults applied. It is not validated; callers
//     apply their own overrides first and then call Validate.
//   - An error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && path == DefaultConfigFile:
		// Running with built-in defaults.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// A missing .env is fine; configuration may come from the environment.
	_ = godotenv.Load()
	applyEnv(cfg)

	applyDefaults(cfg)

	return cfg, nil
}

// applyEnv overrides settings from PACKSLIP_* environment variables.
func applyEnv(cfg *Config) {
	overrides := map[string]*string{
		"PACKSLIP_INPUT":       &cfg.InputFile,
		"PACKSLIP_OUTPUT_DIR":  &cfg.OutputDir,
		"PACKSLIP_ENGINE":      &cfg.Engine.Kind,
		"PACKSLIP_ENGINE_PATH": &cfg.Engine.Path,
		"PACKSLIP_LOG_LEVEL":   &cfg.LogLevel,
	}
	for key, target := range overrides {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*target = v
		}
	}
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.InputFile == "" {
		cfg.InputFile = "template.xlsx"
	}
	if cfg.DateColumns == nil {
		cfg.DateColumns = append([]string(nil), dates.DefaultColumns...)
	}
	if cfg.TemplatesDir == "" {
		cfg.TemplatesDir = "."
	}
	if cfg.TemplateName == "" {
		cfg.TemplateName = render.DefaultTemplate
	}
	if cfg.MinLineItems == 0 {
		cfg.MinLineItems = order.DefaultMinLineItems
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.OutputPrefix == "" {
		cfg.OutputPrefix = "mj_packing_slip"
	}
	if cfg.CompanyName == "" {
		cfg.CompanyName = "M&J Toys"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	defaults := pdf.DefaultOptions()
	if cfg.Engine.Kind == "" {
		cfg.Engine.Kind = defaults.Engine
	}
	if cfg.Engine.PageSize == "" {
		cfg.Engine.PageSize = defaults.PageSize
	}
	if cfg.Engine.Encoding == "" {
		cfg.Engine.Encoding = defaults.Encoding
	}
	if cfg.Engine.CustomHeaders == nil {
		cfg.Engine.CustomHeaders = defaults.CustomHeaders
	}
	if cfg.Engine.NoOutline == nil {
		noOutline := defaults.NoOutline
		cfg.Engine.NoOutline = &noOutline
	}
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	switch c.Engine.Kind {
	case pdf.EngineWkhtmltopdf, pdf.EngineChrome:
	default:
		return fmt.Errorf("engine.kind must be %q or %q, got %q",
			pdf.EngineWkhtmltopdf, pdf.EngineChrome, c.Engine.Kind)
	}

	if c.MinLineItems < 0 {
		return fmt.Errorf("min_line_items must not be negative, got %d", c.MinLineItems)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}

	return nil
}
