package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "packslip.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "template.xlsx", cfg.InputFile)
	assert.Equal(t, []string{"Invoice_Date", "SO_Date", "Date_Paid", "Ship_Date"}, cfg.DateColumns)
	assert.Equal(t, ".", cfg.TemplatesDir)
	assert.Equal(t, "mj_packing_slip_template.html", cfg.TemplateName)
	assert.Equal(t, 16, cfg.MinLineItems)
	assert.Equal(t, "mj_packing_slip", cfg.OutputPrefix)
	assert.Equal(t, "M&J Toys", cfg.CompanyName)
	assert.Equal(t, "info", cfg.LogLevel)

	opts := cfg.Engine.PDFOptions()
	assert.Equal(t, "wkhtmltopdf", opts.Engine)
	assert.Equal(t, "Letter", opts.PageSize)
	assert.Equal(t, "UTF-8", opts.Encoding)
	assert.Equal(t, "gzip", opts.CustomHeaders["Accept-Encoding"])
	assert.True(t, opts.NoOutline)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
input_file: orders/march.xlsx
sheet: Orders
output_dir: out
min_line_items: 20
engine:
  kind: chrome
  page_size: A4
  no_outline: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "orders/march.xlsx", cfg.InputFile)
	assert.Equal(t, "Orders", cfg.Sheet)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, 20, cfg.MinLineItems)

	opts := cfg.Engine.PDFOptions()
	assert.Equal(t, "chrome", opts.Engine)
	assert.Equal(t, "A4", opts.PageSize)
	assert.False(t, opts.NoOutline)
	assert.Equal(t, "UTF-8", opts.Encoding)
}

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "template.xlsx", cfg.InputFile)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PACKSLIP_INPUT", "env.xlsx")
	t.Setenv("PACKSLIP_ENGINE_PATH", "/opt/wk/wkhtmltopdf")
	t.Setenv("PACKSLIP_LOG_LEVEL", "debug")

	cfg, err := Load(writeConfig(t, "input_file: file.xlsx\n"))
	require.NoError(t, err)

	assert.Equal(t, "env.xlsx", cfg.InputFile)
	assert.Equal(t, "/opt/wk/wkhtmltopdf", cfg.Engine.Path)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "unknown engine", content: "engine:\n  kind: prince\n", wantErr: "engine.kind"},
		{name: "negative rows", content: "min_line_items: -1\n", wantErr: "min_line_items"},
		{name: "bad log level", content: "log_level: loud\n", wantErr: "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.content))
			require.NoError(t, err)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "engine: ["))
	assert.ErrorContains(t, err, "failed to parse")
}

func TestLoad_InvalidEnvCanBeOverridden(t *testing.T) {
	t.Setenv("PACKSLIP_ENGINE", "bad")

	cfg, err := Load(writeConfig(t, "input_file: file.xlsx\n"))
	require.NoError(t, err)
	assert.Equal(t, "bad", cfg.Engine.Kind)
	assert.Error(t, cfg.Validate())

	cfg.Engine.Kind = "chrome"
	assert.NoError(t, cfg.Validate())
}
