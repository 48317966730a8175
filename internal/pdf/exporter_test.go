package pdf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRenderer struct {
	err   error
	calls []string
}

func (f *fakeRenderer) render(_ context.Context, html, outPath string) error {
	f.calls = append(f.calls, outPath)
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(outPath, []byte("%PDF-1.4\n"+html), 0o644)
}

func writeExecutable(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script engines need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "wkhtmltopdf")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.Equal(t, EngineWkhtmltopdf, opts.Engine)
	assert.Equal(t, "Letter", opts.PageSize)
	assert.Equal(t, "UTF-8", opts.Encoding)
	assert.Equal(t, map[string]string{"Accept-Encoding": "gzip"}, opts.CustomHeaders)
	assert.True(t, opts.NoOutline)
}

func TestResolveBinary(t *testing.T) {
	t.Run("configured path exists", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "engine")
		require.NoError(t, os.WriteFile(path, nil, 0o755))

		got, err := ResolveBinary(EngineWkhtmltopdf, path)
		require.NoError(t, err)
		assert.Equal(t, path, got)
	})

	t.Run("configured path missing", func(t *testing.T) {
		_, err := ResolveBinary(EngineWkhtmltopdf, filepath.Join(t.TempDir(), "missing"))
		assert.ErrorIs(t, err, ErrEngineNotFound)
	})

	t.Run("configured path is a directory", func(t *testing.T) {
		_, err := ResolveBinary(EngineWkhtmltopdf, t.TempDir())
		assert.ErrorIs(t, err, ErrEngineNotFound)
	})

	t.Run("not on PATH", func(t *testing.T) {
		t.Setenv("PATH", t.TempDir())

		_, err := ResolveBinary(EngineWkhtmltopdf, "")
		assert.ErrorIs(t, err, ErrEngineNotFound)
	})

	t.Run("found on PATH", func(t *testing.T) {
		path := writeExecutable(t, "#!/bin/sh\nexit 0\n")
		t.Setenv("PATH", filepath.Dir(path))

		got, err := ResolveBinary(EngineWkhtmltopdf, "")
		require.NoError(t, err)
		assert.Equal(t, path, got)
	})

	t.Run("unknown engine", func(t *testing.T) {
		_, err := ResolveBinary("prince", "")
		assert.Error(t, err)
	})
}

func TestNewExporter(t *testing.T) {
	t.Run("unknown engine", func(t *testing.T) {
		_, err := NewExporter(Options{Engine: "prince"}, nil)
		assert.ErrorContains(t, err, "unknown PDF engine")
	})

	t.Run("missing binary is an engine error", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Path = filepath.Join(t.TempDir(), "wkhtmltopdf.exe")

		_, err := NewExporter(opts, zap.NewNop())

		var engineErr *EngineError
		require.ErrorAs(t, err, &engineErr)
		assert.Equal(t, EngineWkhtmltopdf, engineErr.Engine)
		assert.ErrorIs(t, err, ErrEngineNotFound)
	})

	t.Run("defaults engine", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "engine")
		require.NoError(t, os.WriteFile(path, nil, 0o755))

		e, err := NewExporter(Options{Path: path}, nil)
		require.NoError(t, err)
		assert.Equal(t, path, e.BinaryPath())
		assert.IsType(t, &wkhtmlEngine{}, e.engine)
	})

	t.Run("chrome engine", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chrome")
		require.NoError(t, os.WriteFile(path, nil, 0o755))

		e, err := NewExporter(Options{Engine: EngineChrome, Path: path}, nil)
		require.NoError(t, err)
		assert.IsType(t, &chromeEngine{}, e.engine)
	})
}

func TestExporter_Export(t *testing.T) {
	fake := &fakeRenderer{}
	e := &Exporter{opts: DefaultOptions(), bin: "/opt/wkhtmltopdf", engine: fake, log: zap.NewNop()}
	out := filepath.Join(t.TempDir(), "mj_packing_slip_1001.pdf")

	require.NoError(t, e.Export(context.Background(), "<p>hi</p>", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<p>hi</p>")
	assert.Equal(t, []string{out}, fake.calls)
}

func TestExporter_ExportFailure(t *testing.T) {
	cause := errors.New("exit status 1")
	e := &Exporter{opts: DefaultOptions(), bin: "/opt/wkhtmltopdf", engine: &fakeRenderer{err: cause}, log: zap.NewNop()}

	err := e.Export(context.Background(), "<p>hi</p>", filepath.Join(t.TempDir(), "out.pdf"))

	var engineErr *EngineError
	require.ErrorAs(t, err, &engineErr)
	assert.Equal(t, "/opt/wkhtmltopdf", engineErr.Path)
	assert.ErrorIs(t, err, cause)
}

func TestWkhtmltopdf_NonZeroExit(t *testing.T) {
	bin := writeExecutable(t, "#!/bin/sh\ncat > /dev/null\necho 'boom' >&2\nexit 3\n")

	e, err := NewExporter(Options{Engine: EngineWkhtmltopdf, Path: bin, PageSize: "Letter", NoOutline: true}, nil)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "out.pdf")
	err = e.Export(context.Background(), "<p>hi</p>", out)

	var engineErr *EngineError
	require.ErrorAs(t, err, &engineErr)
	assert.NoFileExists(t, out)
}

func TestWkhtmltopdf_FixedOptions(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args.txt")
	bin := writeExecutable(t, "#!/bin/sh\n"+
		"printf '%s\\n' \"$@\" > '"+argsFile+"'\n"+
		"cat > /dev/null\n"+
		"printf '%%PDF-1.4\\n'\n")

	opts := DefaultOptions()
	opts.Path = bin
	e, err := NewExporter(opts, nil)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "mj_packing_slip_1001.pdf")
	require.NoError(t, e.Export(context.Background(), "<p>hi</p>", out))

	data, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	args := strings.Join(strings.Fields(string(data)), " ")

	assert.Contains(t, args, "--page-size Letter")
	assert.Contains(t, args, "--no-outline")
	assert.Contains(t, args, "--custom-header Accept-Encoding gzip")
	assert.Contains(t, args, "--encoding UTF-8")

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4\n", string(written))
}
