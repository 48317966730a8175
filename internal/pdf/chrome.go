package pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// paperSizes maps page size names to width and height in inches.
var paperSizes = map[string][2]float64{
	"letter":  {8.5, 11},
	"legal":   {8.5, 14},
	"tabloid": {11, 17},
	"a4":      {8.27, 11.69},
	"a5":      {5.83, 8.27},
}

// chromeEngine prints pages through headless Chrome over CDP.
type chromeEngine struct {
	bin  string
	opts Options
}

func (c *chromeEngine) render(ctx context.Context, html, outPath string) error {
	size, ok := paperSizes[strings.ToLower(c.opts.PageSize)]
	if !ok {
		size = paperSizes["letter"]
	}

	l := launcher.New().Bin(c.bin).Headless(true)
	defer l.Cleanup()

	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connect to chrome: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("open page: %w", err)
	}

	if len(c.opts.CustomHeaders) > 0 {
		dict := make([]string, 0, len(c.opts.CustomHeaders)*2)
		for name, value := range c.opts.CustomHeaders {
			dict = append(dict, name, value)
		}
		restore, err := page.SetExtraHeaders(dict)
		if err != nil {
			return fmt.Errorf("set headers: %w", err)
		}
		defer restore()
	}

	if err := page.SetDocumentContent(html); err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait for load: %w", err)
	}

	width, height := size[0], size[1]
	stream, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:      &width,
		PaperHeight:     &height,
		PrintBackground: true,
	})
	if err != nil {
		return fmt.Errorf("print to PDF: %w", err)
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		return fmt.Errorf("read PDF stream: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}

func chromeLookPath() (string, bool) {
	return launcher.LookPath()
}
