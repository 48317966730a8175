// Package render binds packing slip models into an HTML template.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"

	"github.com/ginjaninja78/packing-slips/internal/order"
)

// DefaultTemplate is the stock packing slip template name.
const DefaultTemplate = "mj_packing_slip_template.html"

// ErrTemplateNotFound is returned when the named template does not exist in
// the template directory.
var ErrTemplateNotFound = errors.New("template not found")

// Renderer renders packing slip models with one parsed template.
type Renderer struct {
	name string
	tpl  *template.Template
}

// New parses the template called name from dir.
func New(dir, name string) (*Renderer, error) {
	return NewFS(os.DirFS(dir), name)
}

// NewFS parses the template called name from fsys.
func NewFS(fsys fs.FS, name string) (*Renderer, error) {
	if _, err := fs.Stat(fsys, name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		return nil, fmt.Errorf("stat template %s: %w", name, err)
	}

	tpl, err := template.New(path.Base(name)).ParseFS(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}

	return &Renderer{name: name, tpl: tpl}, nil
}

// Name returns the template name the renderer was built from.
func (r *Renderer) Name() string { return r.name }

// Render executes the template against model and returns the HTML.
func (r *Renderer) Render(model order.Model) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, model); err != nil {
		return "", fmt.Errorf("render %s: %w", r.name, err)
	}
	return buf.String(), nil
}
