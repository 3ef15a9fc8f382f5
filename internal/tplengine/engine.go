// Package tplengine renders layout templates loaded from a layouts
// directory, using text/template extended with the sprig function map.
package tplengine

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/bmatcuk/doublestar/v4"
)

// Engine holds the parsed layout templates for one template extension.
// One engine serves one build; the build selects it explicitly by
// extension.
type Engine struct {
	ext       string
	templates map[string]*template.Template
}

// New loads every "*<ext>" template directly under layoutsDir. Template
// identifiers are the file names, e.g. "post.html".
func New(layoutsDir, ext string) (*Engine, error) {
	matches, err := doublestar.FilepathGlob(filepath.Join(layoutsDir, "*"+ext))
	if err != nil {
		return nil, fmt.Errorf("glob layouts in %s: %w", layoutsDir, err)
	}

	e := &Engine{ext: ext, templates: make(map[string]*template.Template, len(matches))}
	for _, path := range matches {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read layout %s: %w", path, err)
		}

		name := filepath.Base(path)
		tmpl, err := template.New(name).Funcs(sprig.FuncMap()).Parse(string(raw))
		if err != nil {
			return nil, fmt.Errorf("parse layout %s: %w", path, err)
		}
		e.templates[name] = tmpl
	}
	return e, nil
}

// Ext returns the template extension this engine serves.
func (e *Engine) Ext() string { return e.ext }

// Has reports whether a template with the given identifier is loaded.
func (e *Engine) Has(templateID string) bool {
	_, ok := e.templates[templateID]
	return ok
}

// Render executes the identified template with the given context.
func (e *Engine) Render(templateID string, ctx map[string]any) (string, error) {
	tmpl, ok := e.templates[templateID]
	if !ok {
		return "", fmt.Errorf("template not found: %s", templateID)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("execute template %s: %w", templateID, err)
	}
	return buf.String(), nil
}
