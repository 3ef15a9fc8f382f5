// Package site assembles render contexts and generates output pages
// from Documents.
package site

import (
	"fmt"
	"path"
	"strings"

	"github.com/Happy-Ferret/fledermaus/internal/config"
	"github.com/Happy-Ferret/fledermaus/internal/document"
	"github.com/Happy-Ferret/fledermaus/internal/merge"
)

// TemplateRenderer renders an identified layout template against an
// assembled context.
type TemplateRenderer interface {
	Render(templateID string, ctx map[string]any) (string, error)
}

// Registry maps template extensions to renderers. The build selects its
// engine explicitly by extension; there is no positional fallback.
type Registry map[string]TemplateRenderer

// Page is a generated output page, write-once.
type Page struct {
	// PagePath is the document's source path with its extension
	// stripped, relative to the output root.
	PagePath string
	Content  string
}

// MissingLayoutError reports a document that cannot be rendered because
// it declares no layout.
type MissingLayoutError struct {
	SourcePath string
}

func (e *MissingLayoutError) Error() string {
	return fmt.Sprintf("document %s has no layout", e.SourcePath)
}

// MakeContext deep-merges helpers, the config (under the "config"
// key), and the document's fields, in that precedence order: document
// fields win over config, which wins over helpers. None of the inputs
// are mutated.
func MakeContext(doc *document.Document, cfg config.Config, helpers map[string]any) map[string]any {
	return merge.Layered(
		helpers,
		map[string]any{"config": cfg},
		doc.ToMap(),
	)
}

// Generator turns Documents into Pages through a template renderer.
type Generator struct {
	renderers Registry
	ext       string
	helpers   map[string]any
}

// NewGenerator creates a Generator rendering through the engine
// registered under ext.
func NewGenerator(renderers Registry, ext string, helpers map[string]any) *Generator {
	return &Generator{renderers: renderers, ext: ext, helpers: helpers}
}

// GeneratePage assembles the document's context and renders it through
// the layout template "<layout><ext>".
func (g *Generator) GeneratePage(doc *document.Document, cfg config.Config) (*Page, error) {
	layout := doc.Layout()
	if layout == "" {
		return nil, &MissingLayoutError{SourcePath: doc.SourcePath}
	}

	renderer, ok := g.renderers[g.ext]
	if !ok {
		return nil, fmt.Errorf("no template renderer registered for extension %q", g.ext)
	}

	content, err := renderer.Render(layout+g.ext, MakeContext(doc, cfg, g.helpers))
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", doc.SourcePath, err)
	}

	return &Page{PagePath: stripExt(doc.SourcePath), Content: content}, nil
}

func stripExt(sourcePath string) string {
	return strings.TrimSuffix(sourcePath, path.Ext(sourcePath))
}
