package document

import (
	"fmt"
	"strings"

	"github.com/Happy-Ferret/fledermaus/internal/fields"
	"github.com/Happy-Ferret/fledermaus/internal/frontmatter"
	"github.com/Happy-Ferret/fledermaus/internal/render"
	"github.com/Happy-Ferret/fledermaus/internal/urlpath"
)

// Options configures document parsing.
type Options struct {
	// FieldParsers transform named front-matter fields after the split.
	FieldParsers fields.Registry

	// CutTag, when set and present in the rendered content, splits the
	// content into Excerpt (before the first occurrence) and More
	// (after it).
	CutTag string

	// Renderers selects the body renderer by source file extension.
	// Unmatched extensions pass the body through unrendered.
	Renderers render.Registry
}

// FrontMatterError reports an unparsable front-matter block, annotated
// with the originating source path.
type FrontMatterError struct {
	SourcePath string
	Err        error
}

func (e *FrontMatterError) Error() string {
	return fmt.Sprintf("malformed frontmatter in %s: %v", e.SourcePath, e.Err)
}

func (e *FrontMatterError) Unwrap() error { return e.Err }

// Parse turns a raw source file into a Document.
//
// The front matter is split and decoded, field parsers applied, the URL
// derived from relativePath, the body rendered by extension, and the
// optional cut tag resolved into excerpt/more.
func Parse(rawSource []byte, relativePath string, opts Options) (*Document, error) {
	rawFields, rawBody, err := frontmatter.Parse(rawSource)
	if err != nil {
		return nil, &FrontMatterError{SourcePath: relativePath, Err: err}
	}

	parsed, err := fields.Apply(rawFields, opts.FieldParsers)
	if err != nil {
		return nil, err
	}

	rendered, err := opts.Renderers.ForPath(relativePath)(rawBody)
	if err != nil {
		return nil, fmt.Errorf("render body of %s: %w", relativePath, err)
	}

	doc := &Document{
		SourcePath: relativePath,
		URL:        urlpath.Derive(relativePath),
		Content:    string(rendered),
		Fields:     parsed,
	}

	if opts.CutTag != "" {
		if before, after, found := strings.Cut(doc.Content, opts.CutTag); found {
			doc.Excerpt = before
			doc.More = after
			doc.HasExcerpt = true
		}
	}

	return doc, nil
}
