// Package document defines the Document entity and its parser.
//
// A Document is created once from a single source file and never
// mutated afterwards; query, group, and paginate operations return new
// collections and records referencing the originals.
package document

// Canonical names of the structural fields a Document contributes to
// its render context. Structural fields take precedence over
// same-named front-matter fields.
const (
	KeySourcePath = "sourcePath"
	KeyURL        = "url"
	KeyContent    = "content"
	KeyExcerpt    = "excerpt"
	KeyMore       = "more"
	KeyLayout     = "layout"
)

// Document is a parsed source content unit: structural fields derived
// during parsing plus arbitrary front-matter fields.
type Document struct {
	SourcePath string
	URL        string
	Content    string

	// Excerpt and More are only set when a cut tag was configured and
	// present in the rendered content; HasExcerpt distinguishes the
	// empty excerpt from the absent one.
	Excerpt    string
	More       string
	HasExcerpt bool

	Fields map[string]any
}

// Get resolves a field by name, structural fields first.
func (d *Document) Get(name string) (any, bool) {
	switch name {
	case KeySourcePath:
		return d.SourcePath, true
	case KeyURL:
		return d.URL, true
	case KeyContent:
		return d.Content, true
	case KeyExcerpt:
		if !d.HasExcerpt {
			break
		}
		return d.Excerpt, true
	case KeyMore:
		if !d.HasExcerpt {
			break
		}
		return d.More, true
	}
	v, ok := d.Fields[name]
	return v, ok
}

// Layout returns the document's layout front-matter field, or "" when
// absent or not a string.
func (d *Document) Layout() string {
	v, ok := d.Fields[KeyLayout]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// ToMap produces the document's render-context view: front-matter
// fields with the structural fields merged over them. The returned map
// is fresh on every call.
func (d *Document) ToMap() map[string]any {
	out := make(map[string]any, len(d.Fields)+5)
	for k, v := range d.Fields {
		out[k] = v
	}
	out[KeySourcePath] = d.SourcePath
	out[KeyURL] = d.URL
	out[KeyContent] = d.Content
	if d.HasExcerpt {
		out[KeyExcerpt] = d.Excerpt
		out[KeyMore] = d.More
	}
	return out
}
