// Package render holds the body renderer registry keyed by source file
// extension.
package render

import (
	"path"
	"strings"
)

// Renderer converts a raw document body to its rendered form.
type Renderer func(raw []byte) ([]byte, error)

// Registry maps source file extensions (with leading dot, lowercase) to
// body renderers.
type Registry map[string]Renderer

// ForPath returns the renderer registered for the path's extension.
// Unmatched extensions render as identity: the body passes through
// unchanged.
func (r Registry) ForPath(sourcePath string) Renderer {
	ext := strings.ToLower(path.Ext(sourcePath))
	if render, ok := r[ext]; ok {
		return render
	}
	return identity
}

func identity(raw []byte) ([]byte, error) { return raw, nil }

// Default returns the registry used by the build pipeline: markdown for
// .md/.markdown, everything else identity.
func Default() Registry {
	return Registry{
		".md":       Markdown,
		".markdown": Markdown,
	}
}
