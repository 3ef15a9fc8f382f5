// Package source discovers content files and parses them into
// Documents.
package source

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/Happy-Ferret/fledermaus/internal/document"
	"github.com/Happy-Ferret/fledermaus/internal/logfields"
)

// Loader discovers source files under a folder and parses each into a
// Document. The returned collection is fresh and caller-owned; callers
// needing a deterministic output order must apply query ordering
// explicitly.
type Loader struct {
	folder     string
	extensions []string
	opts       document.Options
}

// NewLoader creates a Loader for the given folder and extension set.
// Extensions are given without a leading dot (e.g. "md", "html").
func NewLoader(folder string, extensions []string, opts document.Options) *Loader {
	return &Loader{folder: folder, extensions: extensions, opts: opts}
}

// Discover returns the relative slash-separated paths of all matching
// files under the folder. Each matched file appears exactly once even
// when extension patterns overlap.
func (l *Loader) Discover() ([]string, error) {
	seen := make(map[string]struct{})
	var paths []string

	for _, ext := range l.extensions {
		pattern := filepath.Join(l.folder, "**", "*."+strings.TrimPrefix(ext, "."))
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", match, err)
			}
			if info.IsDir() {
				continue
			}

			rel, err := filepath.Rel(l.folder, match)
			if err != nil {
				return nil, fmt.Errorf("relativize %s: %w", match, err)
			}
			rel = filepath.ToSlash(rel)

			if _, dup := seen[rel]; dup {
				continue
			}
			seen[rel] = struct{}{}
			paths = append(paths, rel)
		}
	}

	return paths, nil
}

// Load discovers and parses all sources. The first parse failure aborts
// the load; no partial document state is retained.
func (l *Loader) Load() ([]*document.Document, error) {
	paths, err := l.Discover()
	if err != nil {
		return nil, err
	}

	docs := make([]*document.Document, 0, len(paths))
	for _, rel := range paths {
		raw, err := os.ReadFile(filepath.Join(l.folder, filepath.FromSlash(rel)))
		if err != nil {
			return nil, fmt.Errorf("read source %s: %w", rel, err)
		}

		doc, err := document.Parse(raw, rel, l.opts)
		if err != nil {
			return nil, err
		}

		slog.Debug("Source parsed", logfields.SourcePath(rel), logfields.URL(doc.URL))
		docs = append(docs, doc)
	}

	slog.Info("Sources loaded", logfields.Path(l.folder), logfields.Count(len(docs)))
	return docs, nil
}
