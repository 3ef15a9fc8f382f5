package storage

import (
	"os"
	"path/filepath"

	"github.com/Happy-Ferret/fledermaus/internal/site"
)

// FSStore writes pages to a directory tree under a root folder.
type FSStore struct {
	root string
}

// NewFSStore creates a store rooted at root. The root itself is created
// on first write.
func NewFSStore(root string) *FSStore {
	return &FSStore{root: root}
}

// WritePage implements PageStore.
func (s *FSStore) WritePage(page *site.Page) error {
	full := filepath.Join(s.root, filepath.FromSlash(page.PagePath))

	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return &WriteError{PagePath: page.PagePath, Err: err}
	}
	// #nosec G306 -- generated pages are public site content
	if err := os.WriteFile(full, []byte(page.Content), 0o644); err != nil {
		return &WriteError{PagePath: page.PagePath, Err: err}
	}
	return nil
}
