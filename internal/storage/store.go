// Package storage persists generated pages.
package storage

import (
	"fmt"

	"github.com/Happy-Ferret/fledermaus/internal/site"
)

// PageStore persists generated pages. Pages are write-once; stores do
// not support mutation of already-written pages.
type PageStore interface {
	// WritePage persists a page under its PagePath, creating parent
	// directories as needed.
	WritePage(page *site.Page) error
}

// WriteError reports a failed page write, annotated with the page path.
type WriteError struct {
	PagePath string
	Err      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write page %s: %v", e.PagePath, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
