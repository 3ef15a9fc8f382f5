// Package paginate splits an ordered Document collection into
// synthetic listing-page Documents with prev/next links.
package paginate

import (
	"fmt"
	"strings"

	"github.com/Happy-Ferret/fledermaus/internal/document"
)

// Field names the paginator sets on each synthetic page document.
const (
	KeyDocuments   = "documents"
	KeyPageNumber  = "pageNumber"
	KeyTotalPages  = "totalPages"
	KeyPreviousURL = "previousUrl"
	KeyNextURL     = "nextUrl"
)

// Options configures pagination. All three options are required.
type Options struct {
	URLPrefix string
	PerPage   int
	Layout    string
}

// ConfigurationError reports a missing required pagination option.
type ConfigurationError struct {
	Option string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("paginate: missing required option %q", e.Option)
}

// Paginate slices docs into listing pages of PerPage documents each.
//
// Page n (1-based) gets URL "<prefix>/page/<n>", the contiguous slice
// of documents, and previousUrl/nextUrl fields pointing at its
// neighbors (absent on the first and last page respectively). An empty
// input yields no pages. The input slice is never mutated; each page is
// a fresh Document referencing the original documents.
func Paginate(docs []*document.Document, opts Options) ([]*document.Document, error) {
	switch {
	case opts.URLPrefix == "":
		return nil, &ConfigurationError{Option: "urlPrefix"}
	case opts.PerPage <= 0:
		return nil, &ConfigurationError{Option: "perPage"}
	case opts.Layout == "":
		return nil, &ConfigurationError{Option: "layout"}
	}

	totalPages := (len(docs) + opts.PerPage - 1) / opts.PerPage
	pages := make([]*document.Document, 0, totalPages)

	for n := 1; n <= totalPages; n++ {
		url := pageURL(opts.URLPrefix, n)

		start := (n - 1) * opts.PerPage
		end := min(n*opts.PerPage, len(docs))

		fields := map[string]any{
			KeyDocuments:       docs[start:end],
			KeyPageNumber:      n,
			KeyTotalPages:      totalPages,
			document.KeyLayout: opts.Layout,
		}
		if n > 1 {
			fields[KeyPreviousURL] = pageURL(opts.URLPrefix, n-1)
		}
		if n < totalPages {
			fields[KeyNextURL] = pageURL(opts.URLPrefix, n+1)
		}

		pages = append(pages, &document.Document{
			SourcePath: strings.TrimPrefix(url, "/"),
			URL:        url,
			Fields:     fields,
		})
	}

	return pages, nil
}

func pageURL(prefix string, n int) string {
	return fmt.Sprintf("%s/page/%d", prefix, n)
}
