// Package urlpath maps relative source paths to canonical site URLs.
package urlpath

import (
	"path"
	"strings"
)

// Derive maps a relative source path to its canonical output URL.
//
// The extension is stripped, the path is rooted at "/", a trailing
// "/index" segment is dropped, and the empty result normalizes to "/".
// Derive is total: any input string yields a URL.
func Derive(sourcePath string) string {
	p := strings.TrimSuffix(sourcePath, path.Ext(sourcePath))
	p = "/" + strings.TrimPrefix(p, "/")

	if p == "/index" || strings.HasSuffix(p, "/index") {
		p = strings.TrimSuffix(p, "index")
		p = strings.TrimSuffix(p, "/")
	}
	if p == "" {
		return "/"
	}
	return p
}
