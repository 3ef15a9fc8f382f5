package render

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Markdown renders a markdown body to HTML.
func Markdown(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(raw, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
