package document

import (
	"errors"
	"testing"

	"github.com/Happy-Ferret/fledermaus/internal/fields"
	"github.com/Happy-Ferret/fledermaus/internal/render"
	"github.com/stretchr/testify/require"
)

func TestParse_MarkdownSource_ProducesRenderedDocument(t *testing.T) {
	src := []byte("---\nlayout: post\ntitle: Hello\n---\n# Hello\n")

	doc, err := Parse(src, "posts/hello.md", Options{Renderers: render.Default()})
	require.NoError(t, err)
	require.Equal(t, "posts/hello.md", doc.SourcePath)
	require.Equal(t, "/posts/hello", doc.URL)
	require.Contains(t, doc.Content, "<h1>Hello</h1>")
	require.Equal(t, "post", doc.Layout())
	require.Equal(t, "Hello", doc.Fields["title"])
}

func TestParse_UnknownExtension_BodyPassesThrough(t *testing.T) {
	src := []byte("---\nlayout: raw\n---\nplain body\n")

	doc, err := Parse(src, "raw.txt", Options{Renderers: render.Default()})
	require.NoError(t, err)
	require.Equal(t, "plain body\n", doc.Content)
}

func TestParse_MalformedFrontMatter_ReturnsFrontMatterError(t *testing.T) {
	src := []byte("---\nlayout: post\nno closing delimiter\n")

	_, err := Parse(src, "bad.md", Options{Renderers: render.Default()})
	require.Error(t, err)

	var fme *FrontMatterError
	require.True(t, errors.As(err, &fme))
	require.Equal(t, "bad.md", fme.SourcePath)
}

func TestParse_FieldParserFailure_PropagatesParseError(t *testing.T) {
	src := []byte("---\ndate: garbage\n---\nbody\n")
	failing := fields.Registry{"date": func(v any) (any, error) {
		return nil, errors.New("bad date")
	}}

	_, err := Parse(src, "a.md", Options{FieldParsers: failing, Renderers: render.Default()})
	var pe *fields.ParseError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, "date", pe.Field)
}

func TestParse_CutTagPresent_SplitsExcerptAndMore(t *testing.T) {
	src := []byte("---\nlayout: post\n---\nintro\n<!--more-->\nrest\n")

	doc, err := Parse(src, "a.txt", Options{CutTag: "<!--more-->", Renderers: render.Default()})
	require.NoError(t, err)
	require.True(t, doc.HasExcerpt)
	require.Equal(t, "intro\n", doc.Excerpt)
	require.Equal(t, "\nrest\n", doc.More)
}

func TestParse_CutTagAbsent_NoExcerpt(t *testing.T) {
	src := []byte("---\nlayout: post\n---\nno cut here\n")

	doc, err := Parse(src, "a.txt", Options{CutTag: "<!--more-->", Renderers: render.Default()})
	require.NoError(t, err)
	require.False(t, doc.HasExcerpt)

	m := doc.ToMap()
	require.NotContains(t, m, "excerpt")
	require.NotContains(t, m, "more")
}

func TestParse_IndexFile_URLCollapsesToParent(t *testing.T) {
	doc, err := Parse([]byte("body"), "docs/index.md", Options{Renderers: render.Default()})
	require.NoError(t, err)
	require.Equal(t, "/docs", doc.URL)
}
