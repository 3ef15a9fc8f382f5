package site

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Happy-Ferret/fledermaus/internal/config"
	"github.com/Happy-Ferret/fledermaus/internal/document"
	"github.com/stretchr/testify/require"
)

// fakeRenderer records the template identifier it was asked for and
// renders a fixed view of the context.
type fakeRenderer struct {
	lastTemplateID string
	lastContext    map[string]any
	out            string
	err            error
}

func (f *fakeRenderer) Render(templateID string, ctx map[string]any) (string, error) {
	f.lastTemplateID = templateID
	f.lastContext = ctx
	if f.err != nil {
		return "", f.err
	}
	return f.out, nil
}

func TestMakeContext_PrecedenceHelpersConfigDocument(t *testing.T) {
	doc := &document.Document{Fields: map[string]any{"title": "A"}}
	cfg := config.Config{"site": "S"}
	helpers := map[string]any{"h": 1}

	ctx := MakeContext(doc, cfg, helpers)
	require.Equal(t, 1, ctx["h"])
	require.Equal(t, "A", ctx["title"])
	require.Equal(t, "S", ctx["config"].(map[string]any)["site"])
}

func TestMakeContext_DocumentRedefinesHelper_DocumentWins(t *testing.T) {
	doc := &document.Document{Fields: map[string]any{"h": "from-doc"}}

	ctx := MakeContext(doc, config.Config{}, map[string]any{"h": 1})
	require.Equal(t, "from-doc", ctx["h"])
}

func TestMakeContext_InputsNotMutated(t *testing.T) {
	helpers := map[string]any{"h": 1}
	cfg := config.Config{"site": "S"}
	doc := &document.Document{Fields: map[string]any{"h": 2}}

	ctx := MakeContext(doc, cfg, helpers)
	ctx["config"].(map[string]any)["site"] = "mutated"
	require.Equal(t, 1, helpers["h"])
	require.Equal(t, "S", cfg["site"])
}

func TestGeneratePage_SelectsTemplateByLayoutAndExtension(t *testing.T) {
	renderer := &fakeRenderer{out: "rendered"}
	g := NewGenerator(Registry{".html": renderer}, ".html", nil)

	doc := &document.Document{
		SourcePath: "posts/a.md",
		Fields:     map[string]any{"layout": "post"},
	}

	page, err := g.GeneratePage(doc, config.Config{})
	require.NoError(t, err)
	require.Equal(t, "post.html", renderer.lastTemplateID)
	require.Equal(t, "posts/a", page.PagePath)
	require.Equal(t, "rendered", page.Content)
}

func TestGeneratePage_MissingLayout_ReturnsTypedErrorAndNoPage(t *testing.T) {
	g := NewGenerator(Registry{".html": &fakeRenderer{}}, ".html", nil)

	doc := &document.Document{SourcePath: "a.md", Fields: map[string]any{}}

	page, err := g.GeneratePage(doc, config.Config{})
	require.Nil(t, page)

	var mle *MissingLayoutError
	require.True(t, errors.As(err, &mle))
	require.Equal(t, "a.md", mle.SourcePath)
}

func TestGeneratePage_NoRendererForExtension_Errors(t *testing.T) {
	g := NewGenerator(Registry{}, ".html", nil)
	doc := &document.Document{SourcePath: "a.md", Fields: map[string]any{"layout": "post"}}

	_, err := g.GeneratePage(doc, config.Config{})
	require.Error(t, err)
}

func TestGeneratePage_RendererFailure_Propagates(t *testing.T) {
	renderer := &fakeRenderer{err: fmt.Errorf("template exploded")}
	g := NewGenerator(Registry{".html": renderer}, ".html", nil)
	doc := &document.Document{SourcePath: "a.md", Fields: map[string]any{"layout": "post"}}

	_, err := g.GeneratePage(doc, config.Config{})
	require.ErrorContains(t, err, "template exploded")
}

func TestGeneratePage_PaginatedListing_RenderedLikeAnyDocument(t *testing.T) {
	renderer := &fakeRenderer{out: "listing"}
	g := NewGenerator(Registry{".html": renderer}, ".html", nil)

	page := &document.Document{
		SourcePath: "blog/page/1",
		URL:        "/blog/page/1",
		Fields: map[string]any{
			"layout":    "list",
			"documents": []*document.Document{},
		},
	}

	out, err := g.GeneratePage(page, config.Config{})
	require.NoError(t, err)
	require.Equal(t, "list.html", renderer.lastTemplateID)
	require.Equal(t, "blog/page/1", out.PagePath)
}
