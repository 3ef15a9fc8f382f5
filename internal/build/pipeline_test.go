package build

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Happy-Ferret/fledermaus/internal/config"
	"github.com/Happy-Ferret/fledermaus/internal/site"
	"github.com/stretchr/testify/require"
)

func writeProjectFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func scaffoldSite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeProjectFile(t, root, "config/base.yml", "siteName: Fixture\n")
	writeProjectFile(t, root, "layouts/post.html", "<h1>{{ .title }}</h1>{{ .content }}")
	writeProjectFile(t, root, "layouts/page.html", "{{ .config.siteName }}: {{ .content }}")
	writeProjectFile(t, root, "layouts/list.html",
		"{{ range .documents }}<a href=\"{{ .URL }}\"></a>{{ end }}")
	writeProjectFile(t, root, "content/index.md", "---\nlayout: page\n---\nwelcome\n")
	writeProjectFile(t, root, "content/posts/a.md",
		"---\nlayout: post\ntitle: A\ndate: 2026-01-02\ntags: [go]\n---\nfirst\n")
	writeProjectFile(t, root, "content/posts/b.md",
		"---\nlayout: post\ntitle: B\ndate: 2026-01-01\ntags: [go, web]\n---\nsecond\n")

	return root
}

func TestRun_BuildsDocumentPages(t *testing.T) {
	root := scaffoldSite(t)
	p := New(root, config.DefaultProject())

	report, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, report.DocumentsParsed)
	require.Equal(t, report.PagesGenerated, report.PagesWritten)

	raw, err := os.ReadFile(filepath.Join(root, "public", "posts", "a"))
	require.NoError(t, err)
	require.Contains(t, string(raw), "<h1>A</h1>")

	home, err := os.ReadFile(filepath.Join(root, "public", "index"))
	require.NoError(t, err)
	require.Contains(t, string(home), "Fixture:")
}

func TestRun_CollectionProducesPaginatedListings(t *testing.T) {
	root := scaffoldSite(t)
	project := config.DefaultProject()
	project.Collections = []config.Collection{{
		Name:     "archive",
		Filter:   map[string]any{"layout": "post"},
		Order:    []string{"-date"},
		Paginate: &config.PaginateSpec{URLPrefix: "/blog", PerPage: 1, Layout: "list"},
	}}

	report, err := New(root, project).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, report.ListingsCreated)

	page1, err := os.ReadFile(filepath.Join(root, "public", "blog", "page", "1"))
	require.NoError(t, err)
	// Descending by date: a.md (2026-01-02) on the first page.
	require.Contains(t, string(page1), `href="/posts/a"`)
}

func TestRun_MultiLanguage_PagesPrefixedPerLanguage(t *testing.T) {
	root := scaffoldSite(t)
	writeProjectFile(t, root, "config/en.yml", "title: Hi\n")
	writeProjectFile(t, root, "config/de.yml", "title: Hallo\n")

	report, err := New(root, config.DefaultProject()).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"de", "en"}, report.Languages)

	_, err = os.Stat(filepath.Join(root, "public", "en", "posts", "a"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "public", "de", "posts", "a"))
	require.NoError(t, err)
}

func TestRun_DocumentWithoutLayout_AbortsBuild(t *testing.T) {
	root := scaffoldSite(t)
	writeProjectFile(t, root, "content/naked.md", "no frontmatter here\n")

	_, err := New(root, config.DefaultProject()).Run(context.Background())
	require.Error(t, err)

	var mle *site.MissingLayoutError
	require.True(t, errors.As(err, &mle))
	require.Equal(t, "naked.md", mle.SourcePath)
}

func TestRun_CanceledContext_Aborts(t *testing.T) {
	root := scaffoldSite(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(root, config.DefaultProject()).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_ReportCarriesStageDurations(t *testing.T) {
	root := scaffoldSite(t)

	report, err := New(root, config.DefaultProject()).Run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, report.BuildID)
	require.Contains(t, report.StageDurations, "load-sources")
	require.Contains(t, report.StageDurations, "write-pages")
}
