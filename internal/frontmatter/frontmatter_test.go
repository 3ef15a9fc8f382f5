package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\nlayout: post\n---\n# Title\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("layout: post\n"), fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, _, had, err := Split([]byte("---\nlayout: post\n# Title\n"))
	require.Error(t, err)
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\r\nlayout: post\r\n---\r\n# Title\r\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("layout: post\r\n"), fm)
	require.Equal(t, []byte("# Title\r\n"), body)
}

func TestSplit_EmptyFrontmatterBlock_SplitsAsHadWithEmptyFrontmatter(t *testing.T) {
	fm, body, had, err := Split([]byte("---\n---\n# Title\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestParse_ValidYAML_ReturnsFieldsAndBody(t *testing.T) {
	fields, body, err := Parse([]byte("---\ntitle: Hi\ntags:\n  - go\n---\nBody\n"))
	require.NoError(t, err)
	require.Equal(t, "Hi", fields["title"])
	require.Equal(t, []any{"go"}, fields["tags"])
	require.Equal(t, []byte("Body\n"), body)
}

func TestParse_NoFrontmatter_ReturnsEmptyMap(t *testing.T) {
	fields, body, err := Parse([]byte("just text\n"))
	require.NoError(t, err)
	require.Empty(t, fields)
	require.Equal(t, []byte("just text\n"), body)
}

func TestParse_InvalidYAML_ReturnsError(t *testing.T) {
	_, _, err := Parse([]byte("---\n: not yaml\n---\nBody\n"))
	require.Error(t, err)
}
