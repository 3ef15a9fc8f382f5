package urlpath

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDerive_PlainFile_StripsExtension(t *testing.T) {
	require.Equal(t, "/about", Derive("about.md"))
}

func TestDerive_NestedFile_KeepsDirectories(t *testing.T) {
	require.Equal(t, "/posts/2026/hello", Derive("posts/2026/hello.md"))
}

func TestDerive_RootIndex_NormalizesToRoot(t *testing.T) {
	require.Equal(t, "/", Derive("index.md"))
}

func TestDerive_NestedIndex_DropsIndexSegment(t *testing.T) {
	require.Equal(t, "/posts", Derive("posts/index.md"))
}

func TestDerive_IndexEquivalence_MatchesParentPath(t *testing.T) {
	// /x/index.<ext> derives the same URL as /x.<ext>.
	require.Equal(t, Derive("docs/guide.md"), Derive("docs/guide/index.md"))
}

func TestDerive_NoExtension_StillRooted(t *testing.T) {
	require.Equal(t, "/readme", Derive("readme"))
}

func TestDerive_IndexPrefixName_NotCollapsed(t *testing.T) {
	// Only the exact "index" segment collapses, not names containing it.
	require.Equal(t, "/posts/reindex", Derive("posts/reindex.md"))
}
