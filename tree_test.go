package tree_installer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeTreeFixture builds:
//
//	root/
//	├── .hidden
//	├── .shadow/
//	│   └── inside
//	├── alpha.txt
//	└── sub/
//	    └── beta.txt
func makeTreeFixture(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "root")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".shadow"), 0755))
	for _, file := range []string{
		"alpha.txt",
		".hidden",
		filepath.Join("sub", "beta.txt"),
		filepath.Join(".shadow", "inside"),
	} {
		require.NoError(t, os.WriteFile(filepath.Join(root, file), []byte("x"), 0644))
	}
	return root
}

func TestPrintTreeSkipsHiddenEntries(t *testing.T) {
	root := makeTreeFixture(t)
	var out strings.Builder

	require.NoError(t, PrintTree(&out, root, TreeOptions{}))

	expected := strings.Join([]string{
		"root/",
		"├── alpha.txt",
		"└── sub/",
		"    └── beta.txt",
		"",
	}, "\n")
	assert.Equal(t, expected, out.String())
}

func TestPrintTreeIncludesHiddenEntries(t *testing.T) {
	root := makeTreeFixture(t)
	var out strings.Builder

	require.NoError(t, PrintTree(&out, root, TreeOptions{IncludeHidden: true}))

	expected := strings.Join([]string{
		"root/",
		"├── .hidden",
		"├── .shadow/",
		"│   └── inside",
		"├── alpha.txt",
		"└── sub/",
		"    └── beta.txt",
		"",
	}, "\n")
	assert.Equal(t, expected, out.String())
}

func TestPrintTreeDepthLimit(t *testing.T) {
	root := filepath.Join(t.TempDir(), "deep")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "b", "leaf"), []byte("x"), 0644))
	var out strings.Builder

	require.NoError(t, PrintTree(&out, root, TreeOptions{MaxDepth: 1}))

	expected := strings.Join([]string{
		"deep/",
		"└── a/",
		"    └── b/",
		"",
	}, "\n")
	assert.Equal(t, expected, out.String(), "entries below the depth limit are cut off")
}

func TestPrintTreeEmptyDirectory(t *testing.T) {
	root := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.Mkdir(root, 0755))
	var out strings.Builder

	require.NoError(t, PrintTree(&out, root, TreeOptions{}))

	assert.Equal(t, "empty/\n", out.String())
}

func TestPrintTreeMissingDirectory(t *testing.T) {
	var out strings.Builder
	err := PrintTree(&out, filepath.Join(t.TempDir(), "nope"), TreeOptions{})
	assert.Error(t, err)
}
