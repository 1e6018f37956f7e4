package tree_installer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxDepth is how far down PrintTree recurses unless told otherwise.
const DefaultMaxDepth = 10

const (
	branchMid  = "├── "
	branchLast = "└── "
	indentMid  = "│   "
	indentLast = "    "
)

// TreeOptions control the tree rendering.
type TreeOptions struct {
	// IncludeHidden lists dot-entries as well. Off by default.
	IncludeHidden bool
	// MaxDepth limits the recursion depth. Zero means DefaultMaxDepth.
	MaxDepth int
}

// PrintTree writes the structure of root and its subdirectories to w in a
// tree-esque format, one entry per line, directories suffixed with a slash.
// The first line is the base name of the listed directory.
func PrintTree(w io.Writer, root string, opts TreeOptions) error {
	if opts.MaxDepth == 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, filepath.Base(abs)+"/")
	return printDirectory(w, root, "", opts, 0)
}

// printDirectory renders one directory level and recurses into
// subdirectories, extending the line-drawing prefix as it descends.
func printDirectory(w io.Writer, dir, prefix string, opts TreeOptions, depth int) error {
	if depth > opts.MaxDepth {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	if !opts.IncludeHidden {
		visible := make([]os.DirEntry, 0, len(entries))
		for _, entry := range entries {
			if !strings.HasPrefix(entry.Name(), ".") {
				visible = append(visible, entry)
			}
		}
		entries = visible
	}
	for index, entry := range entries {
		branch, indent := branchMid, indentMid
		if index == len(entries)-1 {
			branch, indent = branchLast, indentLast
		}
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		fmt.Fprintln(w, prefix+branch+name)
		if entry.IsDir() {
			err := printDirectory(w, filepath.Join(dir, entry.Name()), prefix+indent, opts, depth+1)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
