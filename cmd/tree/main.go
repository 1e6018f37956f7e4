package main

import (
	"fmt"
	"os"

	"github.com/zhrsh/tree_installer"
)

const usage = "usage: tree || tree <DIR> [-a | --all]"

func main() { os.Exit(run(os.Args[1:])) }

func run(args []string) int {
	includeHidden := false
	// -a/--all is accepted as the last argument only, after the directory.
	if n := len(args); n > 0 && (args[n-1] == "-a" || args[n-1] == "--all") {
		includeHidden = true
		args = args[:n-1]
	}

	var dir string
	switch len(args) {
	case 0:
		wd, err := os.Getwd()
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return 1
		}
		dir = wd
	case 1:
		dir = args[0]
		if msg, ok := checkDirectory(dir); !ok {
			fmt.Fprintln(os.Stderr, msg)
			return 1
		}
	default:
		fmt.Println(usage)
		return 2
	}

	opts := tree_installer.TreeOptions{IncludeHidden: includeHidden}
	if err := tree_installer.PrintTree(os.Stdout, dir, opts); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

// checkDirectory validates that path names an accessible directory, and
// produces a readable message when it doesn't.
func checkDirectory(path string) (string, bool) {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return "", true
	case err == nil || os.IsNotExist(err):
		return fmt.Sprintf("error: the directory '%s' does not exist.", path), false
	case os.IsPermission(err):
		return fmt.Sprintf("error: you do not have the necessary permissions to access '%s'.", path), false
	default:
		return fmt.Sprintf("error checking directory:\n%v", err), false
	}
}
