package main

import (
	"os"

	"github.com/zhrsh/tree_installer"
)

func main() {
	os.Exit(tree_installer.Run())
}
