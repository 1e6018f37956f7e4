// A commandline installer for the tree directory-listing utility.
//
// The library stages a copy of the tree script in the working directory,
// marks it executable, and moves it either into a directory given on the
// commandline or into the user's ~/bin folder. The tree renderer itself is
// part of the package as well, so the same module builds both the installed
// tool (cmd/tree) and its installer (cmd/tree-setup).
//
// See the README.md for usage info and customization instructions.
package tree_installer
