//go:build linux || darwin

package tree_installer

import "golang.org/x/sys/unix"

// osFileWriteAccess reports whether the current user can write to path.
func osFileWriteAccess(path string) bool {
	return unix.Access(path, unix.W_OK) == nil
}

// osDiskSpace returns the number of available bytes on the filesystem
// containing path, or -1 if it cannot be determined.
func osDiskSpace(path string) int64 {
	fs := unix.Statfs_t{}
	if err := unix.Statfs(path, &fs); err != nil {
		return -1
	}
	return int64(fs.Bavail) * int64(fs.Bsize)
}
