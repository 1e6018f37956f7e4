//go:build windows

package tree_installer

import (
	"path/filepath"

	"golang.org/x/sys/windows"
)

// osFileWriteAccess probes path for writability by creating and immediately
// discarding a hidden file in it.
func osFileWriteAccess(path string) bool {
	probe, err := windows.UTF16PtrFromString(filepath.Join(path, ".tree-setup-probe"))
	if err != nil {
		return false
	}
	handle, err := windows.CreateFile(
		probe,
		windows.GENERIC_WRITE,
		0,
		nil,
		windows.CREATE_NEW,
		windows.FILE_ATTRIBUTE_HIDDEN|windows.FILE_FLAG_DELETE_ON_CLOSE,
		0,
	)
	if err != nil {
		return false
	}
	windows.CloseHandle(handle)
	return true
}

// osDiskSpace returns the number of available bytes on the volume containing
// path, or -1 if it cannot be determined.
func osDiskSpace(path string) int64 {
	dir, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return -1
	}
	var free uint64
	if err := windows.GetDiskFreeSpaceEx(dir, &free, nil, nil); err != nil {
		return -1
	}
	return int64(free)
}
