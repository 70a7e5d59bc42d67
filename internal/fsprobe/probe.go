// Package fsprobe provides read-only filesystem metadata probes used during
// path resolution: existence, directory/regular-file checks, and a
// readability test that does not require opening the file on unix.
package fsprobe

import (
	"io/fs"
	"os"
)

// IsDir reports whether path exists and is a directory.
// Stat failures of any kind (including permission errors on an ancestor)
// are reported as "not a directory".
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Stat returns the file info for path, or (nil, false) when the path does
// not exist or cannot be probed.
func Stat(path string) (fs.FileInfo, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	return info, true
}
