//go:build windows

package fsprobe

import "os"

// Readable reports whether the current process may read the file at path.
// Windows has no access(2); opening for read is the reliable probe.
func Readable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
