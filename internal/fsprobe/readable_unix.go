//go:build !windows

package fsprobe

import "golang.org/x/sys/unix"

// Readable reports whether the current process may read the file at path.
// Uses access(2) with R_OK so the file is never opened.
func Readable(path string) bool {
	return unix.Access(path, unix.R_OK) == nil
}
