// Package installed resolves shared-data directories for installed
// distributions. It is the fallback consulted when no development checkout
// applies: callers hand it a distribution name and get back the directory
// (or a file inside it) that the host's packaging conventions installed the
// distribution's data into.
//
// The resolver core only depends on the [Lookup] interface; hosts with their
// own packaging registry implement it directly. [XDG] is the stock
// implementation for conventional unix-style installs, and [Static] backs
// tests and embedded layouts.
package installed

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ///////////////////////////////////////////////
// Lookup
// ///////////////////////////////////////////////

// Lookup resolves installed shared-data paths by distribution name.
type Lookup interface {
	// Dir returns the installed data directory for the distribution.
	// A descriptive error is returned when the distribution is unknown.
	Dir(dist string) (string, error)

	// File returns the path of rel inside the distribution's data
	// directory. A descriptive error is returned when the distribution or
	// the file is unknown.
	File(dist, rel string) (string, error)
}

// ///////////////////////////////////////////////
// XDG
// ///////////////////////////////////////////////

// XDG looks up installed data directories following the XDG base directory
// convention: $XDG_DATA_HOME (default ~/.local/share) first, then each entry
// of $XDG_DATA_DIRS (default /usr/local/share:/usr/share), returning the
// first base that contains a directory named after the distribution.
type XDG struct {
	// Env overrides environment lookup; nil uses os.Getenv.
	// Keyed by variable name, exists for tests.
	Env func(key string) string
}

// getenv resolves an environment variable through the override or os.Getenv.
func (x XDG) getenv(key string) string {
	if x.Env != nil {
		return x.Env(key)
	}
	return os.Getenv(key)
}

// bases returns the ordered list of data base directories to search.
func (x XDG) bases() []string {
	var bases []string

	if home := x.getenv("XDG_DATA_HOME"); home != "" {
		bases = append(bases, home)
	} else if userHome, err := os.UserHomeDir(); err == nil {
		bases = append(bases, filepath.Join(userHome, ".local", "share"))
	}

	// The XDG spec separates list entries with ':' regardless of
	// platform; os.PathListSeparator would mis-split the built-in
	// default on Windows.
	dirs := x.getenv("XDG_DATA_DIRS")
	if dirs == "" {
		dirs = "/usr/local/share:/usr/share"
	}
	for _, d := range strings.Split(dirs, ":") {
		if d != "" {
			bases = append(bases, d)
		}
	}
	return bases
}

// Dir returns the first existing <base>/<dist> directory across the XDG
// data bases.
func (x XDG) Dir(dist string) (string, error) {
	if dist == "" {
		return "", fmt.Errorf("installed lookup: empty distribution name")
	}
	bases := x.bases()
	for _, base := range bases {
		candidate := filepath.Join(base, dist)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("installed lookup: no data directory for distribution %q in %s",
		dist, strings.Join(bases, ":"))
}

// File resolves rel inside the distribution's data directory and requires
// it to exist as a regular file.
func (x XDG) File(dist, rel string) (string, error) {
	dir, err := x.Dir(dist)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, rel)
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("installed lookup: distribution %q has no file %q: %w", dist, rel, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("installed lookup: %s exists but is not a regular file", path)
	}
	return path, nil
}

// ///////////////////////////////////////////////
// Static
// ///////////////////////////////////////////////

// Static is a map-backed Lookup: distribution name to data directory.
// Intended for tests and for hosts that register data locations themselves.
type Static map[string]string

// Dir returns the registered directory for dist.
func (s Static) Dir(dist string) (string, error) {
	dir, ok := s[dist]
	if !ok {
		return "", fmt.Errorf("installed lookup: unknown distribution %q", dist)
	}
	return dir, nil
}

// File joins rel onto the registered directory for dist. Unlike [XDG.File]
// it does not require the file to exist; a Static registry is authoritative.
func (s Static) File(dist, rel string) (string, error) {
	dir, err := s.Dir(dist)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, rel), nil
}
