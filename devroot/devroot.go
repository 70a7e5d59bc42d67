// Package devroot locates the root of an uninstalled development checkout.
//
// A detector walks upward from a starting path and returns the nearest
// ancestor directory that satisfies a heuristic predicate. The predicate is
// pluggable; the stock heuristic recognizes common project markers
// (version-control directories, build manifests, packaging metadata) by
// matching directory entries against glob patterns.
package devroot

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"tools.zach/dev/sharedir/internal/logger"
)

// ///////////////////////////////////////////////
// Predicate
// ///////////////////////////////////////////////

// Predicate reports whether dir looks like the root of a development
// checkout. Implementations must be read-only and must not panic on
// unreadable directories.
type Predicate func(dir string) bool

// DefaultMarkers is the stock set of glob patterns recognized by [Markers].
// A directory containing an entry matching any pattern is treated as a
// project root.
var DefaultMarkers = []string{
	".git",
	".hg",
	".svn",
	"go.mod",
	"package.json",
	"pyproject.toml",
	"Cargo.toml",
	"dist.ini",
	"META.*",
}

// Markers returns a Predicate that reports true when the directory contains
// an entry whose name matches any of the given glob patterns. Patterns use
// doublestar syntax, though markers are matched against bare entry names so
// single-star patterns like "META.*" are the common case. With no patterns,
// [DefaultMarkers] is used.
//
// Unreadable directories match nothing.
func Markers(patterns ...string) Predicate {
	if len(patterns) == 0 {
		patterns = DefaultMarkers
	}
	return func(dir string) bool {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return false
		}
		for _, e := range entries {
			for _, pat := range patterns {
				ok, err := doublestar.Match(pat, e.Name())
				if err != nil {
					continue
				}
				if ok {
					return true
				}
			}
		}
		return false
	}
}

// MarkerFile returns a Predicate that reports true when dir contains an
// entry with exactly the given name. Useful for projects with a single
// authoritative root marker.
func MarkerFile(name string) Predicate {
	return func(dir string) bool {
		_, err := os.Lstat(filepath.Join(dir, name))
		return err == nil
	}
}

// Any combines predicates; the result reports true when any of them does.
func Any(preds ...Predicate) Predicate {
	return func(dir string) bool {
		for _, p := range preds {
			if p(dir) {
				return true
			}
		}
		return false
	}
}

// ///////////////////////////////////////////////
// Detector
// ///////////////////////////////////////////////

// Detector walks ancestor directories looking for a development root.
type Detector struct {
	// pred is the root heuristic applied at each level of the walk.
	pred Predicate
	// log receives trace output for each probed directory.
	log *slog.Logger
}

// New creates a Detector with the given predicate and logger.
// A nil predicate falls back to Markers(); a nil logger disables tracing.
func New(pred Predicate, log *slog.Logger) *Detector {
	if pred == nil {
		pred = Markers()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Detector{pred: pred, log: log}
}

// Find walks upward from start and returns the nearest ancestor directory
// (start included, when it is a directory) satisfying the detector's
// predicate. The walk ends at the filesystem root; reaching it without a
// match returns ("", false). Unreadable directories along the way are
// treated as non-matching, never as errors.
func (d *Detector) Find(start string) (string, bool) {
	abs, err := filepath.Abs(start)
	if err != nil {
		d.log.Warn("cannot absolutize start path", "start", start, "error", err)
		return "", false
	}

	dir := filepath.Clean(abs)
	// Start from the containing directory when handed a file.
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		if d.pred(dir) {
			d.log.Debug("development root found", "root", dir)
			return dir, true
		}
		logger.Trace(d.log, "no root marker", "dir", dir)

		parent := filepath.Dir(dir)
		if parent == dir {
			d.log.Debug("walk reached filesystem root without a match", "start", abs)
			return "", false
		}
		dir = parent
	}
}

// Find is a convenience wrapper using the stock marker predicate and no
// logging. Equivalent to New(nil, nil).Find(start).
func Find(start string) (string, bool) {
	return New(nil, nil).Find(start)
}
