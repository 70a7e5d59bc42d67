// Package sharedir resolves the shared-data directory of a distribution in
// one of two modes, decided once at accessor-build time:
//
//   - dev mode: the requesting source file sits inside an uninstalled
//     development checkout that has a shared-data subdirectory (default
//     "share"). Accessors resolve into the checkout.
//   - installed mode: no such checkout applies. Accessors delegate to an
//     [installed.Lookup] collaborator keyed by distribution name.
//
// Callers build a pair of accessors once — typically in a package variable
// or init — and invoke them any number of times afterward:
//
//	dir, file, err := sharedir.Build(sharedir.Options{DistName: "mydist"})
//	...
//	v, err := dir()               // data directory
//	v, ok, err := file("db.sqlite") // file inside it
package sharedir

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"

	"tools.zach/dev/sharedir/devroot"
	"tools.zach/dev/sharedir/installed"
	"tools.zach/dev/sharedir/internal/fsprobe"
	"tools.zach/dev/sharedir/internal/logger"
)

// ///////////////////////////////////////////////
// Accessors
// ///////////////////////////////////////////////

// DirAccessor resolves the shared-data directory.
//
// Installed mode: takes the distribution name as its one argument, or zero
// arguments when Options.DistName pre-bound one.
//
// Dev mode: always returns the checkout's shared-data directory and ignores
// any arguments — a development checkout has exactly one project root, so
// call-time distribution names cannot change the answer. This asymmetry with
// installed mode is deliberate and long-standing.
type DirAccessor func(args ...string) (Value, error)

// FileAccessor resolves a file inside the shared-data directory.
//
// Takes (distName, relFile), or just (relFile) when Options.DistName
// pre-bound the distribution. In dev mode a missing file is absence — the
// bool result is false and the error nil — while an existing path that is
// not a readable regular file is an error (ErrNotAFile, ErrPermissionDenied).
type FileAccessor func(args ...string) (Value, bool, error)

// ///////////////////////////////////////////////
// Build
// ///////////////////////////////////////////////

// Build resolves one configuration into its accessor pair.
//
// The development-root walk runs exactly once, here; the returned closures
// capture only immutable values and are safe for concurrent use. Options are
// merged over [DefaultOptions]; hosts with a process-wide defaults file
// merge it in first:
//
//	def, _ := sharedir.LoadDefaults("sharedir.toml")
//	dir, file, err := sharedir.Build(sharedir.Merge(def, overrides))
//
// Configuration mistakes (unknown shape, bad project dir) fail here rather
// than at call time.
func Build(opts Options) (DirAccessor, FileAccessor, error) {
	opts = Merge(DefaultOptions(), opts)

	if opts.CallerFile == "" {
		if _, file, _, ok := runtime.Caller(1); ok {
			opts.CallerFile = file
		}
	}
	if err := opts.validate(); err != nil {
		return nil, nil, fmt.Errorf("sharedir: %w", err)
	}

	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	lookup := opts.Lookup
	if lookup == nil {
		lookup = installed.XDG{}
	}
	pred := opts.Detect
	if pred == nil {
		pred = devroot.Markers(opts.Markers...)
	}

	if dir, ok := devShareDir(opts, pred, log); ok {
		return buildDev(opts, dir, log)
	}
	return buildInstalled(opts, lookup, log)
}

// devShareDir runs the dev-root walk for the configuration and returns the
// checkout's shared-data directory when both the root and the subdirectory
// exist. Roots are recomputed per build, never cached across configurations.
func devShareDir(opts Options, pred devroot.Predicate, log *slog.Logger) (string, bool) {
	det := devroot.New(pred, log)
	root, ok := det.Find(filepath.Dir(opts.CallerFile))
	if !ok {
		return "", false
	}
	candidate := filepath.Join(root, opts.ProjectDir)
	if !fsprobe.IsDir(candidate) {
		log.Debug("development root has no shared-data subdirectory",
			"root", root, "projectdir", opts.ProjectDir)
		return "", false
	}
	return candidate, true
}

// ///////////////////////////////////////////////
// Dev Mode
// ///////////////////////////////////////////////

// buildDev binds both accessors to a confirmed checkout share directory.
func buildDev(opts Options, dir string, log *slog.Logger) (DirAccessor, FileAccessor, error) {
	log.Info("shared data resolved to development checkout", "dir", dir)

	bound := opts.Shape.wrap(dir)
	da := func(args ...string) (Value, error) {
		// Call-time arguments, distribution names included, cannot
		// change the answer inside a checkout.
		return bound, nil
	}

	preBound := opts.DistName != ""
	shape := opts.Shape
	fa := func(args ...string) (Value, bool, error) {
		name, err := fileArg(preBound, args)
		if err != nil {
			return nil, false, err
		}
		path := filepath.Join(dir, name)
		info, ok := fsprobe.Stat(path)
		if !ok {
			return nil, false, nil
		}
		if !info.Mode().IsRegular() {
			return nil, false, fmt.Errorf("%s: %w", path, ErrNotAFile)
		}
		if !fsprobe.Readable(path) {
			return nil, false, fmt.Errorf("%s: %w", path, ErrPermissionDenied)
		}
		return shape.wrap(path), true, nil
	}
	return da, fa, nil
}

// ///////////////////////////////////////////////
// Installed Mode
// ///////////////////////////////////////////////

// buildInstalled binds both accessors to the installed-lookup collaborator,
// pre-binding the distribution name when the configuration pinned one.
func buildInstalled(opts Options, lookup installed.Lookup, log *slog.Logger) (DirAccessor, FileAccessor, error) {
	log.Info("shared data resolved to installed lookup", "distname", opts.DistName)

	preBound := opts.DistName != ""
	bound := opts.DistName
	shape := opts.Shape

	da := func(args ...string) (Value, error) {
		dist := bound
		if preBound {
			if len(args) != 0 {
				return nil, badArity(0, len(args))
			}
		} else {
			if len(args) != 1 {
				return nil, badArity(1, len(args))
			}
			dist = args[0]
		}
		dir, err := lookup.Dir(dist)
		if err != nil {
			return nil, err
		}
		return shape.wrap(dir), nil
	}

	fa := func(args ...string) (Value, bool, error) {
		name, err := fileArg(preBound, args)
		if err != nil {
			return nil, false, err
		}
		dist := bound
		if !preBound {
			dist = args[0]
		}
		path, err := lookup.File(dist, name)
		if err != nil {
			return nil, false, err
		}
		return shape.wrap(path), true, nil
	}
	return da, fa, nil
}

// fileArg extracts the relative file name from a file accessor's call-time
// arguments: (relFile) when the distribution is pre-bound, (distName,
// relFile) otherwise.
func fileArg(preBound bool, args []string) (string, error) {
	if preBound {
		if len(args) != 1 {
			return "", badArity(1, len(args))
		}
		return args[0], nil
	}
	if len(args) != 2 {
		return "", badArity(2, len(args))
	}
	return args[1], nil
}
