package sharedir

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"tools.zach/dev/sharedir/devroot"
	"tools.zach/dev/sharedir/installed"
)

// ///////////////////////////////////////////////
// Options
// ///////////////////////////////////////////////

// Options configures one accessor build. Zero-value fields mean "unset" and
// are filled from defaults by [Merge]; the merged result is treated as
// immutable for the lifetime of the built accessors.
type Options struct {
	// CallerFile is the absolute path of the source file requesting the
	// accessors. The development-root walk starts from its directory.
	// When empty, [Build] fills it in via runtime caller introspection.
	CallerFile string

	// ProjectDir is the shared-data subdirectory looked for under a
	// detected development root. Must be a relative path that stays inside
	// the root. Default "share".
	ProjectDir string

	// DistName optionally pins the accessors to one distribution. When
	// set, built accessors no longer take a distribution-name argument.
	DistName string

	// Shape selects the representation of resolved paths.
	// Default ShapeString.
	Shape Shape

	// Markers overrides the glob patterns used by the stock dev-checkout
	// heuristic. Ignored when Detect is set.
	Markers []string

	// Detect replaces the dev-checkout heuristic entirely.
	Detect devroot.Predicate

	// Lookup is the installed-data collaborator consulted in installed
	// mode. Default installed.XDG{}.
	Lookup installed.Lookup

	// Log receives resolution tracing. Default is a no-op logger.
	Log *slog.Logger
}

// DefaultOptions returns the process-independent built-in defaults.
func DefaultOptions() Options {
	return Options{
		ProjectDir: "share",
		Shape:      ShapeString,
	}
}

// Merge combines two option sets into a new one: fields set in overrides
// win, unset fields fall through to defaults. Neither argument is modified.
func Merge(defaults, overrides Options) Options {
	out := defaults
	if overrides.CallerFile != "" {
		out.CallerFile = overrides.CallerFile
	}
	if overrides.ProjectDir != "" {
		out.ProjectDir = overrides.ProjectDir
	}
	if overrides.DistName != "" {
		out.DistName = overrides.DistName
	}
	if overrides.Shape != "" {
		out.Shape = overrides.Shape
	}
	if len(overrides.Markers) > 0 {
		out.Markers = overrides.Markers
	}
	if overrides.Detect != nil {
		out.Detect = overrides.Detect
	}
	if overrides.Lookup != nil {
		out.Lookup = overrides.Lookup
	}
	if overrides.Log != nil {
		out.Log = overrides.Log
	}
	return out
}

// validate checks the merged options before any accessor is built.
// Shape and ProjectDir mistakes are configuration errors and must fail
// here, not at call time.
func (o Options) validate() error {
	if !o.Shape.valid() {
		return fmt.Errorf("shape %q: %w", string(o.Shape), ErrUnknownShape)
	}
	if o.CallerFile == "" {
		return fmt.Errorf("caller file is empty and could not be auto-detected")
	}
	return validateProjectDir(o.ProjectDir)
}

// validateProjectDir enforces the subdirectory invariants: relative,
// non-empty, and no traversal above the eventual root.
func validateProjectDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("project dir is empty")
	}
	if filepath.IsAbs(dir) {
		return fmt.Errorf("project dir %q must be relative", dir)
	}
	clean := filepath.Clean(dir)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("project dir %q escapes the project root", dir)
	}
	return nil
}

// ///////////////////////////////////////////////
// Defaults File
// ///////////////////////////////////////////////

// defaultsFile mirrors the TOML layout of a process-wide defaults file:
//
//	projectdir = "share"
//	distname = "MyDist"
//	shape = "dir"
//	markers = [".git", "go.mod"]
type defaultsFile struct {
	ProjectDir string   `toml:"projectdir"`
	DistName   string   `toml:"distname"`
	Shape      string   `toml:"shape"`
	Markers    []string `toml:"markers"`
}

// LoadDefaults reads process-wide option defaults from a TOML file and
// returns them merged over [DefaultOptions]. A missing file is not an
// error — the built-in defaults are returned unchanged, so hosts can ship
// an optional sharedir.toml.
func LoadDefaults(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultOptions(), nil
		}
		return Options{}, fmt.Errorf("read defaults file: %w", err)
	}

	var df defaultsFile
	if err := toml.Unmarshal(data, &df); err != nil {
		return Options{}, fmt.Errorf("parse defaults file %s: %w", path, err)
	}

	opts := Merge(DefaultOptions(), Options{
		ProjectDir: df.ProjectDir,
		DistName:   df.DistName,
		Shape:      Shape(df.Shape),
		Markers:    df.Markers,
	})

	if !opts.Shape.valid() {
		return Options{}, fmt.Errorf("defaults file %s: shape %q: %w", path, df.Shape, ErrUnknownShape)
	}
	if err := validateProjectDir(opts.ProjectDir); err != nil {
		return Options{}, fmt.Errorf("defaults file %s: %w", path, err)
	}
	return opts, nil
}
