package sharedir

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"tools.zach/dev/sharedir/installed"
)

// ///////////////////////////////////////////////
// Merge Tests
// ///////////////////////////////////////////////

func TestMergePrecedence(t *testing.T) {
	defaults := Options{
		CallerFile: "/def/caller.go",
		ProjectDir: "share",
		DistName:   "DefDist",
		Shape:      ShapeString,
		Markers:    []string{".git"},
	}

	t.Run("overrides win", func(t *testing.T) {
		got := Merge(defaults, Options{
			CallerFile: "/over/caller.go",
			ProjectDir: "assets",
			DistName:   "OverDist",
			Shape:      ShapeDir,
			Markers:    []string{"go.mod"},
		})
		if got.CallerFile != "/over/caller.go" || got.ProjectDir != "assets" ||
			got.DistName != "OverDist" || got.Shape != ShapeDir {
			t.Errorf("merged = %+v, overrides did not win", got)
		}
		if len(got.Markers) != 1 || got.Markers[0] != "go.mod" {
			t.Errorf("markers = %v, want [go.mod]", got.Markers)
		}
	})

	t.Run("unset fields fall through", func(t *testing.T) {
		got := Merge(defaults, Options{ProjectDir: "assets"})
		if got.ProjectDir != "assets" {
			t.Errorf("ProjectDir = %s, want assets", got.ProjectDir)
		}
		if got.CallerFile != "/def/caller.go" || got.DistName != "DefDist" || got.Shape != ShapeString {
			t.Errorf("merged = %+v, defaults did not fall through", got)
		}
	})

	t.Run("collaborators fall through", func(t *testing.T) {
		reg := installed.Static{}
		log := slog.Default()
		base := Merge(Options{Lookup: reg, Log: log}, Options{})
		if base.Lookup == nil || base.Log == nil {
			t.Error("collaborator defaults were lost")
		}
	})

	t.Run("inputs are not modified", func(t *testing.T) {
		before := defaults
		_ = Merge(defaults, Options{ProjectDir: "assets"})
		if defaults.ProjectDir != before.ProjectDir || defaults.DistName != before.DistName {
			t.Error("Merge modified its defaults argument")
		}
	})
}

// ///////////////////////////////////////////////
// Validation Tests
// ///////////////////////////////////////////////

func TestValidateProjectDir(t *testing.T) {
	tests := []struct {
		name    string
		dir     string
		wantErr bool
	}{
		{"simple", "share", false},
		{"nested", filepath.Join("data", "share"), false},
		{"redundant but inside", filepath.Join("a", "..", "share"), false},
		{"empty", "", true},
		{"absolute", string(filepath.Separator) + "share", true},
		{"dot", ".", true},
		{"parent", "..", true},
		{"escapes root", filepath.Join("..", "share"), true},
		{"escapes after clean", filepath.Join("a", "..", "..", "share"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateProjectDir(tt.dir)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateProjectDir(%q) error = %v, wantErr %v", tt.dir, err, tt.wantErr)
			}
		})
	}
}

// ///////////////////////////////////////////////
// Defaults File Tests
// ///////////////////////////////////////////////

func TestLoadDefaults(t *testing.T) {
	t.Run("missing file returns built-ins", func(t *testing.T) {
		got, err := LoadDefaults(filepath.Join(t.TempDir(), "absent.toml"))
		if err != nil {
			t.Fatalf("LoadDefaults error: %v", err)
		}
		if got.ProjectDir != "share" || got.Shape != ShapeString {
			t.Errorf("defaults = %+v, want built-ins", got)
		}
	})

	t.Run("file values merge over built-ins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sharedir.toml")
		content := `
distname = "MyDist"
shape = "dir"
markers = [".git", "ROOT"]
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		got, err := LoadDefaults(path)
		if err != nil {
			t.Fatalf("LoadDefaults error: %v", err)
		}
		if got.DistName != "MyDist" || got.Shape != ShapeDir {
			t.Errorf("defaults = %+v", got)
		}
		// projectdir was not set in the file; the built-in survives.
		if got.ProjectDir != "share" {
			t.Errorf("ProjectDir = %s, want share", got.ProjectDir)
		}
		if len(got.Markers) != 2 {
			t.Errorf("Markers = %v, want two patterns", got.Markers)
		}
	})

	t.Run("unknown shape is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sharedir.toml")
		if err := os.WriteFile(path, []byte(`shape = "pathlib"`), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadDefaults(path)
		if !errors.Is(err, ErrUnknownShape) {
			t.Errorf("error = %v, want ErrUnknownShape", err)
		}
	})

	t.Run("bad project dir is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sharedir.toml")
		if err := os.WriteFile(path, []byte(`projectdir = ".."`), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadDefaults(path); err == nil {
			t.Error("LoadDefaults accepted a traversing project dir")
		}
	})

	t.Run("malformed TOML is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sharedir.toml")
		if err := os.WriteFile(path, []byte(`projectdir = [`), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadDefaults(path); err == nil {
			t.Error("LoadDefaults accepted malformed TOML")
		}
	})
}
