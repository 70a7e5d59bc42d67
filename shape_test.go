package sharedir

import (
	"errors"
	"path/filepath"
	"testing"
)

// ///////////////////////////////////////////////
// Value Tests
// ///////////////////////////////////////////////

func TestValueStringRoundTrip(t *testing.T) {
	raw := filepath.Join("proj", "share", "data.txt")

	tests := []struct {
		name string
		v    Value
	}{
		{"Raw", Raw(raw)},
		{"Dir", Dir{Path: raw}},
		{"File", File{Path: raw}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != raw {
				t.Errorf("String = %q, want %q", got, raw)
			}
		})
	}
}

func TestDirHelpers(t *testing.T) {
	d := Dir{Path: filepath.Join("proj", "share")}

	if got, want := d.Join("a", "b"), filepath.Join("proj", "share", "a", "b"); got != want {
		t.Errorf("Join = %s, want %s", got, want)
	}

	f := d.File("data.txt")
	if want := filepath.Join("proj", "share", "data.txt"); f.Path != want {
		t.Errorf("File.Path = %s, want %s", f.Path, want)
	}
}

func TestFileHelpers(t *testing.T) {
	f := File{Path: filepath.Join("proj", "share", "data.txt")}

	if got := f.Base(); got != "data.txt" {
		t.Errorf("Base = %s, want data.txt", got)
	}
	if got, want := f.Dir().Path, filepath.Join("proj", "share"); got != want {
		t.Errorf("Dir = %s, want %s", got, want)
	}
}

// ///////////////////////////////////////////////
// Wrap Tests
// ///////////////////////////////////////////////

func TestWrapConversions(t *testing.T) {
	raw := filepath.Join("proj", "share")

	tests := []struct {
		name  string
		shape Shape
		in    Value
		want  Value
	}{
		{"raw to dir", ShapeDir, Raw(raw), Dir{Path: raw}},
		{"raw to file", ShapeFile, Raw(raw), File{Path: raw}},
		{"dir to raw", ShapeString, Dir{Path: raw}, Raw(raw)},
		{"file to raw", ShapeString, File{Path: raw}, Raw(raw)},
		{"dir to file", ShapeFile, Dir{Path: raw}, File{Path: raw}},
		{"empty shape is raw", "", Dir{Path: raw}, Raw(raw)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Wrap(tt.shape, tt.in)
			if err != nil {
				t.Fatalf("Wrap error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Wrap = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestWrapIdempotent(t *testing.T) {
	raw := filepath.Join("proj", "share")

	tests := []struct {
		name  string
		shape Shape
		in    Value
	}{
		{"raw", ShapeString, Raw(raw)},
		{"dir", ShapeDir, Dir{Path: raw}},
		{"file", ShapeFile, File{Path: raw}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once, err := Wrap(tt.shape, tt.in)
			if err != nil {
				t.Fatalf("Wrap error: %v", err)
			}
			twice, err := Wrap(tt.shape, once)
			if err != nil {
				t.Fatalf("second Wrap error: %v", err)
			}
			if once != tt.in || twice != tt.in {
				t.Errorf("Wrap not idempotent: in=%#v once=%#v twice=%#v", tt.in, once, twice)
			}
		})
	}
}

func TestWrapUnknownShape(t *testing.T) {
	_, err := Wrap("pathlib", Raw("x"))
	if !errors.Is(err, ErrUnknownShape) {
		t.Errorf("error = %v, want ErrUnknownShape", err)
	}
}
