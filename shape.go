package sharedir

import (
	"fmt"
	"path/filepath"
)

// ///////////////////////////////////////////////
// Shapes
// ///////////////////////////////////////////////

// Shape selects the representation every resolved path is normalized into
// before being handed back from an accessor.
type Shape string

// Supported shapes. The zero value is treated as ShapeString.
const (
	// ShapeString returns plain path strings wrapped as [Raw].
	ShapeString Shape = "string"
	// ShapeDir returns directory-flavored [Dir] values.
	ShapeDir Shape = "dir"
	// ShapeFile returns file-flavored [File] values.
	ShapeFile Shape = "file"
)

// valid reports whether s is a supported shape. The empty shape is valid
// and means ShapeString.
func (s Shape) valid() bool {
	switch s {
	case "", ShapeString, ShapeDir, ShapeFile:
		return true
	}
	return false
}

// wrap converts a raw path into the shape's representation. Only called
// after the shape passed validation in [Build].
func (s Shape) wrap(raw string) Value {
	switch s {
	case ShapeDir:
		return Dir{Path: raw}
	case ShapeFile:
		return File{Path: raw}
	default:
		return Raw(raw)
	}
}

// ///////////////////////////////////////////////
// Values
// ///////////////////////////////////////////////

// Value is a resolved path in the caller's chosen representation.
// String always round-trips the underlying path verbatim.
type Value interface {
	String() string
}

// Raw is a plain path string.
type Raw string

// String returns the path.
func (r Raw) String() string { return string(r) }

// Dir is a directory-flavored path value.
type Dir struct {
	Path string
}

// String returns the directory path.
func (d Dir) String() string { return d.Path }

// Join returns the path of elem joined under the directory.
func (d Dir) Join(elem ...string) string {
	return filepath.Join(append([]string{d.Path}, elem...)...)
}

// File returns a file-flavored value for name inside the directory.
func (d Dir) File(name string) File {
	return File{Path: filepath.Join(d.Path, name)}
}

// File is a file-flavored path value.
type File struct {
	Path string
}

// String returns the file path.
func (f File) String() string { return f.Path }

// Dir returns the containing directory as a directory-flavored value.
func (f File) Dir() Dir { return Dir{Path: filepath.Dir(f.Path)} }

// Base returns the last element of the file path.
func (f File) Base() string { return filepath.Base(f.Path) }

// ///////////////////////////////////////////////
// Wrapping
// ///////////////////////////////////////////////

// Wrap normalizes v into the representation selected by shape. Wrapping is
// idempotent: a value already in the target representation is returned
// unchanged. An unsupported shape returns ErrUnknownShape.
func Wrap(shape Shape, v Value) (Value, error) {
	if !shape.valid() {
		return nil, fmt.Errorf("shape %q: %w", string(shape), ErrUnknownShape)
	}
	switch shape {
	case ShapeDir:
		if d, ok := v.(Dir); ok {
			return d, nil
		}
	case ShapeFile:
		if f, ok := v.(File); ok {
			return f, nil
		}
	default:
		if r, ok := v.(Raw); ok {
			return r, nil
		}
	}
	return shape.wrap(v.String()), nil
}
