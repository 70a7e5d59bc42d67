package sharedir

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by accessor building and invocation. They are
// always wrapped with path or argument context; match with [errors.Is].
var (
	// ErrUnknownShape reports a return shape outside the supported set.
	// It is surfaced by [Build], never by a built accessor: a bad shape is
	// a configuration mistake and must fail before any accessor exists.
	ErrUnknownShape = errors.New("unknown return shape")

	// ErrNotAFile reports a resolved path that exists but is not a
	// regular file.
	ErrNotAFile = errors.New("not a regular file")

	// ErrPermissionDenied reports a resolved file the process may not read.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrBadArity reports an accessor invoked with the wrong number of
	// call-time arguments for its distribution-name binding.
	ErrBadArity = errors.New("wrong argument count")
)

// badArity builds an ErrBadArity with expected/actual context.
func badArity(want, got int) error {
	return fmt.Errorf("accessor takes %d argument(s), got %d: %w", want, got, ErrBadArity)
}
