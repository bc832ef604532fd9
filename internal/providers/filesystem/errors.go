package filesystem

import (
	"errors"
	"fmt"
)

// Error kinds. Returned errors match these with errors.Is.
var (
	ErrNotFound         = errors.New("path not found")
	ErrIsADirectory     = errors.New("path is a directory")
	ErrNotADirectory    = errors.New("path is not a directory")
	ErrPermissionDenied = errors.New("permission denied")
	ErrResourceLimit    = errors.New("read size limit exceeded")
	ErrIO               = errors.New("filesystem i/o failure")
)

// Error is a failed filesystem operation: the operation, the path it was
// applied to, the kind of failure, and the underlying cause if any.
type Error struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the error against its kind sentinel.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func opError(op, path string, kind, err error) *Error {
	return &Error{Op: op, Path: path, Kind: kind, Err: err}
}
