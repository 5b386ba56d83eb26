package storage

import (
	"errors"
	"fmt"
)

// Sentinel errors for directory and registry operations.
var (
	// ErrNotFound is returned when a file or directory that must exist is
	// missing.
	ErrNotFound = errors.New("not found")

	// ErrExists is returned when a create, rename, or copy target already
	// exists.
	ErrExists = errors.New("already exists")

	// ErrInvalidContent is returned when a stored payload does not parse as
	// JSON.
	ErrInvalidContent = errors.New("invalid content")
)

// FileError wraps a failed file operation with its context.
type FileError struct {
	// Op is the operation that failed ("read", "write", "rename", ...).
	Op string

	// Name is the file name the operation targeted.
	Name string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error {
	return e.Err
}
