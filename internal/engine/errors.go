package engine

import (
	"errors"
	"fmt"
)

// ErrNotDirectory is returned when the target path does not resolve to an
// existing directory.
var ErrNotDirectory = errors.New("not a directory")

// ErrLocked is returned when another run holds the lock for the same target.
var ErrLocked = errors.New("another batchsplit run is already working on this directory")

// DirectoryReadError reports that the top-level listing of the target
// directory could not be obtained.
type DirectoryReadError struct {
	Path string
	Err  error
}

func (e *DirectoryReadError) Error() string {
	return fmt.Sprintf("read directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryReadError) Unwrap() error {
	return e.Err
}
