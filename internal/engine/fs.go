package engine

import (
	"os"

	"github.com/bamsammich/batchsplit/internal/platform"
)

// FS is the set of filesystem mutations the splitter performs.
type FS interface {
	// MkdirAll creates a batch folder. An existing directory is not an error.
	MkdirAll(path string) error
	// Move relocates a file without overwriting an existing destination.
	Move(src, dst string) error
}

// LocalFS mutates the local filesystem.
type LocalFS struct{}

func (LocalFS) MkdirAll(path string) error {
	return os.MkdirAll(path, 0o755)
}

func (LocalFS) Move(src, dst string) error {
	_, err := platform.MoveFile(src, dst)
	return err
}
