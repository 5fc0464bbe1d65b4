package platform

import (
	"errors"
	"fmt"
	"os"
)

// ErrDestinationExists is returned by MoveFile when the destination path is
// already taken. Moves never overwrite.
var ErrDestinationExists = errors.New("destination already exists")

// MoveMethod identifies which syscall was used for a move.
type MoveMethod int

const (
	Rename        MoveMethod = iota // rename(2) after an existence check
	RenameNoClobber                 // Linux renameat2(RENAME_NOREPLACE)
)

func (m MoveMethod) String() string {
	switch m {
	case Rename:
		return "rename"
	case RenameNoClobber:
		return "renameat2"
	default:
		return "unknown"
	}
}

// MoveFile relocates src to dst within one filesystem without copying data.
// It fails with ErrDestinationExists rather than replacing an existing dst.
func MoveFile(src, dst string) (MoveMethod, error) {
	method, err := moveFile(src, dst)
	if err != nil {
		return method, fmt.Errorf("move %s: %w", src, err)
	}
	return method, nil
}

// renameChecked is the portable path: Lstat then rename. There is a window
// between the two calls, which is acceptable under single-writer access.
func renameChecked(src, dst string) (MoveMethod, error) {
	if _, err := os.Lstat(dst); err == nil {
		return Rename, ErrDestinationExists
	} else if !errors.Is(err, os.ErrNotExist) {
		return Rename, err
	}
	return Rename, os.Rename(src, dst)
}
