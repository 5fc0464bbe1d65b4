//go:build linux

package platform

import (
	"errors"

	"golang.org/x/sys/unix"
)

// moveFile tries renameat2 with RENAME_NOREPLACE, falling through to a
// checked rename when the kernel or filesystem does not support the flag.
func moveFile(src, dst string) (MoveMethod, error) {
	err := unix.Renameat2(unix.AT_FDCWD, src, unix.AT_FDCWD, dst, unix.RENAME_NOREPLACE)
	if err == nil {
		return RenameNoClobber, nil
	}
	if errors.Is(err, unix.EEXIST) {
		return RenameNoClobber, ErrDestinationExists
	}
	if isFallbackErr(err) {
		return renameChecked(src, dst)
	}
	return RenameNoClobber, err
}

func isFallbackErr(err error) bool {
	return errors.Is(err, unix.ENOSYS) ||
		errors.Is(err, unix.EINVAL) ||
		errors.Is(err, unix.EOPNOTSUPP)
}
