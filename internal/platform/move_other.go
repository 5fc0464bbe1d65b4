//go:build !linux

package platform

func moveFile(src, dst string) (MoveMethod, error) {
	return renameChecked(src, dst)
}
