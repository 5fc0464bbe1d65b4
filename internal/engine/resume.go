package engine

import (
	"os"
	"path/filepath"
)

// ResumePoint returns the first batch index, counting up from 1, whose
// folder does not exist under dir. A gap left by a removed folder is
// returned even if higher-numbered folders exist.
func ResumePoint(dir string) int {
	index := 1
	for exists(filepath.Join(dir, FolderName(index))) {
		index++
	}
	return index
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
