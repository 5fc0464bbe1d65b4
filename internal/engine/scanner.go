package engine

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const readDirBatch = 256

// Scan lists the immediate children of dir. The listing is materialised in
// full before it is returned so later mutation of dir cannot change it.
//
// A *DirectoryReadError is returned only when the listing cannot start.
// Entries that vanish or cannot be stat'ed mid-scan are skipped, as is the
// remainder of a listing that fails part-way through.
func Scan(dir string) ([]Entry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, &DirectoryReadError{Path: dir, Err: err}
	}
	defer f.Close()

	var entries []Entry
	first := true
	for {
		batch, err := f.ReadDir(readDirBatch)
		for _, de := range batch {
			path := filepath.Join(dir, de.Name())
			// Follow symlinks: a link to a regular file counts as a file.
			info, statErr := os.Stat(path)
			if statErr != nil {
				continue
			}
			entries = append(entries, Entry{
				Path: path,
				Name: de.Name(),
				Mode: info.Mode(),
				Size: info.Size(),
			})
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if first && len(batch) == 0 {
				return nil, &DirectoryReadError{Path: dir, Err: err}
			}
			break
		}
		first = false
	}

	return entries, nil
}

// Filter keeps the entries that are loose files: regular files whose parent
// directory is not a batch folder. Entries whose absolute path is listed in
// skip are dropped.
func Filter(entries []Entry, skip ...string) []LooseFile {
	files := make([]LooseFile, 0, len(entries))
	for _, e := range entries {
		if !e.Mode.IsRegular() {
			continue
		}
		if IsBatchName(filepath.Base(filepath.Dir(e.Path))) {
			continue
		}
		if len(skip) > 0 && skipped(e.Path, skip) {
			continue
		}
		files = append(files, LooseFile{Path: e.Path, Name: e.Name, Size: e.Size})
	}
	return files
}

func skipped(path string, skip []string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return slices.Contains(skip, abs)
}

// Order sorts files by full path using byte-wise comparison, so the result
// does not depend on locale.
func Order(files []LooseFile) []LooseFile {
	slices.SortFunc(files, func(a, b LooseFile) int {
		return strings.Compare(a.Path, b.Path)
	})
	return files
}
