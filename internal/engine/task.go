package engine

import "io/fs"

// Entry is one immediate child of the target directory as seen by Scan.
type Entry struct {
	Path string      // target dir joined with Name
	Name string      // base name
	Mode fs.FileMode // mode after following symlinks
	Size int64
}

// LooseFile is a regular file directly under the target directory that has
// not been assigned to a batch yet.
type LooseFile struct {
	Path string
	Name string
	Size int64
}

// Batch is one planned chunk of loose files and the folder it goes to.
type Batch struct {
	Name  string
	Files []LooseFile
	Index int
}

// BatchResult records what happened to a planned batch.
type BatchResult struct {
	Err    error // folder creation failure; nil if the folder exists
	Name   string
	Failed []LooseFile
	Index  int
	Moved  int
}
