package engine

import (
	"fmt"
	"strings"
)

const (
	// BatchPrefix starts the name of every batch folder.
	BatchPrefix = "batch_"

	// DefaultChunkSize is the number of files placed in each batch folder.
	DefaultChunkSize = 1000
)

// FolderName returns the batch folder name for a 1-based index. Indexes are
// zero-padded to three digits; wider indexes are written as-is.
func FolderName(index int) string {
	return fmt.Sprintf("%s%03d", BatchPrefix, index)
}

// IsBatchName reports whether name carries the batch folder prefix.
func IsBatchName(name string) bool {
	return strings.HasPrefix(name, BatchPrefix)
}
