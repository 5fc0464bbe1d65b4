package ui

import (
	"github.com/bamsammich/batchsplit/internal/event"
	"github.com/bamsammich/batchsplit/internal/stats"
)

// Event and Snapshot are re-exported for convenience.
type (
	Event    = event.Event
	Snapshot = stats.Snapshot
)

const (
	ScanComplete   = event.ScanComplete
	NoFiles        = event.NoFiles
	BatchPlanned   = event.BatchPlanned
	BatchCreated   = event.BatchCreated
	BatchFailed    = event.BatchFailed
	BatchCompleted = event.BatchCompleted
	FileMoved      = event.FileMoved
	FileFailed     = event.FileFailed
	JournalFailed  = event.JournalFailed
)
