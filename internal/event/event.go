package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	ScanComplete Type = iota + 1
	NoFiles
	BatchPlanned
	BatchCreated
	BatchFailed
	BatchCompleted
	FileMoved
	FileFailed
	JournalFailed
)

var typeNames = [...]string{
	ScanComplete:   "ScanComplete",
	NoFiles:        "NoFiles",
	BatchPlanned:   "BatchPlanned",
	BatchCreated:   "BatchCreated",
	BatchFailed:    "BatchFailed",
	BatchCompleted: "BatchCompleted",
	FileMoved:      "FileMoved",
	FileFailed:     "FileFailed",
	JournalFailed:  "JournalFailed",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Event represents a single progress event from the splitter.
type Event struct {
	Type      Type
	Timestamp time.Time
	Batch     string // batch folder name, e.g. "batch_004"
	Path      string // source path of the file (FileMoved, FileFailed)
	Size      int64  // file size in bytes
	Count     int    // files in the batch, or total loose files (ScanComplete)
	Moved     int    // files actually moved (BatchCompleted)
	Failed    int    // files left behind (BatchCompleted)
	Index     int    // batch index
	Error     error
}
