package stats

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Collector tracks split statistics using lock-free atomic counters.
// The splitter writes, presenters read.
type Collector struct {
	filesFound     atomic.Int64
	filesMoved     atomic.Int64
	filesFailed    atomic.Int64
	filesSkipped   atomic.Int64
	bytesMoved     atomic.Int64
	batchesCreated atomic.Int64
	batchesFailed  atomic.Int64
	startIndex     atomic.Int64
	startTime      time.Time
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// Reader is the read side of a Collector.
type Reader interface {
	Snapshot() Snapshot
}

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	FilesFound     int64
	FilesMoved     int64
	FilesFailed    int64
	FilesSkipped   int64 // left loose because their batch folder failed
	BytesMoved     int64
	BatchesCreated int64
	BatchesFailed  int64
	StartIndex     int64
	Elapsed        time.Duration
}

func (c *Collector) SetFilesFound(n int64)     { c.filesFound.Store(n) }
func (c *Collector) SetStartIndex(n int64)     { c.startIndex.Store(n) }
func (c *Collector) AddFilesMoved(n int64)     { c.filesMoved.Add(n) }
func (c *Collector) AddFilesFailed(n int64)    { c.filesFailed.Add(n) }
func (c *Collector) AddFilesSkipped(n int64)   { c.filesSkipped.Add(n) }
func (c *Collector) AddBytesMoved(n int64)     { c.bytesMoved.Add(n) }
func (c *Collector) AddBatchesCreated(n int64) { c.batchesCreated.Add(n) }
func (c *Collector) AddBatchesFailed(n int64)  { c.batchesFailed.Add(n) }

// Snapshot returns a point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		FilesFound:     c.filesFound.Load(),
		FilesMoved:     c.filesMoved.Load(),
		FilesFailed:    c.filesFailed.Load(),
		FilesSkipped:   c.filesSkipped.Load(),
		BytesMoved:     c.bytesMoved.Load(),
		BatchesCreated: c.batchesCreated.Load(),
		BatchesFailed:  c.batchesFailed.Load(),
		StartIndex:     c.startIndex.Load(),
		Elapsed:        c.Elapsed(),
	}
}

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

// FilesRemaining is the number of found files not yet moved, failed or
// skipped.
func (s Snapshot) FilesRemaining() int64 {
	return max(s.FilesFound-s.FilesMoved-s.FilesFailed-s.FilesSkipped, 0)
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"found=%d moved=%d failed=%d skipped=%d bytes=%d batches=%d batches_failed=%d",
		s.FilesFound, s.FilesMoved, s.FilesFailed, s.FilesSkipped,
		s.BytesMoved, s.BatchesCreated, s.BatchesFailed,
	)
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
