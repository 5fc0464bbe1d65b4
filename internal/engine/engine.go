package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bamsammich/batchsplit/internal/event"
	"github.com/bamsammich/batchsplit/internal/stats"
)

// Recorder receives every successful move. The journal implements it.
type Recorder interface {
	RecordMove(batch, name string, size int64) error
	Flush() error
}

// Config describes a split operation.
type Config struct {
	FS        FS       // nil means LocalFS
	Journal   Recorder // optional
	Events    chan<- event.Event
	Stats     *stats.Collector
	Dir       string
	ChunkSize int      // zero means DefaultChunkSize; the CLI never changes it
	Held      *RunLock // lock the caller already took for Dir; Run then takes none
	DryRun    bool
	Lock      bool
}

// Result is the outcome of a split operation.
type Result struct {
	Stats      stats.Snapshot
	Batches    []BatchResult
	StartIndex int
	FilesFound int
	// Err is set for precondition failures (ErrNotDirectory, ErrLocked,
	// *DirectoryReadError) and for cancellation. Per-batch and per-file
	// failures are reported in Batches, not here.
	Err error
}

func (c Config) emit(e event.Event) {
	if c.Events == nil {
		return
	}
	e.Timestamp = time.Now()
	c.Events <- e
}

// Run splits the loose files of cfg.Dir into batch folders, blocking until
// complete or until ctx is cancelled.
func Run(ctx context.Context, cfg Config) Result {
	if cfg.FS == nil {
		cfg.FS = LocalFS{}
	}
	if cfg.Stats == nil {
		cfg.Stats = stats.NewCollector()
	}
	if cfg.ChunkSize < 1 {
		cfg.ChunkSize = DefaultChunkSize
	}

	info, err := os.Stat(cfg.Dir)
	if err != nil || !info.IsDir() {
		return Result{Err: fmt.Errorf("%s: %w", cfg.Dir, ErrNotDirectory)}
	}

	lock := cfg.Held
	if lock == nil && cfg.Lock && !cfg.DryRun {
		lock, err = AcquireLock(cfg.Dir)
		if err != nil {
			return Result{Err: err}
		}
		defer lock.Release() //nolint:errcheck // released on exit either way
	}

	entries, err := Scan(cfg.Dir)
	if err != nil {
		return Result{Err: err}
	}
	var skip []string
	if lock != nil {
		skip = append(skip, lock.Path())
	}
	files := Order(Filter(entries, skip...))
	cfg.Stats.SetFilesFound(int64(len(files)))

	if len(files) == 0 {
		cfg.emit(event.Event{Type: event.NoFiles})
		return Result{Stats: cfg.Stats.Snapshot()}
	}

	start := ResumePoint(cfg.Dir)
	cfg.Stats.SetStartIndex(int64(start))
	cfg.emit(event.Event{
		Type:  event.ScanComplete,
		Count: len(files),
		Index: start,
		Batch: FolderName(start),
	})

	batches := Plan(files, start, cfg.ChunkSize)

	result := Result{StartIndex: start, FilesFound: len(files)}
	if cfg.DryRun {
		for _, b := range batches {
			cfg.emit(event.Event{Type: event.BatchPlanned, Batch: b.Name, Index: b.Index, Count: len(b.Files)})
		}
	} else {
		result.Batches, result.Err = apply(ctx, cfg, batches)
	}
	result.Stats = cfg.Stats.Snapshot()
	return result
}

// apply performs the filesystem side of a plan, one batch at a time in
// index order. A batch whose folder cannot be created is skipped; a file
// that cannot be moved stays where it is. Nothing is retried or undone.
func apply(ctx context.Context, cfg Config, batches []Batch) ([]BatchResult, error) {
	results := make([]BatchResult, 0, len(batches))
	for _, b := range batches {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res, err := applyBatch(ctx, cfg, b)
		results = append(results, res)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

func applyBatch(ctx context.Context, cfg Config, b Batch) (BatchResult, error) {
	res := BatchResult{Index: b.Index, Name: b.Name}
	folder := filepath.Join(cfg.Dir, b.Name)

	if err := cfg.FS.MkdirAll(folder); err != nil {
		res.Err = fmt.Errorf("create %s: %w", folder, err)
		cfg.Stats.AddBatchesFailed(1)
		cfg.Stats.AddFilesSkipped(int64(len(b.Files)))
		cfg.emit(event.Event{
			Type:  event.BatchFailed,
			Batch: b.Name,
			Index: b.Index,
			Count: len(b.Files),
			Error: res.Err,
		})
		return res, nil
	}
	cfg.Stats.AddBatchesCreated(1)
	cfg.emit(event.Event{Type: event.BatchCreated, Batch: b.Name, Index: b.Index, Count: len(b.Files)})

	var cancelErr error
	for _, f := range b.Files {
		if err := ctx.Err(); err != nil {
			cancelErr = err
			break
		}

		dst := filepath.Join(folder, f.Name)
		if err := cfg.FS.Move(f.Path, dst); err != nil {
			res.Failed = append(res.Failed, f)
			cfg.Stats.AddFilesFailed(1)
			cfg.emit(event.Event{
				Type:  event.FileFailed,
				Batch: b.Name,
				Index: b.Index,
				Path:  f.Path,
				Size:  f.Size,
				Error: err,
			})
			continue
		}

		res.Moved++
		cfg.Stats.AddFilesMoved(1)
		cfg.Stats.AddBytesMoved(f.Size)
		cfg.emit(event.Event{Type: event.FileMoved, Batch: b.Name, Index: b.Index, Path: f.Path, Size: f.Size})
		cfg.record(b.Name, f)
	}

	cfg.flush()
	cfg.emit(event.Event{
		Type:   event.BatchCompleted,
		Batch:  b.Name,
		Index:  b.Index,
		Count:  len(b.Files),
		Moved:  res.Moved,
		Failed: len(res.Failed),
	})
	return res, cancelErr
}

// record and flush forward to the journal. Journal failures never stop a
// split; they surface as JournalFailed events.
func (c Config) record(batch string, f LooseFile) {
	if c.Journal == nil {
		return
	}
	if err := c.Journal.RecordMove(batch, f.Name, f.Size); err != nil {
		c.emit(event.Event{Type: event.JournalFailed, Batch: batch, Path: f.Path, Error: err})
	}
}

func (c Config) flush() {
	if c.Journal == nil {
		return
	}
	if err := c.Journal.Flush(); err != nil {
		c.emit(event.Event{Type: event.JournalFailed, Error: err})
	}
}
