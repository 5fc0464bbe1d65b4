package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bamsammich/batchsplit/internal/event"
)

// writeFiles creates each named file under dir with its name as content.
func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}
}

// numberedFiles returns n names like "f0000.dat".
func numberedFiles(n int) []string {
	names := make([]string, n)
	for i := range n {
		names[i] = fmt.Sprintf("f%04d.dat", i)
	}
	return names
}

// listNames returns the sorted entry names of dir.
func listNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	slices.Sort(names)
	return names
}

// runCollect runs the splitter and returns the result with every event it
// emitted, in order.
func runCollect(t *testing.T, cfg Config) (Result, []event.Event) {
	t.Helper()
	return runCollectCtx(t, context.Background(), cfg)
}

func runCollectCtx(t *testing.T, ctx context.Context, cfg Config) (Result, []event.Event) {
	t.Helper()
	ch := make(chan event.Event, 16384)
	cfg.Events = ch
	res := Run(ctx, cfg)
	close(ch)

	var evs []event.Event
	for ev := range ch {
		evs = append(evs, ev)
	}
	return res, evs
}

func eventsOfType(evs []event.Event, typ event.Type) []event.Event {
	var out []event.Event
	for _, ev := range evs {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

// faultyFS wraps LocalFS and fails selected operations.
type faultyFS struct {
	LocalFS
	failMkdir map[string]bool // by batch folder base name
	failMove  map[string]bool // by source base name
	onMove    func(src string)
}

var errInjected = errors.New("injected failure")

func (f *faultyFS) MkdirAll(path string) error {
	if f.failMkdir[filepath.Base(path)] {
		return errInjected
	}
	return f.LocalFS.MkdirAll(path)
}

func (f *faultyFS) Move(src, dst string) error {
	if f.onMove != nil {
		f.onMove(src)
	}
	if f.failMove[filepath.Base(src)] {
		return errInjected
	}
	return f.LocalFS.Move(src, dst)
}

// memRecorder is an in-memory Recorder.
type memRecorder struct {
	moves   []string
	flushes int
	err     error
}

func (r *memRecorder) RecordMove(batch, name string, _ int64) error {
	if r.err != nil {
		return r.err
	}
	r.moves = append(r.moves, batch+"/"+name)
	return nil
}

func (r *memRecorder) Flush() error {
	r.flushes++
	return nil
}
