package ui

import (
	"fmt"
	"io"

	"github.com/bamsammich/batchsplit/internal/stats"
)

// plainPresenter writes one progress line per finished batch to w and one
// line per failure to errW.
type plainPresenter struct {
	w      io.Writer
	errW   io.Writer
	stats  stats.Reader
	styled bool
}

func (p *plainPresenter) Run(events <-chan Event) error {
	for ev := range events {
		p.handleEvent(ev)
	}
	return nil
}

func (p *plainPresenter) handleEvent(ev Event) {
	switch ev.Type {
	case NoFiles:
		fmt.Fprintln(p.w, "No loose files found to split.")
	case ScanComplete:
		fmt.Fprintf(p.w, "Found %s files. Resuming split at %s...\n", FormatCount(int64(ev.Count)), ev.Batch)
	case BatchPlanned:
		line := fmt.Sprintf("Would create %s: %s files.", ev.Batch, FormatCount(int64(ev.Count)))
		if p.styled {
			line = styleMuted.Render(line)
		}
		fmt.Fprintln(p.w, line)
	case BatchCompleted:
		fmt.Fprintln(p.w, batchLine(ev))
	default:
		printFailure(p.errW, ev, p.styled)
	}
}

func (p *plainPresenter) Summary() string {
	if p.stats == nil {
		return ""
	}
	return CompletionSummary(p.stats.Snapshot(), p.styled)
}

func batchLine(ev Event) string {
	line := fmt.Sprintf("Processed %s: %s files.", ev.Batch, FormatCount(int64(ev.Moved)))
	if ev.Failed > 0 {
		line = fmt.Sprintf("Processed %s: %s files (%s failed).",
			ev.Batch, FormatCount(int64(ev.Moved)), FormatCount(int64(ev.Failed)))
	}
	return line
}

// printFailure writes failure events to w. Other event types are ignored.
func printFailure(w io.Writer, ev Event, styled bool) {
	var msg string
	switch ev.Type {
	case BatchFailed:
		msg = fmt.Sprintf("Failed to create %s: %v (%s files left in place)",
			ev.Batch, ev.Error, FormatCount(int64(ev.Count)))
	case FileFailed:
		msg = fmt.Sprintf("Failed to move %s to %s: %v", ev.Path, ev.Batch, ev.Error)
	case JournalFailed:
		msg = fmt.Sprintf("journal: %v", ev.Error)
	default:
		return
	}
	if styled {
		msg = styleError.Render(msg)
	}
	fmt.Fprintln(w, msg)
}
