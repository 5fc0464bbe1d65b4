package ui

import "fmt"

// CompletionSummary builds a final summary line from a snapshot.
// Format: done ✓  batches 3  files 2,500  size 1.2 GiB  time 4s  errors 0
func CompletionSummary(snap Snapshot, styled bool) string {
	icon := "✓"
	iconStyle := styleDone
	errors := snap.FilesFailed + snap.BatchesFailed
	if errors > 0 {
		icon = "✗"
		iconStyle = styleError
	}
	if styled {
		icon = iconStyle.Render(icon)
	}

	line := fmt.Sprintf("done %s  batches %s  files %s  size %s  time %s  errors %d",
		icon,
		FormatCount(snap.BatchesCreated),
		FormatCount(snap.FilesMoved),
		FormatBytes(snap.BytesMoved),
		FormatDuration(snap.Elapsed),
		errors,
	)
	if remaining := snap.FilesRemaining(); remaining > 0 {
		left := fmt.Sprintf("  not reached %s", FormatCount(remaining))
		if styled {
			left = styleWarn.Render(left)
		}
		line += left
	}
	return line
}
