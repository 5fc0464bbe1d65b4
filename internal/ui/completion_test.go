package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompletionSummary(t *testing.T) {
	snap := Snapshot{
		FilesFound:     2500,
		FilesMoved:     2500,
		BytesMoved:     1536,
		BatchesCreated: 3,
		Elapsed:        4 * time.Second,
	}
	assert.Equal(t,
		"done ✓  batches 3  files 2,500  size 1.5 KiB  time 4s  errors 0",
		CompletionSummary(snap, false),
	)
}

func TestCompletionSummary_Failures(t *testing.T) {
	snap := Snapshot{
		FilesFound:     10,
		FilesMoved:     6,
		FilesFailed:    1,
		BatchesCreated: 1,
		BatchesFailed:  1,
	}
	got := CompletionSummary(snap, false)
	assert.Contains(t, got, "done ✗")
	assert.Contains(t, got, "errors 2")
	assert.Contains(t, got, "not reached 3")
}

func TestCompletionSummary_SkippedBatchIsNotUnreached(t *testing.T) {
	snap := Snapshot{
		FilesFound:     5,
		FilesMoved:     3,
		FilesSkipped:   2,
		BatchesCreated: 1,
		BatchesFailed:  1,
	}
	got := CompletionSummary(snap, false)
	assert.Contains(t, got, "errors 1")
	assert.NotContains(t, got, "not reached")
}

func TestCompletionSummary_StyledKeepsText(t *testing.T) {
	snap := Snapshot{FilesFound: 1, FilesMoved: 1, BatchesCreated: 1}
	got := CompletionSummary(snap, true)
	assert.Contains(t, got, "batches 1")
	assert.Contains(t, got, "errors 0")
}
