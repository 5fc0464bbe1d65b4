package journal

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_RejectsPathInsideTarget(t *testing.T) {
	target := t.TempDir()

	_, err := Open(filepath.Join(target, "journal.db"), target)
	require.ErrorIs(t, err, ErrInsideTarget)
}

func TestOpen_AllowsNestedSubdir(t *testing.T) {
	target := t.TempDir()

	j, err := Open(filepath.Join(target, "meta", "journal.db"), target)
	require.NoError(t, err)
	require.NoError(t, j.Close())
}

func TestRecordAndQuery(t *testing.T) {
	target := t.TempDir()
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := Open(path, target)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	require.NoError(t, j.RecordMove("batch_001", "b.txt", 2))
	require.NoError(t, j.RecordMove("batch_001", "a.txt", 1))
	require.NoError(t, j.RecordMove("batch_002", "c.txt", 3))

	// Nothing visible before flush.
	moves, err := j.Moves("batch_001")
	require.NoError(t, err)
	assert.Empty(t, moves)

	require.NoError(t, j.Flush())

	moves, err = j.Moves("batch_001")
	require.NoError(t, err)
	require.Len(t, moves, 2)
	assert.Equal(t, "a.txt", moves[0].Name)
	assert.Equal(t, int64(1), moves[0].Size)
	assert.Equal(t, "b.txt", moves[1].Name)
	assert.Equal(t, j.RunID(), moves[0].RunID)
	assert.False(t, moves[0].MovedAt.IsZero())

	moves, err = j.Moves("batch_002")
	require.NoError(t, err)
	require.Len(t, moves, 1)
	assert.Equal(t, "c.txt", moves[0].Name)
}

func TestFlushEmptyIsNoop(t *testing.T) {
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	require.NoError(t, j.Flush())
	require.NoError(t, j.Flush())
}

func TestReopenKeepsHistory(t *testing.T) {
	target := t.TempDir()
	path := filepath.Join(t.TempDir(), "journal.db")

	j1, err := Open(path, target)
	require.NoError(t, err)
	require.NoError(t, j1.RecordMove("batch_001", "a.txt", 1))
	require.NoError(t, j1.Close()) // Close flushes.

	j2, err := Open(path, target)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j2.Close() })

	assert.NotEqual(t, j1.RunID(), j2.RunID())

	n, err := j2.RunCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	moves, err := j2.Moves("batch_001")
	require.NoError(t, err)
	require.Len(t, moves, 1)
	assert.Equal(t, j1.RunID(), moves[0].RunID)
}

func TestPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := Open(path, t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	assert.Equal(t, path, j.Path())
}
