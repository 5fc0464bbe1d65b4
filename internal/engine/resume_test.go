package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumePoint(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     int
	}{
		{name: "empty", want: 1},
		{name: "contiguous", existing: []string{"batch_001", "batch_002", "batch_003"}, want: 4},
		{name: "first gap wins", existing: []string{"batch_001", "batch_002", "batch_003", "batch_004", "batch_006"}, want: 5},
		{name: "missing first", existing: []string{"batch_002", "batch_003"}, want: 1},
		{name: "unpadded names are not batches", existing: []string{"batch_1"}, want: 1},
		{name: "other dirs ignored", existing: []string{"photos", "batch_001"}, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, name := range tt.existing {
				require.NoError(t, os.Mkdir(filepath.Join(dir, name), 0o755))
			}
			assert.Equal(t, tt.want, ResumePoint(dir))
		})
	}
}

func TestResumePoint_CrossesPaddingWidth(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 1000; i++ {
		require.NoError(t, os.Mkdir(filepath.Join(dir, FolderName(i)), 0o755))
	}
	assert.Equal(t, 1001, ResumePoint(dir))
}

func TestResumePoint_FileOccupiesName(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "batch_001")
	assert.Equal(t, 2, ResumePoint(dir))
}
