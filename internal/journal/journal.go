// Package journal records which loose files each run moved into which batch
// folder, in a SQLite database that downstream tools can query.
package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrInsideTarget is returned when the journal would be created directly
// inside the directory being split, where it would itself be a loose file.
var ErrInsideTarget = errors.New("journal must not live directly inside the target directory")

// Journal is a SQLite-backed log of completed moves.
type Journal struct {
	db     *sql.DB
	path   string
	runID  string
	target string

	mu      sync.Mutex
	pending []Move
}

// Move is one recorded relocation.
type Move struct {
	MovedAt time.Time
	RunID   string
	Batch   string
	Name    string
	Size    int64
}

// Open opens (or creates) the journal at path and starts a new run for
// targetDir.
func Open(path, targetDir string) (*Journal, error) {
	absTarget, err := filepath.Abs(targetDir)
	if err != nil {
		return nil, fmt.Errorf("resolve target: %w", err)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve journal path: %w", err)
	}
	if filepath.Dir(absPath) == absTarget {
		return nil, fmt.Errorf("%s: %w", path, ErrInsideTarget)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}

	db, err := sql.Open("sqlite", absPath)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	j := &Journal{
		db:     db,
		path:   absPath,
		runID:  uuid.NewString(),
		target: absTarget,
	}
	if err := j.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return j, nil
}

func (j *Journal) init() error {
	_, err := j.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id       TEXT PRIMARY KEY,
			target   TEXT NOT NULL,
			started  INTEGER NOT NULL,
			finished INTEGER
		);
		CREATE TABLE IF NOT EXISTS moves (
			run_id   TEXT NOT NULL,
			target   TEXT NOT NULL,
			batch    TEXT NOT NULL,
			name     TEXT NOT NULL,
			size     INTEGER NOT NULL,
			moved_at INTEGER NOT NULL,
			PRIMARY KEY (target, batch, name)
		);
	`)
	if err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	_, err = j.db.Exec(
		"INSERT INTO runs (id, target, started) VALUES (?, ?, ?)",
		j.runID, j.target, time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("store run: %w", err)
	}
	return nil
}

// RecordMove buffers a completed move. Buffered moves are written by Flush
// or Close.
func (j *Journal) RecordMove(batch, name string, size int64) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.pending = append(j.pending, Move{
		MovedAt: time.Now(),
		RunID:   j.runID,
		Batch:   batch,
		Name:    name,
		Size:    size,
	})
	return nil
}

// Flush writes buffered moves in one transaction.
func (j *Journal) Flush() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.flushLocked()
}

func (j *Journal) flushLocked() error {
	if len(j.pending) == 0 {
		return nil
	}

	tx, err := j.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO moves
		(run_id, target, batch, name, size, moved_at) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, m := range j.pending {
		if _, err := stmt.Exec(m.RunID, j.target, m.Batch, m.Name, m.Size, m.MovedAt.UnixNano()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert %s/%s: %w", m.Batch, m.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	j.pending = j.pending[:0]
	return nil
}

// Moves returns every recorded move into batch for this journal's target,
// ordered by file name.
func (j *Journal) Moves(batch string) ([]Move, error) {
	rows, err := j.db.Query(`SELECT run_id, batch, name, size, moved_at FROM moves
		WHERE target = ? AND batch = ? ORDER BY name`, j.target, batch)
	if err != nil {
		return nil, fmt.Errorf("query moves: %w", err)
	}
	defer rows.Close()

	var moves []Move
	for rows.Next() {
		var m Move
		var movedAt int64
		if err := rows.Scan(&m.RunID, &m.Batch, &m.Name, &m.Size, &movedAt); err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		m.MovedAt = time.Unix(0, movedAt)
		moves = append(moves, m)
	}
	return moves, rows.Err()
}

// RunCount returns how many runs have been recorded for this target.
func (j *Journal) RunCount() (int, error) {
	var n int
	err := j.db.QueryRow("SELECT COUNT(*) FROM runs WHERE target = ?", j.target).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return n, nil
}

// Close flushes pending moves, marks the run finished and closes the database.
func (j *Journal) Close() error {
	j.mu.Lock()
	flushErr := j.flushLocked()
	j.mu.Unlock()

	_, markErr := j.db.Exec("UPDATE runs SET finished = ? WHERE id = ?", time.Now().UnixNano(), j.runID)
	closeErr := j.db.Close()
	return errors.Join(flushErr, markErr, closeErr)
}

// RunID returns the id of the run this journal is recording.
func (j *Journal) RunID() string {
	return j.runID
}

// Path returns the journal database path.
func (j *Journal) Path() string {
	return j.path
}
