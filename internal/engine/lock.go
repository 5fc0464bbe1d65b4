package engine

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/zeebo/blake3"
)

// RunLock is an advisory lock that keeps two runs from splitting the same
// directory at once. The lock file lives outside the target directory.
type RunLock struct {
	lock *flock.Flock
}

// AcquireLock takes the run lock for dir without blocking. It returns
// ErrLocked if another process holds it.
func AcquireLock(dir string) (*RunLock, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}

	path, err := lockPath(abs, lockID(abs))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}

	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrLocked, path)
	}
	return &RunLock{lock: fl}, nil
}

// Path returns the lock file path.
func (l *RunLock) Path() string {
	return l.lock.Path()
}

// Release drops the lock. The lock file is left in place.
func (l *RunLock) Release() error {
	return l.lock.Unlock()
}

// lockID computes a deterministic id from the absolute target path.
func lockID(absDir string) string {
	h := blake3.New()
	h.Write([]byte(absDir))
	digest := h.Sum(nil)
	return hex.EncodeToString(digest[:8])
}

// lockPath returns the first lock location that is not directly inside
// absDir: $XDG_RUNTIME_DIR/batchsplit/<id>.lock, then the system temp dir,
// then the user cache dir.
func lockPath(absDir, id string) (string, error) {
	var candidates []string
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		candidates = append(candidates, filepath.Join(dir, "batchsplit", id+".lock"))
	}
	candidates = append(candidates, filepath.Join(os.TempDir(), "batchsplit-"+id+".lock"))
	if dir, err := os.UserCacheDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "batchsplit", id+".lock"))
	}

	for _, c := range candidates {
		abs, err := filepath.Abs(c)
		if err != nil {
			continue
		}
		if filepath.Dir(abs) != absDir {
			return abs, nil
		}
	}
	return "", fmt.Errorf("no lock location outside %s", absDir)
}
