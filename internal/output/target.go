package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"zebranoise/internal/failure"
)

// Target is a locked output location for one run.
type Target struct {
	Path     string
	LockPath string
	lock     *flock.Flock
}

// Acquire creates dir, resolves the artifact path, and takes the advisory
// lock next to it. The caller must call Release.
func Acquire(dir, name string) (*Target, error) {
	if dir == "" || name == "" {
		return nil, failure.Configf("output", "output directory and file name are required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, failure.Wrap(failure.ErrSink, "output", "create directory", dir, err)
	}
	path := filepath.Join(dir, name)
	lockPath := path + ".lock"
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, failure.Wrap(failure.ErrSink, "output", "acquire lock", lockPath, err)
	}
	if !ok {
		return nil, failure.Wrap(failure.ErrSink, "output", "acquire lock",
			fmt.Sprintf("another run is writing %s", path), nil)
	}
	return &Target{Path: path, LockPath: lockPath, lock: lock}, nil
}

// Release drops the lock and removes the lock file.
func (t *Target) Release() error {
	if t == nil || t.lock == nil {
		return nil
	}
	if err := t.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	if err := os.Remove(t.LockPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove lock file: %w", err)
	}
	t.lock = nil
	return nil
}

// Size returns the artifact size in bytes, or the summed size of a frame
// directory.
func (t *Target) Size() (int64, error) {
	info, err := os.Stat(t.Path)
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return info.Size(), nil
	}
	var total int64
	err = filepath.WalkDir(t.Path, func(_ string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		total += fi.Size()
		return nil
	})
	return total, err
}
