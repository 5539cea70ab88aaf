package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"
)

// LockTimeout is how long an invocation waits for another goldfish
// process to finish before giving up.
const LockTimeout = 5 * time.Second

// lockRetryInterval is the poll interval for the non-blocking flock.
const lockRetryInterval = 10 * time.Millisecond

// ErrLockTimeout is returned when the advisory lock cannot be acquired
// within the timeout.
var ErrLockTimeout = errors.New("cache is locked by another process")

// Lock is an advisory flock held for the duration of one invocation. It
// lives in a separate .lock file beside the log so that compaction can
// truncate and delete the log itself freely.
type Lock struct {
	file *os.File
}

// Acquire takes an exclusive advisory lock for the cache at dataFile,
// polling until timeout. The log file itself is not touched.
func Acquire(dataFile string, timeout time.Duration) (*Lock, error) {
	// The lock is taken before the log is opened, so the cache directory
	// may not exist yet.
	if dir := filepath.Dir(dataFile); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create cache directory %q: %w", dir, err)
		}
	}

	lockPath := dataFile + ".lock"

	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o600) //nolint:gosec // path comes from resolved config
	if err != nil {
		return nil, fmt.Errorf("open lock file %q: %w", lockPath, err)
	}

	deadline := time.Now().Add(timeout)

	for {
		flockErr := unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if flockErr == nil {
			return &Lock{file: file}, nil
		}

		if time.Now().After(deadline) {
			_ = file.Close()

			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, dataFile)
		}

		time.Sleep(lockRetryInterval)
	}
}

// Release drops the lock. The .lock file itself is left in place;
// removing it would race a concurrent acquirer.
func (l *Lock) Release() {
	if l.file != nil {
		_ = unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
		_ = l.file.Close()
	}
}
