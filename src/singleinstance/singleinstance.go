package singleinstance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrAlreadyRunning is returned by Acquire when another process holds the lock.
var ErrAlreadyRunning = errors.New("another instance is already running")

// Lock is held for the life of the process; Release frees it early.
type Lock struct {
	path    string
	release func() error
}

// Acquire takes the process-wide instance lock at path without blocking.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	release, err := acquire(path)
	if err != nil {
		return nil, err
	}
	return &Lock{path: path, release: release}, nil
}

// Path returns the lock file.
func (l *Lock) Path() string { return l.path }

// Release frees the lock. Releasing twice is a no-op.
func (l *Lock) Release() error {
	if l == nil || l.release == nil {
		return nil
	}
	err := l.release()
	l.release = nil
	return err
}
