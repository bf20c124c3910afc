//go:build windows

package singleinstance

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sys/windows"
)

func acquire(path string) (func() error, error) {
	name := `Local\radial-switch-` + strings.NewReplacer(`\`, "_", ":", "_", "/", "_").Replace(filepath.Clean(path))
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, fmt.Errorf("mutex name: %w", err)
	}
	h, err := windows.CreateMutex(nil, true, namePtr)
	if err != nil {
		if h != 0 {
			_ = windows.CloseHandle(h)
		}
		if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
			return nil, ErrAlreadyRunning
		}
		return nil, fmt.Errorf("create mutex: %w", err)
	}
	return func() error {
		_ = windows.ReleaseMutex(h)
		return windows.CloseHandle(h)
	}, nil
}
