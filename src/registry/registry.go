package registry

import (
	"errors"
	"fmt"
	"image"
	"runtime"
)

// ErrUnsupported is returned where no application registry backend exists.
var ErrUnsupported = fmt.Errorf("application registry is not supported on %s/%s", runtime.GOOS, runtime.GOARCH)

// ErrNotRunning is returned when activating an application that has quit.
var ErrNotRunning = errors.New("application is no longer running")

// Handle identifies a running application for activation (its process ID).
type Handle int

// Candidate is one running application offered in a menu session.
type Candidate struct {
	Name   string
	Icon   image.Image // nil when the application has no icon
	Handle Handle
}

// Registry enumerates user-facing applications and brings them forward.
type Registry interface {
	// Snapshot lists running regular applications in the registry's order.
	Snapshot() ([]Candidate, error)
	// Activate brings the application and all of its windows to the front.
	Activate(h Handle) error
}

// New returns the platform registry.
func New() (Registry, error) { return newPlatformRegistry() }

func wrapNotRunning(h Handle) error {
	return fmt.Errorf("activate pid %d: %w", int(h), ErrNotRunning)
}
