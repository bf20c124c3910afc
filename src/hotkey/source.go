package hotkey

import "errors"

// ErrPermissionDenied is returned by Source.Start when the system refuses
// global key interception.
var ErrPermissionDenied = errors.New("global key interception denied: allow this app under System Settings > Privacy & Security > Accessibility")

// Handler receives every key event and decides whether it propagates.
type Handler func(KeyEvent) Decision

// Source delivers system-wide key events.
type Source interface {
	Start(h Handler) error
	Stop()
}

// NewSource returns the platform key source.
func NewSource() Source { return newPlatformSource() }
