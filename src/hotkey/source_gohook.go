//go:build !darwin

package hotkey

import (
	"log"
	"sync"

	gohook "github.com/robotn/gohook"
)

// libuiohook virtual key codes for the supported letters.
const (
	vcA = 0x1E
	vcS = 0x1F
	vcR = 0x13
)

// libuiohook modifier mask bits, left and right variants.
const (
	maskShift = 1<<0 | 1<<4
	maskMeta  = 1<<2 | 1<<6
	maskAlt   = 1<<3 | 1<<7
)

// hookSource listens through gohook. It cannot suppress events, so a matched
// hotkey also reaches the focused application.
type hookSource struct {
	mu      sync.Mutex
	running bool
}

func newPlatformSource() Source { return &hookSource{} }

func (s *hookSource) Start(h Handler) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	evChan := gohook.Start()
	if evChan == nil {
		return ErrPermissionDenied
	}
	s.running = true
	log.Printf("hotkey: listening with gohook; events cannot be consumed on this platform")

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in hotkey goroutine: %v", r)
			}
		}()
		for ev := range evChan {
			kind, ok := eventKind(ev.Kind)
			if !ok {
				continue
			}
			h(KeyEvent{
				Kind: kind,
				Key:  keyFromVC(ev.Keycode),
				Mods: modsFromMask(ev.Mask),
			})
		}
		log.Printf("hotkey: event channel closed")
	}()
	return nil
}

func (s *hookSource) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	gohook.End()
}

// eventKind maps gohook kinds. KeyHold is the physical press; KeyDown is the
// typed-character event and is ignored.
func eventKind(k uint8) (EventKind, bool) {
	switch k {
	case gohook.KeyHold:
		return KeyDown, true
	case gohook.KeyUp:
		return KeyUp, true
	default:
		return 0, false
	}
}

func keyFromVC(code uint16) KeyCode {
	switch code {
	case vcA:
		return KeyA
	case vcS:
		return KeyS
	case vcR:
		return KeyR
	default:
		// Offset past the macOS range so unsupported keys never collide.
		return KeyCode(0x10000 + int(code))
	}
}

func modsFromMask(mask uint16) Modifier {
	var m Modifier
	if mask&maskShift != 0 {
		m |= ModShift
	}
	if mask&maskMeta != 0 {
		m |= ModCommand
	}
	if mask&maskAlt != 0 {
		m |= ModOption
	}
	return m
}
