//go:build darwin

package hotkey

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework Foundation -framework CoreFoundation
#include "tap_darwin.h"
*/
import "C"

import (
	"log"
	"sync"
)

var (
	handlerMu sync.RWMutex
	handler   Handler
)

//export goHotkeyEvent
func goHotkeyEvent(down C.int, code C.int, flags C.ulonglong, repeat C.int) C.int {
	handlerMu.RLock()
	h := handler
	handlerMu.RUnlock()
	if h == nil {
		return 0
	}

	ev := KeyEvent{
		Kind:   KeyUp,
		Key:    KeyCode(code),
		Mods:   Modifier(flags),
		Repeat: repeat != 0,
	}
	if down != 0 {
		ev.Kind = KeyDown
	}
	if h(ev) == Consume {
		return 1
	}
	return 0
}

// tapSource is a CGEventTap on the main run loop. It can consume events.
type tapSource struct{}

func newPlatformSource() Source { return &tapSource{} }

func (s *tapSource) Start(h Handler) error {
	if C.rs_tap_trusted(1) == 0 {
		log.Printf("hotkey: process is not trusted for accessibility yet; the system prompt was shown")
	}

	handlerMu.Lock()
	handler = h
	handlerMu.Unlock()

	if C.rs_tap_start() != 0 {
		handlerMu.Lock()
		handler = nil
		handlerMu.Unlock()
		return ErrPermissionDenied
	}
	log.Printf("hotkey: event tap installed")
	return nil
}

func (s *tapSource) Stop() {
	C.rs_tap_stop()
	handlerMu.Lock()
	handler = nil
	handlerMu.Unlock()
}
