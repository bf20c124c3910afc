//go:build darwin

package overlay

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit -framework Foundation -framework CoreGraphics
#include "surface_darwin.h"
*/
import "C"

import (
	"errors"
	"image"
	"sync"
	"unsafe"

	"radial-switch/src/geometry"
)

var (
	pointerMu      sync.RWMutex
	pointerHandler func(geometry.Point)
)

//export goOverlayPointerMoved
func goOverlayPointerMoved(x, y C.double) {
	pointerMu.RLock()
	h := pointerHandler
	pointerMu.RUnlock()
	if h != nil {
		h(geometry.Point{X: float64(x), Y: float64(y)})
	}
}

// darwinSurface drives a single process-wide NSPanel.
type darwinSurface struct{}

func newPlatformSurface(onPointer func(geometry.Point)) (Surface, error) {
	pointerMu.Lock()
	pointerHandler = onPointer
	pointerMu.Unlock()
	return &darwinSurface{}, nil
}

func (s *darwinSurface) Show(bounds image.Rectangle) error {
	if bounds.Empty() {
		return errors.New("empty overlay bounds")
	}
	C.rs_overlay_show(C.double(bounds.Min.X), C.double(bounds.Min.Y), C.double(bounds.Dx()), C.double(bounds.Dy()))
	return nil
}

func (s *darwinSurface) Present(frame *image.RGBA) error {
	b := frame.Bounds()
	if b.Empty() || len(frame.Pix) == 0 {
		return errors.New("empty frame")
	}
	C.rs_overlay_present(
		(*C.uchar)(unsafe.Pointer(&frame.Pix[0])), C.int(frame.Stride),
		C.int(b.Min.X), C.int(b.Min.Y), C.int(b.Dx()), C.int(b.Dy()),
	)
	return nil
}

func (s *darwinSurface) Hide() { C.rs_overlay_hide() }

func (s *darwinSurface) SetCursorHidden(hidden bool) {
	v := 0
	if hidden {
		v = 1
	}
	C.rs_overlay_set_cursor_hidden(C.int(v))
}
