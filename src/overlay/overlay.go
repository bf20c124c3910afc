package overlay

import (
	"errors"
	"fmt"
	"image"
	"log"
	"runtime"
	"time"

	"radial-switch/src/geometry"
	"radial-switch/src/registry"
	"radial-switch/src/selector"
)

// ErrUnsupported is returned by NewSurface where no overlay backend exists.
var ErrUnsupported = fmt.Errorf("overlay surface is not supported on %s/%s", runtime.GOOS, runtime.GOARCH)

// Surface is a borderless, transparent, always-on-top window that hosts the
// menu on every desktop. Frames are given in surface coordinates (origin at
// the top-left of the bounds passed to Show).
type Surface interface {
	Show(bounds image.Rectangle) error
	Present(frame *image.RGBA) error
	Hide()
	SetCursorHidden(hidden bool)
}

// NewSurface returns the platform surface. onPointer receives pointer
// positions in surface coordinates; it is called on the UI thread and must
// not block.
func NewSurface(onPointer func(geometry.Point)) (Surface, error) {
	return newPlatformSurface(onPointer)
}

// Overlay hosts the radial selector on a Surface for one session at a time.
// It must only be used from the event loop goroutine.
type Overlay struct {
	surface Surface
	view    *selector.View
	open    bool
}

// New creates an overlay drawing onto surface.
func New(surface Surface) (*Overlay, error) {
	if surface == nil {
		return nil, errors.New("overlay: nil surface")
	}
	view, err := selector.New()
	if err != nil {
		return nil, fmt.Errorf("overlay: %w", err)
	}
	return &Overlay{surface: surface, view: view}, nil
}

// IsOpen reports whether a session is showing.
func (o *Overlay) IsOpen() bool { return o.open }

// Open shows the menu for a candidate snapshot over bounds. An already open
// session is discarded without activation.
func (o *Overlay) Open(bounds image.Rectangle, candidates []registry.Candidate) error {
	if o.open {
		log.Printf("overlay: open while a session is showing; discarding it")
		o.Close()
	}

	layout := geometry.NewLayout(float64(bounds.Dx()), float64(bounds.Dy()))
	sess := o.view.Open(candidates, layout)
	if err := o.surface.Show(bounds); err != nil {
		o.view.Close()
		return fmt.Errorf("show overlay: %w", err)
	}
	o.surface.SetCursorHidden(true)
	o.open = true
	log.Printf("overlay: session %s opened with %d candidates (%s)", sess.ID, sess.Len(), sess.State())

	o.redraw()
	return nil
}

// PointerMoved updates the selection and redraws. Ignored while closed.
func (o *Overlay) PointerMoved(p geometry.Point) {
	if !o.open {
		return
	}
	o.view.PointerMoved(p)
	o.redraw()
}

// Close hides the surface, restores the cursor and returns the committed
// selection. Closing a closed overlay is a no-op.
func (o *Overlay) Close() (registry.Handle, bool) {
	if !o.open {
		return 0, false
	}
	h, ok := o.view.Commit()
	if sess := o.view.Session(); sess != nil {
		log.Printf("overlay: session %s closed after %s (commit=%v)", sess.ID, sess.Elapsed().Round(time.Millisecond), ok)
	}
	o.surface.Hide()
	o.surface.SetCursorHidden(false)
	o.view.Close()
	o.open = false
	return h, ok
}

// redraw renders and presents one frame; failures skip the frame.
func (o *Overlay) redraw() {
	frame, err := o.view.Render()
	if err != nil {
		log.Printf("overlay: frame skipped: %v", err)
		return
	}
	if err := o.surface.Present(frame); err != nil {
		log.Printf("overlay: present failed, frame skipped: %v", err)
	}
}
