package display

import (
	"errors"
	"image"

	"github.com/kbinani/screenshot"
)

// ErrNoDisplay is returned when no active display is found.
var ErrNoDisplay = errors.New("no active displays found")

// MainBounds returns the bounds of the primary display (display 0) in global
// top-left based coordinates. The menu is always shown there.
func MainBounds() (image.Rectangle, error) {
	return mainBounds(screenshot.NumActiveDisplays(), screenshot.GetDisplayBounds)
}

func mainBounds(n int, bounds func(int) image.Rectangle) (image.Rectangle, error) {
	if n == 0 {
		return image.Rectangle{}, ErrNoDisplay
	}
	b := bounds(0)
	if b.Empty() {
		return image.Rectangle{}, ErrNoDisplay
	}
	return b, nil
}
