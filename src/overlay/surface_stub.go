//go:build !darwin

package overlay

import "radial-switch/src/geometry"

func newPlatformSurface(onPointer func(geometry.Point)) (Surface, error) {
	return nil, ErrUnsupported
}
