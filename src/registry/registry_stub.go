//go:build !darwin

package registry

func newPlatformRegistry() (Registry, error) { return nil, ErrUnsupported }
