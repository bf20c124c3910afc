package display

import (
	"errors"
	"image"
	"testing"
)

func TestMainBounds(t *testing.T) {
	// Requires a display; only checks that the call does not panic.
	b, err := MainBounds()
	if err != nil {
		t.Logf("Failed to get display bounds (expected in headless environment): %v", err)
		return
	}
	if b.Empty() {
		t.Error("expected non-empty main display bounds")
	}
}

func TestBoundsSelection(t *testing.T) {
	displays := []image.Rectangle{
		image.Rect(0, 0, 1440, 900),
		image.Rect(1440, -200, 3360, 880),
	}
	get := func(i int) image.Rectangle { return displays[i] }

	tests := []struct {
		name    string
		n       int
		want    image.Rectangle
		wantErr bool
	}{
		{"main of two", 2, displays[0], false},
		{"main of none", 0, image.Rectangle{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mainBounds(tt.n, get)
			if tt.wantErr {
				if !errors.Is(err, ErrNoDisplay) {
					t.Fatalf("expected ErrNoDisplay, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestMainBoundsEmptyDisplay(t *testing.T) {
	_, err := mainBounds(1, func(int) image.Rectangle { return image.Rectangle{} })
	if !errors.Is(err, ErrNoDisplay) {
		t.Fatalf("expected ErrNoDisplay for an empty display, got %v", err)
	}
}
