package tray

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/vector"
)

const iconSize = 32

// Icon renders the menu bar template icon: a ring split into four wedges
// with the upper right one filled. Template icons only use alpha.
func Icon() ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	c := float64(iconSize) / 2
	outer := c - 1
	inner := outer / 1.8
	const gap = 0.12 // radians between wedges

	for i := 0; i < 4; i++ {
		a0 := float64(i)*math.Pi/2 - math.Pi/2 + gap/2
		a1 := a0 + math.Pi/2 - gap
		alpha := uint8(110)
		if i == 0 {
			alpha = 255
		}
		z := vector.NewRasterizer(iconSize, iconSize)
		z.DrawOp = draw.Over
		ring(z, c, c, outer, inner, a0, a1)
		z.Draw(img, img.Bounds(), image.NewUniform(color.NRGBA{A: alpha}), image.Point{})
	}
	return encode(img)
}

// blankIcon is a 1x1 transparent image, used when the title text replaces
// the icon.
func blankIcon() ([]byte, error) {
	return encode(image.NewRGBA(image.Rect(0, 0, 1, 1)))
}

func encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode tray icon: %w", err)
	}
	return buf.Bytes(), nil
}

func ring(z *vector.Rasterizer, cx, cy, outer, inner, a0, a1 float64) {
	const steps = 24
	pt := func(r, a float64) (float32, float32) {
		return float32(cx + r*math.Cos(a)), float32(cy + r*math.Sin(a))
	}
	z.MoveTo(pt(outer, a0))
	for s := 1; s <= steps; s++ {
		z.LineTo(pt(outer, a0+(a1-a0)*float64(s)/steps))
	}
	for s := steps; s >= 0; s-- {
		z.LineTo(pt(inner, a0+(a1-a0)*float64(s)/steps))
	}
	z.ClosePath()
}
