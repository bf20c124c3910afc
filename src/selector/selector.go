// Package selector is the radial menu view: it owns the candidate snapshot of
// one session, tracks the pointer, and rasterizes the menu.
package selector

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/nfnt/resize"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"radial-switch/src/geometry"
	"radial-switch/src/logutil"
	"radial-switch/src/registry"
	"radial-switch/src/session"
)

const (
	iconSize      = 48
	labelFontSize = 14
	labelTop      = 14 // label box starts this far above the center
	labelHeight   = 21
	labelWidth    = 1.5 // times the inner radius
	chevronWidth  = 3
	margin        = 2
)

var (
	selectedColor = color.NRGBA{R: 255, G: 128, B: 0, A: 255}
	neutralColor  = color.NRGBA{R: 85, G: 85, B: 85, A: 255}
	diskColor     = color.NRGBA{R: 51, G: 51, B: 51, A: 153}
	labelColor    = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	chevronColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// ErrNoSession is returned by Render before Open or after Close.
var ErrNoSession = errors.New("selector: no open session")

// View is the radial selector. It is not safe for concurrent use; the event
// loop owns it.
type View struct {
	face    font.Face
	sess    *session.Session
	pointer geometry.Point // offset from center
	tracked bool
	icons   map[int]image.Image
}

// New prepares a view with the label font loaded.
func New() (*View, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse label font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: labelFontSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("create label face: %w", err)
	}
	return &View{face: face}, nil
}

// Open starts a session over the candidate snapshot.
func (v *View) Open(candidates []registry.Candidate, layout geometry.Layout) *session.Session {
	v.sess = session.New(candidates, layout)
	v.pointer = geometry.Point{}
	v.tracked = false
	v.icons = make(map[int]image.Image, len(candidates))
	return v.sess
}

// Session returns the open session, or nil.
func (v *View) Session() *session.Session { return v.sess }

// PointerMoved updates the selection from a surface position and reports
// whether the selection changed. The caller redraws after every call so the
// chevron follows the pointer.
func (v *View) PointerMoved(p geometry.Point) bool {
	if v.sess == nil {
		return false
	}
	v.pointer = v.sess.Layout.Offset(p)
	v.tracked = true

	index, ok := geometry.SelectFromPointer(v.pointer.X, v.pointer.Y, v.sess.Len())
	if !ok {
		return false
	}
	changed := v.sess.Select(index)
	if changed {
		logutil.Debugf("selector: session %s selected %d (%s)", v.sess.ID, index, v.sess.Candidate(index).Name)
	}
	return changed
}

// Commit returns the handle of the selected candidate, if any.
func (v *View) Commit() (registry.Handle, bool) {
	if v.sess == nil {
		return 0, false
	}
	c, ok := v.sess.Selection()
	if !ok {
		return 0, false
	}
	return c.Handle, true
}

// Close releases the session and its cached icons.
func (v *View) Close() {
	v.sess = nil
	v.icons = nil
	v.tracked = false
}

// Render draws the menu square. The returned image's bounds are in surface
// coordinates. A panic while drawing is returned as an error so the caller can
// skip the frame.
func (v *View) Render() (img *image.RGBA, err error) {
	if v.sess == nil {
		return nil, ErrNoSession
	}
	defer func() {
		if r := recover(); r != nil {
			img = nil
			err = fmt.Errorf("selector: render session %s: %v", v.sess.ID, r)
		}
	}()

	l := v.sess.Layout
	half := int(math.Ceil(l.Outer)) + margin
	cx, cy := int(math.Round(l.Center.X)), int(math.Round(l.Center.Y))
	img = image.NewRGBA(image.Rect(cx-half, cy-half, cx+half, cy+half))

	c := &canvas{dst: img, origin: img.Bounds().Min}
	c.fill(diskColor, func(z *vector.Rasterizer) {
		c.arc(z, l.Center, l.Inner, 0, 2*math.Pi, true)
		z.ClosePath()
	})

	n := v.sess.Len()
	if n == 0 {
		return img, nil
	}

	selected, _ := v.sess.Selected()
	for i := 0; i < n; i++ {
		col := neutralColor
		if i == selected {
			col = selectedColor
		}
		start, end := geometry.WedgeBounds(i, n)
		a0 := geometry.ScreenDegrees(start) * math.Pi / 180
		a1 := geometry.ScreenDegrees(end) * math.Pi / 180
		c.fill(col, func(z *vector.Rasterizer) {
			c.arc(z, l.Center, l.Outer, a0, a1, true)
			c.arc(z, l.Center, l.Inner, a1, a0, false)
			z.ClosePath()
		})
		v.drawIcon(img, i, l.IconCenter(i, n))
	}

	v.drawLabel(img, v.sess.Candidate(selected).Name, l)

	if v.tracked {
		a := geometry.ArrowGeometry(v.pointer.X, v.pointer.Y, l.Inner)
		tip := l.Center.Add(a.Tip)
		c.stroke(chevronColor, tip, l.Center.Add(a.Left), chevronWidth)
		c.stroke(chevronColor, tip, l.Center.Add(a.Right), chevronWidth)
	}
	return img, nil
}

func (v *View) drawIcon(dst *image.RGBA, i int, at geometry.Point) {
	icon, ok := v.icons[i]
	if !ok {
		if src := v.sess.Candidate(i).Icon; src != nil {
			icon = resize.Resize(iconSize, iconSize, src, resize.Bilinear)
		}
		v.icons[i] = icon
	}
	if icon == nil {
		return
	}
	x := int(math.Round(at.X)) - iconSize/2
	y := int(math.Round(at.Y)) - iconSize/2
	r := image.Rect(x, y, x+iconSize, y+iconSize)
	draw.Draw(dst, r, icon, icon.Bounds().Min, draw.Over)
}

// drawLabel centers name in a single-line box inside the inner disk. Names
// wider than the box are clipped on both sides.
func (v *View) drawLabel(dst *image.RGBA, name string, l geometry.Layout) {
	if name == "" {
		return
	}
	w := l.Inner * labelWidth
	box := image.Rect(
		int(math.Round(l.Center.X-w/2)), int(math.Round(l.Center.Y))-labelTop,
		int(math.Round(l.Center.X+w/2)), int(math.Round(l.Center.Y))-labelTop+labelHeight,
	)
	clip, ok := dst.SubImage(box).(*image.RGBA)
	if !ok || clip.Bounds().Empty() {
		return
	}

	d := &font.Drawer{Dst: clip, Src: image.NewUniform(labelColor), Face: v.face}
	m := v.face.Metrics()
	textHeight := m.Ascent + m.Descent
	baseline := fixed.I(box.Min.Y) + (fixed.I(labelHeight)-textHeight)/2 + m.Ascent
	advance := d.MeasureString(name)
	d.Dot = fixed.Point26_6{
		X: fixed.Int26_6(l.Center.X*64) - advance/2,
		Y: baseline,
	}
	d.DrawString(name)
}

// canvas maps surface coordinates onto a vector rasterizer sized to dst.
type canvas struct {
	dst    *image.RGBA
	origin image.Point
}

func (c *canvas) fill(col color.Color, path func(z *vector.Rasterizer)) {
	b := c.dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	path(z)
	z.Draw(c.dst, b, image.NewUniform(col), image.Point{})
}

func (c *canvas) local(p geometry.Point) (float32, float32) {
	return float32(p.X - float64(c.origin.X)), float32(p.Y - float64(c.origin.Y))
}

// arc appends a polyline arc from angle a0 to a1 (radians, screen convention).
// With move set it starts a new subpath, otherwise it continues the current one.
func (c *canvas) arc(z *vector.Rasterizer, center geometry.Point, r, a0, a1 float64, move bool) {
	steps := int(math.Ceil(math.Abs(a1-a0) / (math.Pi / 90)))
	if steps < 1 {
		steps = 1
	}
	for s := 0; s <= steps; s++ {
		t := a0 + (a1-a0)*float64(s)/float64(steps)
		x, y := c.local(geometry.Point{X: center.X + r*math.Cos(t), Y: center.Y + r*math.Sin(t)})
		if s == 0 && move {
			z.MoveTo(x, y)
			continue
		}
		z.LineTo(x, y)
	}
}

// stroke draws a straight segment of the given width as a filled quad.
func (c *canvas) stroke(col color.Color, from, to geometry.Point, width float64) {
	d := to.Sub(from)
	length := math.Hypot(d.X, d.Y)
	if length == 0 {
		return
	}
	nx, ny := -d.Y/length*width/2, d.X/length*width/2
	c.fill(col, func(z *vector.Rasterizer) {
		z.MoveTo(c.local(geometry.Point{X: from.X + nx, Y: from.Y + ny}))
		z.LineTo(c.local(geometry.Point{X: to.X + nx, Y: to.Y + ny}))
		z.LineTo(c.local(geometry.Point{X: to.X - nx, Y: to.Y - ny}))
		z.LineTo(c.local(geometry.Point{X: from.X - nx, Y: from.Y - ny}))
		z.ClosePath()
	})
}
