// Package geometry maps pointer positions to wedge indices and wedge indices to
// drawable angles for the radial menu. It has no platform dependencies.
//
// Two angle conventions are used. Layout degrees put 0 at 12 o'clock and grow
// clockwise; wedge i of n covers [i*360/n, (i+1)*360/n). Screen degrees follow
// atan2 on y-down surface coordinates (0 along +x, clockwise on screen).
package geometry

import "math"

const (
	// outerDivisor and innerDivisor size the ring relative to the surface.
	outerDivisor = 3.0
	innerDivisor = 1.8

	arrowLengthFactor = 0.8
	arrowSideInset    = 5.0
	arrowSpread       = 0.1 // radians
)

// Point is a 2D point or offset in surface coordinates (y grows downward).
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// WedgeBounds returns the layout-degree interval of wedge index out of count.
// count must be >= 1.
func WedgeBounds(index, count int) (start, end float64) {
	step := 360.0 / float64(count)
	return step * float64(index), step * float64(index+1)
}

// ScreenDegrees converts a layout angle to screen degrees.
func ScreenDegrees(layout float64) float64 {
	return layout - 90
}

// SelectFromPointer returns the wedge under the direction (dx, dy) from the
// menu center. A direction exactly on an edge selects the wedge starting at
// that edge. ok is false when count is not positive.
func SelectFromPointer(dx, dy float64, count int) (index int, ok bool) {
	if count <= 0 {
		return 0, false
	}
	angle := math.Atan2(dy, dx) * 180 / math.Pi
	angle = math.Mod(angle+360, 360)
	angle = math.Mod(angle+90, 360)

	index = int(math.Floor(angle / (360.0 / float64(count))))
	if index < 0 {
		index = 0
	}
	if index > count-1 {
		index = count - 1
	}
	return index, true
}

// Arrow is the three-point chevron of the direction indicator, as offsets
// from the menu center.
type Arrow struct {
	Tip, Left, Right Point
}

// ArrowGeometry builds the chevron pointing along (dx, dy). The chevron only
// decorates the pointer direction; selection never reads it.
func ArrowGeometry(dx, dy, innerRadius float64) Arrow {
	theta := math.Atan2(dy, dx)
	length := innerRadius * arrowLengthFactor
	side := length - arrowSideInset
	return Arrow{
		Tip:   polar(length, theta),
		Left:  polar(side, theta-arrowSpread),
		Right: polar(side, theta+arrowSpread),
	}
}

// Layout holds the ring dimensions of one menu session.
type Layout struct {
	Center Point
	Outer  float64
	Inner  float64
}

// NewLayout centers the ring on a width x height surface.
func NewLayout(width, height float64) Layout {
	outer := math.Min(width, height) / outerDivisor
	return Layout{
		Center: Point{X: width / 2, Y: height / 2},
		Outer:  outer,
		Inner:  outer / innerDivisor,
	}
}

// Thickness is the radial width of the wedges.
func (l Layout) Thickness() float64 { return l.Outer - l.Inner }

// IconCenter returns the surface point at the mid-angle and mid-radius of a
// wedge.
func (l Layout) IconCenter(index, count int) Point {
	start, end := WedgeBounds(index, count)
	theta := ScreenDegrees((start+end)/2) * math.Pi / 180
	return l.Center.Add(polar(l.Inner+l.Thickness()/2, theta))
}

// Offset returns p relative to the ring center.
func (l Layout) Offset(p Point) Point { return p.Sub(l.Center) }

func polar(r, theta float64) Point {
	return Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}
