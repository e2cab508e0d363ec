package wheel

import "math"

// Point is a position in surface-local coordinates.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned box; X and Y are its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Center returns the midpoint of r in r's own local coordinates.
func (r Rect) Center() Point {
	return Point{X: r.W / 2, Y: r.H / 2}
}

// angleDeg returns the angle of p around c in degrees, in (-180, 180].
func angleDeg(c, p Point) float64 {
	return math.Atan2(p.Y-c.Y, p.X-c.X) * 180 / math.Pi
}

// normalizeDelta folds d into [-180, 180).
func normalizeDelta(d float64) float64 {
	d = math.Mod(d+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}

// insideRotatedSquare reports whether p lies in the square of edge size
// centered on c and rotated by deg degrees.
func insideRotatedSquare(c, p Point, size, deg float64) bool {
	rad := -deg * math.Pi / 180
	dx, dy := p.X-c.X, p.Y-c.Y
	sin, cos := math.Sincos(rad)
	lx := dx*cos - dy*sin
	ly := dx*sin + dy*cos
	half := size / 2
	return math.Abs(lx) <= half && math.Abs(ly) <= half
}
