// Package geometry provides the immutable primitives every coordinate
// calculation in the engine is built on.
package geometry

import "math"

// Point is an immutable 2D coordinate. Operations return new Points.
type Point struct {
	X int
	Y int
}

// Offset returns a new Point translated by (dx, dy).
func (p Point) Offset(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Scale returns a new Point with both coordinates scaled uniformly,
// rounded up to the nearest integer.
func (p Point) Scale(factor float64) Point {
	return Point{
		X: int(math.Ceil(float64(p.X) * factor)),
		Y: int(math.Ceil(float64(p.Y) * factor)),
	}
}
