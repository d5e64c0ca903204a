package geometry

import "math"

// Region is an immutable axis-aligned rectangle. The zero-size Region
// (width and height both zero) is the "whole screenshot" sentinel.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Infinite returns the sentinel Region for "unknown extent": no previous
// screenshot exists yet, so the bounds have no representable upper limit.
// math.MaxInt32 is used explicitly rather than relying on overflow.
func Infinite() Region {
	return Region{X: 0, Y: 0, Width: math.MaxInt32, Height: math.MaxInt32}
}

// IsEmpty reports whether the Region is the empty sentinel.
func (r Region) IsEmpty() bool {
	return r.Width == 0 && r.Height == 0
}

// Location returns the top-left corner.
func (r Region) Location() Point {
	return Point{X: r.X, Y: r.Y}
}

// Left returns the x coordinate of the left edge.
func (r Region) Left() int { return r.X }

// Top returns the y coordinate of the top edge.
func (r Region) Top() int { return r.Y }

// Right returns the x coordinate one past the right edge.
func (r Region) Right() int { return r.X + r.Width }

// Bottom returns the y coordinate one past the bottom edge.
func (r Region) Bottom() int { return r.Y + r.Height }

// Contains reports whether p lies inside the Region.
func (r Region) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Intersect returns the overlap of r and other, or the empty Region when
// they are disjoint.
func (r Region) Intersect(other Region) Region {
	left := max(r.X, other.X)
	top := max(r.Y, other.Y)
	right := min(r.Right(), other.Right())
	bottom := min(r.Bottom(), other.Bottom())
	if right <= left || bottom <= top {
		return Region{}
	}
	return Region{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// Offset returns a new Region translated by (dx, dy).
func (r Region) Offset(dx, dy int) Region {
	return Region{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Scale returns a new Region with location and size scaled uniformly,
// rounded up to the nearest integer.
func (r Region) Scale(factor float64) Region {
	return Region{
		X:      int(math.Ceil(float64(r.X) * factor)),
		Y:      int(math.Ceil(float64(r.Y) * factor)),
		Width:  int(math.Ceil(float64(r.Width) * factor)),
		Height: int(math.Ceil(float64(r.Height) * factor)),
	}
}
