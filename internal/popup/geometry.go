package popup

// Point is a position in window coordinates (logical pixels, origin top-left).
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in window coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether p lies inside r. The right and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}
