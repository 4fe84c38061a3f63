package main

import "math"

// Point is a polygon corner in plane coordinates
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance calculates Euclidean distance between two points
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Midpoint returns the point halfway between p and other
func (p Point) Midpoint(other Point) Point {
	return Point{X: (p.X + other.X) / 2, Y: (p.Y + other.Y) / 2}
}

// LineSegment represents a line segment between two points
type LineSegment struct {
	P1, P2 Point
}

// Orientation is the rotational sense of an ordered triple of points
type Orientation int

const (
	Collinear Orientation = iota
	Clockwise
	CounterClockwise
)

func (o Orientation) String() string {
	switch o {
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counterclockwise"
	default:
		return "collinear"
	}
}

// Predicates evaluates orientation and intersection tests. Epsilon is the
// largest cross product magnitude still treated as collinear; the zero value
// compares against exactly zero.
type Predicates struct {
	Epsilon float64
}

// exact is the predicate set used by the package level helpers
var exact = Predicates{}

// cross is the turn value of p -> q -> r. Positive means a right turn.
func cross(p, q, r Point) float64 {
	return (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
}

// Orientation classifies the turn p -> q -> r
func (pr Predicates) Orientation(p, q, r Point) Orientation {
	val := cross(p, q, r)
	switch {
	case math.Abs(val) <= pr.Epsilon:
		return Collinear
	case val > 0:
		return Clockwise
	default:
		return CounterClockwise
	}
}

// SegmentsIntersect checks if segment ab and segment cd share at least one point
func (pr Predicates) SegmentsIntersect(a, b, c, d Point) bool {
	o1 := pr.Orientation(a, c, d)
	o2 := pr.Orientation(b, c, d)
	o3 := pr.Orientation(a, b, c)
	o4 := pr.Orientation(a, b, d)

	// General case
	if o1 != o2 && o3 != o4 {
		return true
	}

	// An endpoint of one segment lies on the other
	if o1 == Collinear && onSegment(c, a, d) {
		return true
	}
	if o2 == Collinear && onSegment(c, b, d) {
		return true
	}
	if o3 == Collinear && onSegment(a, c, b) {
		return true
	}
	if o4 == Collinear && onSegment(a, d, b) {
		return true
	}

	return false
}

// OrientationOf classifies the turn p -> q -> r with exact zero comparison
func OrientationOf(p, q, r Point) Orientation {
	return exact.Orientation(p, q, r)
}

// SegmentsIntersect checks if two segments intersect with exact zero comparison
func SegmentsIntersect(a, b, c, d Point) bool {
	return exact.SegmentsIntersect(a, b, c, d)
}

// EdgesIntersect checks if two line segments share at least one point
func (pr Predicates) EdgesIntersect(e1, e2 LineSegment) bool {
	return pr.SegmentsIntersect(e1.P1, e1.P2, e2.P1, e2.P2)
}

// onSegment checks if q lies inside the bounding box of segment pr.
// Only meaningful when p, q and r are already known to be collinear.
func onSegment(p, q, r Point) bool {
	return q.X <= math.Max(p.X, r.X) && q.X >= math.Min(p.X, r.X) &&
		q.Y <= math.Max(p.Y, r.Y) && q.Y >= math.Min(p.Y, r.Y)
}
