package main

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Polygon is a simple closed boundary. Vertices are referenced everywhere by
// their position in Vertices; consecutive vertices, wrapping from last to
// first, form the edges.
type Polygon struct {
	Vertices []Point `json:"vertices"`
}

// NewPolygon copies points into a polygon and checks the structural rules:
// at least 3 vertices and no two consecutive vertices at the same coordinates.
func NewPolygon(points []Point) (Polygon, error) {
	n := len(points)
	if n < 3 {
		return Polygon{}, invalidPolygon(-1, "need at least 3 vertices, got %d", n)
	}
	for i := 0; i < n; i++ {
		if points[i] == points[(i+1)%n] {
			return Polygon{}, invalidPolygon(i, "vertices %d and %d coincide", i, (i+1)%n)
		}
	}

	vertices := make([]Point, n)
	copy(vertices, points)
	return Polygon{Vertices: vertices}, nil
}

// Len returns the number of vertices
func (p Polygon) Len() int {
	return len(p.Vertices)
}

// Edge returns boundary edge k, from vertex k to vertex k+1 (mod n)
func (p Polygon) Edge(k int) LineSegment {
	n := len(p.Vertices)
	return LineSegment{P1: p.Vertices[k], P2: p.Vertices[(k+1)%n]}
}

// Adjacent reports whether i and j are consecutive on the boundary
func (p Polygon) Adjacent(i, j int) bool {
	n := len(p.Vertices)
	return (i+1)%n == j || (j+1)%n == i
}

// Ring converts the boundary to a closed orb ring, first point repeated at the end
func (p Polygon) Ring() orb.Ring {
	ring := make(orb.Ring, 0, len(p.Vertices)+1)
	for _, v := range p.Vertices {
		ring = append(ring, orb.Point{v.X, v.Y})
	}
	if len(ring) > 0 {
		ring = append(ring, ring[0])
	}
	return ring
}

// Bound returns the axis-aligned bounding box of the boundary
func (p Polygon) Bound() orb.Bound {
	return p.Ring().Bound()
}

// Contains checks if a point is inside the polygon or on its boundary
func (p Polygon) Contains(point Point) bool {
	return planar.RingContains(p.Ring(), orb.Point{point.X, point.Y})
}

// Area returns the unsigned shoelace area
func (p Polygon) Area() float64 {
	return math.Abs(planar.Area(p.Ring()))
}

// CheckDegenerate reports configurations that make the boundary ambiguous:
// repeated coordinates, vertices touching a non-incident edge, crossing
// edges and boundaries with no turning vertex.
func (p Polygon) CheckDegenerate(pr Predicates) error {
	n := len(p.Vertices)

	seen := make(map[Point]int, n)
	for i, v := range p.Vertices {
		if first, ok := seen[v]; ok {
			return degenerateInput(i, "vertex %d repeats the coordinates of vertex %d", i, first)
		}
		seen[v] = i
	}

	turning := false
	for i := 0; i < n; i++ {
		a, b, c := p.Vertices[i], p.Vertices[(i+1)%n], p.Vertices[(i+2)%n]
		if pr.Orientation(a, b, c) != Collinear {
			turning = true
			continue
		}
		// The boundary folds back on itself at b
		if onSegment(a, c, b) || onSegment(b, a, c) {
			return degenerateInput((i+1)%n, "boundary folds back at vertex %d", (i+1)%n)
		}
	}
	if !turning {
		return degenerateInput(-1, "all vertices are collinear")
	}

	for k := 0; k < n; k++ {
		ek := p.Edge(k)
		for m := k + 2; m < n; m++ {
			if k == 0 && m == n-1 {
				continue // adjacent through the wrap
			}
			if pr.EdgesIntersect(ek, p.Edge(m)) {
				return degenerateInput(k, "edge %d touches or crosses edge %d", k, m)
			}
		}
	}

	return nil
}
