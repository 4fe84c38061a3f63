package main

import (
	"io"
	"math"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

func squarePoints() []Point {
	return []Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
}

// pentagonPoints has a concave notch at vertex 3
func pentagonPoints() []Point {
	return []Point{{0, 0}, {6, 0}, {6, 4}, {3, 2}, {0, 4}}
}

// uPoints is a U with the opening at the top between vertices 3 and 6
func uPoints() []Point {
	return []Point{{0, 0}, {6, 0}, {6, 6}, {4, 6}, {4, 2}, {2, 2}, {2, 6}, {0, 6}}
}

// starPoints generates a polygon that is star-shaped around the origin. Angular
// gaps stay below pi for n >= 4, so the boundary is simple.
func starPoints(rng *rand.Rand, n int) []Point {
	points := make([]Point, n)
	for i := range points {
		a := (float64(i) + rng.Float64()*0.5) / float64(n) * 2 * math.Pi
		r := 1 + rng.Float64()*9
		points[i] = Point{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}
	return points
}

func mustPolygon(t *testing.T, points []Point) Polygon {
	t.Helper()
	polygon, err := NewPolygon(points)
	require.NoError(t, err)
	return polygon
}

func mustGraph(t *testing.T, points []Point, opts BuildOptions) (Polygon, *VisibilityGraph) {
	t.Helper()
	polygon := mustPolygon(t, points)
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}
	graph, err := BuildVisibilityGraph(polygon, opts)
	require.NoError(t, err)
	return polygon, graph
}

// requireCover checks that guards plus everything they see is every vertex
func requireCover(t *testing.T, graph *VisibilityGraph, guards []int, n int) {
	t.Helper()
	covered := make(map[int]bool)
	for _, g := range guards {
		covered[g] = true
		for _, v := range graph.Neighbors(g) {
			covered[v] = true
		}
	}
	for v := 0; v < n; v++ {
		require.Truef(t, covered[v], "vertex %d not covered by guards %v", v, guards)
	}
}
