package main

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrientationOf(t *testing.T) {
	tests := []struct {
		name    string
		p, q, r Point
		want    Orientation
	}{
		{"left turn", Point{0, 0}, Point{1, 0}, Point{1, 1}, CounterClockwise},
		{"right turn", Point{0, 0}, Point{1, 1}, Point{1, 0}, Clockwise},
		{"straight", Point{0, 0}, Point{1, 1}, Point{2, 2}, Collinear},
		{"backtrack", Point{0, 0}, Point{2, 0}, Point{1, 0}, Collinear},
		{"repeated point", Point{3, 3}, Point{3, 3}, Point{5, 1}, Collinear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OrientationOf(tt.p, tt.q, tt.r))
		})
	}
}

func TestOrientation_SwapAndPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pt := func() Point { return Point{float64(rng.Intn(7)), float64(rng.Intn(7))} }

	for i := 0; i < 2000; i++ {
		p, q, r := pt(), pt(), pt()
		o := OrientationOf(p, q, r)
		swapped := OrientationOf(p, r, q)

		switch o {
		case Collinear:
			require.Equal(t, Collinear, swapped)
			for _, perm := range [][3]Point{{q, p, r}, {q, r, p}, {r, p, q}, {r, q, p}} {
				require.Equal(t, Collinear, OrientationOf(perm[0], perm[1], perm[2]))
			}
		case Clockwise:
			require.Equal(t, CounterClockwise, swapped)
		case CounterClockwise:
			require.Equal(t, Clockwise, swapped)
		}
	}
}

func TestPredicates_Epsilon(t *testing.T) {
	p, q, r := Point{0, 0}, Point{1, 0}, Point{2, 1e-12}

	assert.Equal(t, CounterClockwise, OrientationOf(p, q, r))
	assert.Equal(t, Collinear, Predicates{Epsilon: 1e-9}.Orientation(p, q, r))
}

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d Point
		want       bool
	}{
		{"proper crossing", Point{0, 0}, Point{2, 2}, Point{0, 2}, Point{2, 0}, true},
		{"parallel apart", Point{0, 0}, Point{1, 0}, Point{0, 1}, Point{1, 1}, false},
		{"endpoint touches interior", Point{0, 0}, Point{2, 0}, Point{1, 0}, Point{1, 1}, true},
		{"shared endpoint", Point{0, 0}, Point{1, 0}, Point{1, 0}, Point{1, 1}, true},
		{"collinear overlap", Point{0, 0}, Point{2, 0}, Point{1, 0}, Point{3, 0}, true},
		{"collinear apart", Point{0, 0}, Point{1, 0}, Point{2, 0}, Point{3, 0}, false},
		{"near miss", Point{0, 0}, Point{2, 0}, Point{1, 0.5}, Point{1, 2}, false},
		{"contained", Point{0, 0}, Point{4, 4}, Point{1, 1}, Point{2, 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SegmentsIntersect(tt.a, tt.b, tt.c, tt.d))
			assert.Equal(t, tt.want, exact.EdgesIntersect(LineSegment{tt.a, tt.b}, LineSegment{tt.c, tt.d}))
		})
	}
}

func TestSegmentsIntersect_Symmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	pt := func() Point { return Point{float64(rng.Intn(9)), float64(rng.Intn(9))} }

	for i := 0; i < 5000; i++ {
		a, b, c, d := pt(), pt(), pt(), pt()
		require.Equalf(t, SegmentsIntersect(a, b, c, d), SegmentsIntersect(c, d, a, b),
			"segments %v-%v and %v-%v", a, b, c, d)
	}
}

func TestOnSegment(t *testing.T) {
	assert.True(t, onSegment(Point{0, 0}, Point{1, 1}, Point{2, 2}))
	assert.True(t, onSegment(Point{2, 2}, Point{2, 2}, Point{0, 0}))
	assert.False(t, onSegment(Point{0, 0}, Point{3, 3}, Point{2, 2}))
}

func TestPointHelpers(t *testing.T) {
	assert.Equal(t, 5.0, Point{0, 0}.Distance(Point{3, 4}))
	assert.Equal(t, Point{1.5, 2}, Point{0, 0}.Midpoint(Point{3, 4}))
	assert.Equal(t, "clockwise", Clockwise.String())
	assert.Equal(t, "collinear", Collinear.String())
}
