package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPolygon(t *testing.T) {
	tests := []struct {
		name      string
		points    []Point
		wantErr   error
		wantIndex int
	}{
		{"square", squarePoints(), nil, 0},
		{"too few", []Point{{0, 0}, {1, 0}}, ErrInvalidPolygon, -1},
		{"empty", nil, ErrInvalidPolygon, -1},
		{"consecutive duplicate", []Point{{0, 0}, {4, 0}, {4, 0}, {4, 4}}, ErrInvalidPolygon, 1},
		{"closing duplicate", []Point{{0, 0}, {4, 0}, {4, 4}, {0, 0}}, ErrInvalidPolygon, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			polygon, err := NewPolygon(tt.points)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, len(tt.points), polygon.Len())
				return
			}

			require.ErrorIs(t, err, tt.wantErr)
			var perr *PolygonError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.wantIndex, perr.Index)
		})
	}
}

func TestNewPolygon_Copies(t *testing.T) {
	points := squarePoints()
	polygon := mustPolygon(t, points)
	points[0] = Point{9, 9}
	assert.Equal(t, Point{0, 0}, polygon.Vertices[0])
}

func TestPolygon_EdgesAndAdjacency(t *testing.T) {
	polygon := mustPolygon(t, squarePoints())

	assert.Equal(t, LineSegment{Point{0, 4}, Point{0, 0}}, polygon.Edge(3))
	assert.True(t, polygon.Adjacent(0, 1))
	assert.True(t, polygon.Adjacent(0, 3))
	assert.True(t, polygon.Adjacent(3, 0))
	assert.False(t, polygon.Adjacent(0, 2))
}

func TestPolygon_ContainsAndArea(t *testing.T) {
	square := mustPolygon(t, squarePoints())
	assert.True(t, square.Contains(Point{2, 2}))
	assert.False(t, square.Contains(Point{5, 5}))
	assert.InDelta(t, 16.0, square.Area(), 1e-12)

	pentagon := mustPolygon(t, pentagonPoints())
	assert.True(t, pentagon.Contains(Point{1.5, 1}))
	assert.False(t, pentagon.Contains(Point{3, 4}))
}

func TestPolygon_CheckDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   bool
	}{
		{"square", squarePoints(), false},
		{"pentagon", pentagonPoints(), false},
		{"u shape", uPoints(), false},
		{"straight vertex", []Point{{0, 0}, {2, 0}, {4, 0}, {4, 4}, {0, 4}}, false},
		{"repeated vertex", []Point{{0, 0}, {4, 0}, {2, 2}, {4, 4}, {0, 4}, {2, 2}}, true},
		{"vertex on edge", []Point{{0, 0}, {4, 0}, {4, 4}, {2, 0}}, true},
		{"bowtie", []Point{{0, 0}, {2, 2}, {2, 0}, {0, 2}}, true},
		{"all collinear", []Point{{0, 0}, {1, 0}, {2, 0}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			polygon := mustPolygon(t, tt.points)
			err := polygon.CheckDegenerate(Predicates{})
			if tt.want {
				require.ErrorIs(t, err, ErrDegenerateInput)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
