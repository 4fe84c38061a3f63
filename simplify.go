package main

import (
	"math"
)

// SimplifyPolygon reduces boundary complexity using Douglas-Peucker.
// The ring is split at vertex 0 and the vertex farthest from it, each chain is
// simplified on its own and the two are joined again, so vertex 0 always survives.
// If fewer than 3 vertices would remain the input is returned unchanged.
func SimplifyPolygon(points []Point, epsilon float64) []Point {
	n := len(points)
	if n <= 3 || epsilon <= 0 {
		return points
	}

	far := 0
	dmax := -1.0
	for i := 1; i < n; i++ {
		if d := points[0].Distance(points[i]); d > dmax {
			far, dmax = i, d
		}
	}

	first := douglasPeucker(points[:far+1], epsilon)
	second := douglasPeucker(append(append([]Point{}, points[far:]...), points[0]), epsilon)

	simplified := make([]Point, 0, len(first)+len(second))
	simplified = append(simplified, first...)
	// second starts at points[far] and ends at points[0], both already present
	simplified = append(simplified, second[1:len(second)-1]...)

	if len(simplified) < 3 {
		return points
	}
	return simplified
}

// douglasPeucker keeps the endpoints of an open chain and every vertex that
// lies farther than epsilon from the chord of the span it splits
func douglasPeucker(points []Point, epsilon float64) []Point {
	if len(points) <= 2 {
		return points
	}

	keep := make([]bool, len(points))
	keep[0], keep[len(points)-1] = true, true

	spans := [][2]int{{0, len(points) - 1}}
	for len(spans) > 0 {
		first, last := spans[len(spans)-1][0], spans[len(spans)-1][1]
		spans = spans[:len(spans)-1]

		split, farthest := -1, epsilon
		for i := first + 1; i < last; i++ {
			if d := perpendicularDistance(points[i], points[first], points[last]); d > farthest {
				split, farthest = i, d
			}
		}
		if split < 0 {
			continue
		}
		keep[split] = true
		spans = append(spans, [2]int{first, split}, [2]int{split, last})
	}

	kept := make([]Point, 0, len(points))
	for i, p := range points {
		if keep[i] {
			kept = append(kept, p)
		}
	}
	return kept
}

// perpendicularDistance is the distance from point to the line through
// lineStart and lineEnd, or to lineStart when the two coincide
func perpendicularDistance(point, lineStart, lineEnd Point) float64 {
	length := lineStart.Distance(lineEnd)
	if length == 0 {
		return point.Distance(lineStart)
	}
	return math.Abs(cross(lineStart, lineEnd, point)) / length
}

// EstimateSimplificationEpsilon suggests an epsilon from the polygon extent,
// growing with the vertex count so large inputs shrink more
func EstimateSimplificationEpsilon(points []Point) float64 {
	if len(points) == 0 {
		return 0
	}

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y
	for _, p := range points[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	extent := math.Max(maxX-minX, maxY-minY)

	switch n := len(points); {
	case n > 5000:
		return extent * 0.005
	case n > 1000:
		return extent * 0.002
	case n > 200:
		return extent * 0.001
	}
	return extent * 0.0005
}
