package main

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
)

// EdgeEntry wraps a boundary edge for R-tree storage
type EdgeEntry struct {
	Index int
	BBox  rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *EdgeEntry) Bounds() rtreego.Rect {
	return e.BBox
}

// EdgeIndex answers which boundary edges can touch a given segment
type EdgeIndex struct {
	tree *rtreego.Rtree
	pad  float64
}

// NewEdgeIndex builds an R-tree over the bounding boxes of every polygon edge.
// Boxes are padded so that axis-parallel edges still get a positive extent;
// queries therefore return a superset of the edges that can intersect.
func NewEdgeIndex(polygon Polygon) *EdgeIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node
	pad := boundingPad(polygon)

	for k := 0; k < polygon.Len(); k++ {
		edge := polygon.Edge(k)
		bbox, err := segmentBoundingBox(edge.P1, edge.P2, pad)
		if err == nil {
			tree.Insert(&EdgeEntry{Index: k, BBox: bbox})
		}
	}

	return &EdgeIndex{tree: tree, pad: pad}
}

// Candidates returns the indices of edges whose box overlaps the box of ab,
// in ascending order. It returns nil if the query box cannot be built.
func (ei *EdgeIndex) Candidates(a, b Point) []int {
	bbox, err := segmentBoundingBox(a, b, ei.pad)
	if err != nil {
		return nil
	}

	results := ei.tree.SearchIntersect(bbox)
	edges := make([]int, 0, len(results))
	for _, item := range results {
		entry := item.(*EdgeEntry)
		edges = append(edges, entry.Index)
	}
	sort.Ints(edges)

	return edges
}

// Size returns the number of indexed edges
func (ei *EdgeIndex) Size() int {
	return ei.tree.Size()
}

// segmentBoundingBox computes the padded axis-aligned bounding box of segment ab
func segmentBoundingBox(a, b Point, pad float64) (rtreego.Rect, error) {
	minX, maxX := math.Min(a.X, b.X)-pad, math.Max(a.X, b.X)+pad
	minY, maxY := math.Min(a.Y, b.Y)-pad, math.Max(a.Y, b.Y)+pad

	return rtreego.NewRect(
		rtreego.Point{minX, minY},
		[]float64{maxX - minX, maxY - minY},
	)
}

// boundingPad scales the box padding with the polygon extent
func boundingPad(polygon Polygon) float64 {
	bound := polygon.Bound()
	extent := math.Max(bound.Max[0]-bound.Min[0], bound.Max[1]-bound.Min[1])
	largest := math.Max(
		math.Max(math.Abs(bound.Min[0]), math.Abs(bound.Max[0])),
		math.Max(math.Abs(bound.Min[1]), math.Abs(bound.Max[1])),
	)
	return 1e-9 * (1 + extent + largest)
}
