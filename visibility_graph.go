package main

import (
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// DefaultIndexThreshold is the vertex count from which edge scans go through an R-tree
const DefaultIndexThreshold = 32

// BuildOptions tunes visibility graph construction. The zero value compares
// exactly and only tests boundary crossings, on a single goroutine.
type BuildOptions struct {
	// Epsilon is the collinearity tolerance of the orientation test.
	Epsilon float64 `json:"epsilon,omitempty"`
	// RequireInterior also rejects sight lines whose midpoint lies outside the polygon.
	RequireInterior bool `json:"requireInterior,omitempty"`
	// AllowDegenerate skips the duplicate, touching and crossing edge checks.
	AllowDegenerate bool `json:"allowDegenerate,omitempty"`
	// Workers is the number of goroutines computing rows; <= 1 runs sequentially,
	// -1 uses GOMAXPROCS.
	Workers int `json:"workers,omitempty"`
	// IndexThreshold enables the edge R-tree for polygons with at least this
	// many vertices. 0 means DefaultIndexThreshold, negative disables it.
	IndexThreshold int `json:"indexThreshold,omitempty"`

	Logger *log.Logger `json:"-"`
}

func (o BuildOptions) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

// validate rejects tolerances that would silently change the predicates
func (o BuildOptions) validate() error {
	if math.IsNaN(o.Epsilon) || math.IsInf(o.Epsilon, 0) || o.Epsilon < 0 {
		return fmt.Errorf("%w: epsilon must be a finite value >= 0, got %v", ErrInvalidOptions, o.Epsilon)
	}
	return nil
}

func (o BuildOptions) workers() int {
	if o.Workers < 0 {
		return runtime.GOMAXPROCS(0)
	}
	if o.Workers == 0 {
		return 1
	}
	return o.Workers
}

// visibilityBuilder holds the read-only state shared by every pair test
type visibilityBuilder struct {
	polygon Polygon
	pr      Predicates
	index   *EdgeIndex
	opts    BuildOptions
}

// BuildVisibilityGraph decides for every pair of distinct vertices whether the
// straight segment between them is a line of sight. Boundary neighbours always
// see each other; any other pair is visible when the segment touches no edge
// that does not start or end at one of the two vertices.
//
// Without RequireInterior this is a boundary crossing test only: a segment can
// cross nothing and still run outside a concave polygon.
func BuildVisibilityGraph(polygon Polygon, opts BuildOptions) (*VisibilityGraph, error) {
	startTime := time.Now()
	logger := opts.logger()

	if err := opts.validate(); err != nil {
		return nil, err
	}
	if _, err := NewPolygon(polygon.Vertices); err != nil {
		return nil, err
	}

	b := &visibilityBuilder{
		polygon: polygon,
		pr:      Predicates{Epsilon: opts.Epsilon},
		opts:    opts,
	}

	if !opts.AllowDegenerate {
		if err := polygon.CheckDegenerate(b.pr); err != nil {
			return nil, err
		}
	}

	n := polygon.Len()
	threshold := opts.IndexThreshold
	if threshold == 0 {
		threshold = DefaultIndexThreshold
	}
	// Padded boxes only bound exact intersections, so the index is skipped under a tolerance.
	if threshold > 0 && n >= threshold && opts.Epsilon == 0 {
		b.index = NewEdgeIndex(polygon)
	}

	indexedEdges := 0
	if b.index != nil {
		indexedEdges = b.index.Size()
	}

	totalPairs := n * (n - 1) / 2
	logger.Debug("building visibility graph",
		"vertices", n, "pairs", totalPairs, "indexedEdges", indexedEdges,
		"workers", opts.workers(), "interior", opts.RequireInterior)

	// rows[i] collects the j > i visible from i
	rows := make([][]int, n)

	var g errgroup.Group
	g.SetLimit(opts.workers())
	for i := 0; i < n; i++ {
		g.Go(func() error {
			row := make([]int, 0)
			for j := i + 1; j < n; j++ {
				if b.visible(i, j) {
					row = append(row, j)
				}
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build visibility graph: %w", err)
	}

	pairs := make([][2]int, 0)
	for i, row := range rows {
		for _, j := range row {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	graph := newVisibilityGraph(n, pairs)

	logger.Debug("visibility graph built",
		"edges", len(pairs), "of", totalPairs, "elapsed", time.Since(startTime).Round(time.Microsecond))

	return graph, nil
}

// visible tests the pair (i, j), always with the lower index first so the
// predicate sees the same arguments whichever row asks
func (b *visibilityBuilder) visible(i, j int) bool {
	if i > j {
		i, j = j, i
	}
	if b.polygon.Adjacent(i, j) {
		return true
	}

	vi, vj := b.polygon.Vertices[i], b.polygon.Vertices[j]
	n := b.polygon.Len()

	blocked := func(k int) bool {
		if incident(k, i, n) || incident(k, j, n) {
			return false
		}
		edge := b.polygon.Edge(k)
		return b.pr.SegmentsIntersect(vi, vj, edge.P1, edge.P2)
	}

	var candidates []int
	if b.index != nil {
		candidates = b.index.Candidates(vi, vj)
	}
	if candidates != nil {
		for _, k := range candidates {
			if blocked(k) {
				return false
			}
		}
	} else {
		for k := 0; k < n; k++ {
			if blocked(k) {
				return false
			}
		}
	}

	if b.opts.RequireInterior && !b.polygon.Contains(vi.Midpoint(vj)) {
		return false
	}

	return true
}

// incident reports whether edge k starts or ends at vertex v
func incident(k, v, n int) bool {
	return k == v || (k+1)%n == v
}
