package main

import (
	"slices"
	"sort"
)

// VisibilityGraph maps every vertex index to the sorted indices it can see.
// It is symmetric and read-only once built.
type VisibilityGraph struct {
	rows [][]int
}

// newVisibilityGraph builds a graph from an unordered pair list
func newVisibilityGraph(n int, pairs [][2]int) *VisibilityGraph {
	rows := make([][]int, n)
	for i := range rows {
		rows[i] = []int{}
	}
	for _, pr := range pairs {
		rows[pr[0]] = append(rows[pr[0]], pr[1])
		rows[pr[1]] = append(rows[pr[1]], pr[0])
	}
	for _, row := range rows {
		sort.Ints(row)
	}
	return &VisibilityGraph{rows: rows}
}

// NewVisibilityGraphFromRows wraps precomputed adjacency rows, e.g. from a
// saved result. Rows are copied, sorted and deduplicated; symmetry is not enforced.
func NewVisibilityGraphFromRows(rows [][]int) *VisibilityGraph {
	cp := make([][]int, len(rows))
	for i, row := range rows {
		cp[i] = append([]int{}, row...)
		sort.Ints(cp[i])
		cp[i] = slices.Compact(cp[i])
	}
	return &VisibilityGraph{rows: cp}
}

// Len returns the number of vertices
func (g *VisibilityGraph) Len() int {
	return len(g.rows)
}

// Neighbors returns the vertices visible from i. The slice must not be modified.
func (g *VisibilityGraph) Neighbors(i int) []int {
	return g.rows[i]
}

// Degree returns how many vertices i can see
func (g *VisibilityGraph) Degree(i int) int {
	return len(g.rows[i])
}

// Visible reports whether j is in the visibility set of i
func (g *VisibilityGraph) Visible(i, j int) bool {
	row := g.rows[i]
	k := sort.SearchInts(row, j)
	return k < len(row) && row[k] == j
}

// Rows returns a copy of the adjacency rows
func (g *VisibilityGraph) Rows() [][]int {
	rows := make([][]int, len(g.rows))
	for i, row := range g.rows {
		rows[i] = append([]int{}, row...)
	}
	return rows
}

// Edges returns each visible pair once, as (i, j) with i < j, in ascending order
func (g *VisibilityGraph) Edges() [][2]int {
	edges := make([][2]int, 0)
	for i, row := range g.rows {
		for _, j := range row {
			if i < j {
				edges = append(edges, [2]int{i, j})
			}
		}
	}
	return edges
}

// IsSymmetric checks that j sees i whenever i sees j
func (g *VisibilityGraph) IsSymmetric() bool {
	for i, row := range g.rows {
		for _, j := range row {
			if j < 0 || j >= len(g.rows) || !g.Visible(j, i) {
				return false
			}
		}
	}
	return true
}

// LineStrings returns the sight lines as point pairs for visualization
func (g *VisibilityGraph) LineStrings(polygon Polygon) [][]Point {
	edges := g.Edges()
	lines := make([][]Point, 0, len(edges))
	for _, e := range edges {
		lines = append(lines, []Point{polygon.Vertices[e[0]], polygon.Vertices[e[1]]})
	}
	return lines
}

// Graph is a weighted view of a visibility graph used for routing
type Graph struct {
	Nodes []Point
	Edges [][]Edge
}

// Edge represents a connection between two nodes with a cost
type Edge struct {
	To   int     // Index of the destination node
	Cost float64 // Euclidean distance
}

// Weighted converts the visibility graph into a Graph with Euclidean edge costs
func (g *VisibilityGraph) Weighted(polygon Polygon) *Graph {
	graph := &Graph{
		Nodes: append([]Point{}, polygon.Vertices...),
		Edges: make([][]Edge, len(g.rows)),
	}

	for i, row := range g.rows {
		edges := make([]Edge, 0, len(row))
		for _, j := range row {
			edges = append(edges, Edge{
				To:   j,
				Cost: polygon.Vertices[i].Distance(polygon.Vertices[j]),
			})
		}
		graph.Edges[i] = edges
	}

	return graph
}
