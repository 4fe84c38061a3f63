package main

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// GuardPlacement is the output of the greedy cover
type GuardPlacement struct {
	// Guards in the order they were selected
	Guards      []int   `json:"guards"`
	Coordinates []Point `json:"coordinates,omitempty"`
	Iterations  int     `json:"iterations"`
	Covered     int     `json:"covered"`
	// LowerBound is floor(n/3), reported for comparison only
	LowerBound int `json:"lowerBound"`
}

// Locate fills in the coordinates of the chosen guards
func (gp *GuardPlacement) Locate(polygon Polygon) {
	gp.Coordinates = make([]Point, len(gp.Guards))
	for i, g := range gp.Guards {
		gp.Coordinates[i] = polygon.Vertices[g]
	}
}

// CoveredBy returns the guards that cover vertex v, in selection order
func (gp *GuardPlacement) CoveredBy(graph *VisibilityGraph, v int) []int {
	var by []int
	for _, g := range gp.Guards {
		if g == v || graph.Visible(g, v) {
			by = append(by, g)
		}
	}
	return by
}

// TheoreticalGuardBound is the art gallery bound floor(n/3)
func TheoreticalGuardBound(n int) int {
	return n / 3
}

// coverState is the solver state between iterations
type coverState struct {
	covered []bool
	count   int
	guards  []int
}

func newCoverState(n int) *coverState {
	return &coverState{covered: make([]bool, n), guards: []int{}}
}

func (s *coverState) done() bool {
	return s.count == len(s.covered)
}

// gain counts the uncovered vertices in a visibility row
func (s *coverState) gain(row []int) int {
	count := 0
	for _, v := range row {
		if v >= 0 && v < len(s.covered) && !s.covered[v] {
			count++
		}
	}
	return count
}

// mark covers v and returns true if it was not covered yet
func (s *coverState) mark(v int) bool {
	if v < 0 || v >= len(s.covered) || s.covered[v] {
		return false
	}
	s.covered[v] = true
	s.count++
	return true
}

// firstUncovered returns the lowest uncovered index or -1
func (s *coverState) firstUncovered() int {
	for v, ok := range s.covered {
		if !ok {
			return v
		}
	}
	return -1
}

// PlaceGuards runs greedy set cover over the visibility graph: each step picks
// the vertex whose visibility set holds the most uncovered vertices, the lowest
// index winning ties, then marks that set and the guard itself covered. The
// result covers all n vertices but is not guaranteed minimal.
func PlaceGuards(graph *VisibilityGraph, n int, logger *log.Logger) (*GuardPlacement, error) {
	if graph.Len() != n {
		return nil, fmt.Errorf("visibility graph has %d vertices, expected %d", graph.Len(), n)
	}
	if logger == nil {
		logger = log.Default()
	}

	state := newCoverState(n)
	iterations := 0

	for !state.done() {
		best, bestGain := -1, 0
		for candidate := 0; candidate < n; candidate++ {
			gain := state.gain(graph.Neighbors(candidate))
			if gain > bestGain {
				best, bestGain = candidate, gain
			}
		}

		if best < 0 {
			return nil, &UnreachableVertexError{
				Vertex:  state.firstUncovered(),
				Covered: state.count,
				Total:   n,
			}
		}

		iterations++
		state.guards = append(state.guards, best)
		for _, v := range graph.Neighbors(best) {
			state.mark(v)
		}
		state.mark(best)

		logger.Debug("guard selected", "vertex", best, "gain", bestGain, "covered", state.count, "of", n)
	}

	return &GuardPlacement{
		Guards:     state.guards,
		Iterations: iterations,
		Covered:    state.count,
		LowerBound: TheoreticalGuardBound(n),
	}, nil
}
