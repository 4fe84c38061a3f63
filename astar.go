package main

import (
	"container/heap"
	"fmt"
	"math"
	"slices"
)

// frontierItem is a vertex waiting in the open set of the search
type frontierItem struct {
	vertex int
	// priority is the cost so far plus the straight line distance to the goal
	priority float64
	slot     int
}

// frontier is a min-heap on priority, lower vertex first on ties
type frontier []*frontierItem

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].priority != f[j].priority {
		return f[i].priority < f[j].priority
	}
	return f[i].vertex < f[j].vertex
}

func (f frontier) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
	f[i].slot, f[j].slot = i, j
}

func (f *frontier) Push(x any) {
	item := x.(*frontierItem)
	item.slot = len(*f)
	*f = append(*f, item)
}

func (f *frontier) Pop() any {
	old := *f
	item := old[len(old)-1]
	old[len(old)-1] = nil
	*f = old[:len(old)-1]
	item.slot = -1
	return item
}

// Route is a path between two vertices along sight lines
type Route struct {
	Vertices []int   `json:"vertices"`
	Points   []Point `json:"points"`
	Length   float64 `json:"length"`
}

// ShortestPath finds the shortest route from one vertex to another moving only
// along sight lines of the visibility graph
func ShortestPath(polygon Polygon, visibility *VisibilityGraph, from, to int) (*Route, error) {
	n := polygon.Len()
	if from < 0 || from >= n || to < 0 || to >= n {
		return nil, fmt.Errorf("vertex out of range: from %d, to %d, polygon has %d vertices", from, to, n)
	}
	if visibility.Len() != n {
		return nil, fmt.Errorf("visibility graph has %d vertices, polygon has %d", visibility.Len(), n)
	}

	vertices, length, ok := AStarPathOnGraph(visibility.Weighted(polygon), from, to)
	if !ok {
		return nil, fmt.Errorf("%w: vertex %d to vertex %d", ErrNoPath, from, to)
	}

	points := make([]Point, len(vertices))
	for i, v := range vertices {
		points[i] = polygon.Vertices[v]
	}
	return &Route{Vertices: vertices, Points: points, Length: length}, nil
}

// AStarPathOnGraph computes the shortest path using A* with a straight line heuristic.
// It returns the vertex sequence, its total cost and whether end is reachable.
func AStarPathOnGraph(graph *Graph, startIdx, endIdx int) ([]int, float64, bool) {
	if graph == nil || len(graph.Nodes) == 0 {
		return []int{}, 0, false
	}

	n := len(graph.Nodes)
	goal := graph.Nodes[endIdx]
	cost := make([]float64, n)
	prev := make([]int, n)
	for v := range cost {
		cost[v] = math.Inf(1)
		prev[v] = -1
	}
	queued := make([]*frontierItem, n)
	settled := make([]bool, n)

	open := &frontier{}
	enqueue := func(v int) {
		queued[v] = &frontierItem{vertex: v, priority: cost[v] + graph.Nodes[v].Distance(goal)}
		heap.Push(open, queued[v])
	}

	cost[startIdx] = 0
	enqueue(startIdx)

	for open.Len() > 0 {
		v := heap.Pop(open).(*frontierItem).vertex
		queued[v] = nil
		if v == endIdx {
			return walkBack(prev, v), cost[v], true
		}
		settled[v] = true

		for _, edge := range graph.Edges[v] {
			w := edge.To
			if settled[w] || cost[v]+edge.Cost >= cost[w] {
				continue
			}
			cost[w], prev[w] = cost[v]+edge.Cost, v

			if item := queued[w]; item != nil {
				item.priority = cost[w] + graph.Nodes[w].Distance(goal)
				heap.Fix(open, item.slot)
			} else {
				enqueue(w)
			}
		}
	}

	return []int{}, 0, false
}

// walkBack follows predecessor links from v to the start
func walkBack(prev []int, v int) []int {
	path := []int{}
	for ; v >= 0; v = prev[v] {
		path = append(path, v)
	}
	slices.Reverse(path)
	return path
}
