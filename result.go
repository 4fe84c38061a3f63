package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// SolveOptions configures one end to end run
type SolveOptions struct {
	Build BuildOptions `json:"build"`
	// Simplify runs Douglas-Peucker with this epsilon before building; 0 disables it.
	Simplify float64 `json:"simplify,omitempty"`
	// AutoSimplify derives the epsilon from the polygon extent when Simplify is 0.
	AutoSimplify bool `json:"autoSimplify,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Result bundles everything a presentation layer needs to draw a placement
type Result struct {
	Polygon    Polygon         `json:"polygon"`
	Visibility [][]int         `json:"visibility"`
	Placement  *GuardPlacement `json:"placement"`
	Options    BuildOptions    `json:"options"`

	graph *VisibilityGraph
}

// Graph returns the visibility graph. Results decoded from JSON only carry
// the rows, so the view is rebuilt from them.
func (r *Result) Graph() *VisibilityGraph {
	if r.graph != nil {
		return r.graph
	}
	return NewVisibilityGraphFromRows(r.Visibility)
}

// Solve validates the points, builds the visibility graph and places guards
func Solve(points []Point, opts SolveOptions) (*Result, error) {
	startTime := time.Now()
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if opts.Build.Logger == nil {
		opts.Build.Logger = logger
	}

	if opts.Simplify <= 0 && opts.AutoSimplify {
		opts.Simplify = EstimateSimplificationEpsilon(points)
	}
	if opts.Simplify > 0 {
		before := len(points)
		points = SimplifyPolygon(points, opts.Simplify)
		logger.Debug("polygon simplified", "before", before, "after", len(points), "epsilon", opts.Simplify)
	}

	polygon, err := NewPolygon(points)
	if err != nil {
		return nil, err
	}

	graph, err := BuildVisibilityGraph(polygon, opts.Build)
	if err != nil {
		return nil, err
	}

	placement, err := PlaceGuards(graph, polygon.Len(), logger)
	if err != nil {
		return nil, err
	}
	placement.Locate(polygon)

	logger.Debug("guards placed",
		"vertices", polygon.Len(), "guards", len(placement.Guards),
		"lowerBound", placement.LowerBound, "elapsed", time.Since(startTime).Round(time.Microsecond))

	return &Result{
		Polygon:    polygon,
		Visibility: graph.Rows(),
		Placement:  placement,
		Options:    opts.Build,
		graph:      graph,
	}, nil
}

// SaveResult serializes and saves a result to a JSON file
func SaveResult(result *Result, filename string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// LoadResult deserializes a result saved by SaveResult
func LoadResult(filename string) (*Result, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	if result.Placement == nil {
		return nil, fmt.Errorf("result has no placement")
	}
	if len(result.Visibility) != result.Polygon.Len() {
		return nil, fmt.Errorf("result has %d visibility rows for %d vertices",
			len(result.Visibility), result.Polygon.Len())
	}
	for _, g := range result.Placement.Guards {
		if g < 0 || g >= result.Polygon.Len() {
			return nil, fmt.Errorf("result guard %d is not a vertex index", g)
		}
	}
	return &result, nil
}
