package main

import (
	"errors"
	"fmt"
)

// Sentinel errors for polygon validation and guard placement.
var (
	// ErrInvalidPolygon is returned for fewer than 3 vertices or coincident consecutive vertices.
	ErrInvalidPolygon = errors.New("invalid polygon")

	// ErrDegenerateInput is returned when duplicate coordinates or collinear
	// configurations make the boundary ambiguous.
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrUnreachableVertex is returned when the greedy solver stops making progress.
	ErrUnreachableVertex = errors.New("unreachable vertex")

	// ErrInvalidOptions is returned for build options outside their domain, such as a negative epsilon.
	ErrInvalidOptions = errors.New("invalid options")

	// ErrNoPath is returned when two vertices are not connected in the visibility graph.
	ErrNoPath = errors.New("no path")
)

// PolygonError describes which vertex made a polygon invalid or degenerate.
type PolygonError struct {
	Kind   error // ErrInvalidPolygon or ErrDegenerateInput
	Index  int   // offending vertex or edge index, -1 when not applicable
	Reason string
}

func (e *PolygonError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%v: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("%v: %s (index %d)", e.Kind, e.Reason, e.Index)
}

// Unwrap returns the sentinel kind.
func (e *PolygonError) Unwrap() error { return e.Kind }

func invalidPolygon(index int, format string, args ...any) error {
	return &PolygonError{Kind: ErrInvalidPolygon, Index: index, Reason: fmt.Sprintf(format, args...)}
}

func degenerateInput(index int, format string, args ...any) error {
	return &PolygonError{Kind: ErrDegenerateInput, Index: index, Reason: fmt.Sprintf(format, args...)}
}

// UnreachableVertexError reports the first vertex no guard can cover.
type UnreachableVertexError struct {
	Vertex  int
	Covered int
	Total   int
}

func (e *UnreachableVertexError) Error() string {
	return fmt.Sprintf("%v: vertex %d cannot be covered (%d/%d covered)",
		ErrUnreachableVertex, e.Vertex, e.Covered, e.Total)
}

// Unwrap returns ErrUnreachableVertex.
func (e *UnreachableVertexError) Unwrap() error { return ErrUnreachableVertex }
