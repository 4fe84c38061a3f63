package main

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/goccy/go-graphviz"
)

// DOTOptions configures the visibility graph drawing
type DOTOptions struct {
	// Scale converts polygon units to inches for the pinned node positions
	Scale float64
	// SightLines draws the non-boundary visibility edges as dashed lines
	SightLines bool
}

// ToDOT draws the polygon, its sight lines and the guards as an undirected
// neato graph with every vertex pinned at its coordinates
func ToDOT(polygon Polygon, graph *VisibilityGraph, placement *GuardPlacement, opts DOTOptions) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	guards := make(map[int]bool)
	if placement != nil {
		for _, g := range placement.Guards {
			guards[g] = true
		}
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10, width=0.3, fixedsize=true];\n")
	buf.WriteString("\n")

	for i, v := range polygon.Vertices {
		attrs := fmt.Sprintf("label=\"v%d\", pos=\"%s,%s!\"", i, fmtCoord(v.X*scale), fmtCoord(v.Y*scale))
		if guards[i] {
			attrs += ", fillcolor=\"#d9534f\", fontcolor=white"
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", i, attrs)
	}

	buf.WriteString("\n")
	n := polygon.Len()
	for k := 0; k < n; k++ {
		fmt.Fprintf(&buf, "  %d -- %d [penwidth=2];\n", k, (k+1)%n)
	}

	if opts.SightLines && graph != nil {
		for _, e := range graph.Edges() {
			if polygon.Adjacent(e[0], e[1]) {
				continue
			}
			color := "grey"
			if guards[e[0]] || guards[e[1]] {
				color = "\"#d9534f\""
			}
			fmt.Fprintf(&buf, "  %d -- %d [style=dashed, color=%s];\n", e[0], e[1], color)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz with the neato engine
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
