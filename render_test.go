package main

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDOT(t *testing.T) {
	polygon, graph := mustGraph(t, pentagonPoints(), BuildOptions{})
	placement := &GuardPlacement{Guards: []int{3}}

	dot := ToDOT(polygon, graph, placement, DOTOptions{Scale: 0.5, SightLines: true})

	assert.True(t, strings.HasPrefix(dot, "graph G {\n"))
	assert.Contains(t, dot, "layout=neato;")
	assert.Contains(t, dot, `0 [label="v0", pos="0,0!"];`)
	assert.Contains(t, dot, `3 [label="v3", pos="1.5,1!", fillcolor="#d9534f", fontcolor=white];`)
	assert.Contains(t, dot, "4 -- 0 [penwidth=2];")
	assert.Contains(t, dot, `0 -- 3 [style=dashed, color="#d9534f"];`)
	assert.Contains(t, dot, "2 -- 4 [style=dashed, color=grey];")
	// boundary pairs are drawn once, as boundary
	assert.NotContains(t, dot, "0 -- 1 [style=dashed")
	assert.Equal(t, 3, strings.Count(dot, "style=dashed"))
}

func TestToDOT_WithoutSightLines(t *testing.T) {
	polygon, graph := mustGraph(t, squarePoints(), BuildOptions{})

	dot := ToDOT(polygon, graph, nil, DOTOptions{})
	assert.NotContains(t, dot, "dashed")
	assert.NotContains(t, dot, "#d9534f")
	assert.Equal(t, 4, strings.Count(dot, "penwidth=2"))
	assert.Contains(t, dot, `2 [label="v2", pos="4,4!"];`)
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering is slow")
	}
	polygon, graph := mustGraph(t, squarePoints(), BuildOptions{})

	svg, err := RenderSVG(context.Background(), ToDOT(polygon, graph, &GuardPlacement{Guards: []int{0}}, DOTOptions{SightLines: true}))
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
}
