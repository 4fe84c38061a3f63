package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleGuard   = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(14)
)

const (
	iconSuccess = "✓"
	iconArrow   = "→"
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+styleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+value)
}

// printPlacement prints the guard summary and one line per vertex
func printPlacement(w io.Writer, result *Result) {
	placement := result.Placement
	graph := result.Graph()

	fmt.Fprintln(w, styleTitle.Render("Guard placement"))
	printKeyValue(w, "vertices", styleNumber.Render(strconv.Itoa(result.Polygon.Len())))
	printKeyValue(w, "area", styleNumber.Render(strconv.FormatFloat(result.Polygon.Area(), 'f', -1, 64)))
	printKeyValue(w, "sight lines", styleNumber.Render(strconv.Itoa(len(graph.Edges()))))
	printKeyValue(w, "guards", styleGuard.Render(joinInts(placement.Guards)))
	printKeyValue(w, "floor(n/3)", styleNumber.Render(strconv.Itoa(placement.LowerBound)))
	printKeyValue(w, "iterations", styleNumber.Render(strconv.Itoa(placement.Iterations)))
	fmt.Fprintln(w)

	guards := make(map[int]bool, len(placement.Guards))
	for _, g := range placement.Guards {
		guards[g] = true
	}

	for i, v := range result.Polygon.Vertices {
		label := fmt.Sprintf("v%-3d (%g, %g)", i, v.X, v.Y)
		if guards[i] {
			label = styleGuard.Render(label)
		} else {
			label = styleValue.Render(label)
		}
		sees := styleDim.Render("sees " + joinInts(graph.Neighbors(i)))
		by := styleDim.Render("guarded by " + joinInts(placement.CoveredBy(graph, i)))
		fmt.Fprintf(w, "  %s  %s  %s\n", label, sees, by)
	}
}

// printRoute prints a vertex route and its length
func printRoute(w io.Writer, route *Route) {
	steps := make([]string, len(route.Vertices))
	for i, v := range route.Vertices {
		steps[i] = fmt.Sprintf("v%d", v)
	}
	fmt.Fprintln(w, styleTitle.Render("Route"))
	printKeyValue(w, "vertices", styleValue.Render(strings.Join(steps, " "+iconArrow+" ")))
	printKeyValue(w, "length", styleNumber.Render(strconv.FormatFloat(route.Length, 'f', 3, 64)))
}

func joinInts(values []int) string {
	if len(values) == 0 {
		return "-"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
