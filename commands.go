package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// inputOpts are the flags shared by every command that reads a polygon
type inputOpts struct {
	geojson         bool
	requireInterior bool
	allowDegenerate bool
	epsilon         float64
	simplify        float64
	simplifyAuto    bool
	workers         int
}

func (o *inputOpts) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.geojson, "geojson", false, "read the polygon from GeoJSON (implied by .geojson files)")
	cmd.Flags().BoolVar(&o.requireInterior, "interior", false, "also require sight line midpoints inside the polygon")
	cmd.Flags().BoolVar(&o.allowDegenerate, "allow-degenerate", false, "skip the duplicate and touching edge checks")
	cmd.Flags().Float64Var(&o.epsilon, "epsilon", 0, "collinearity tolerance (0 compares exactly)")
	cmd.Flags().Float64Var(&o.simplify, "simplify", 0, "Douglas-Peucker epsilon applied before building (0 disables)")
	cmd.Flags().BoolVar(&o.simplifyAuto, "simplify-auto", false, "derive the simplification epsilon from the polygon extent")
	cmd.Flags().IntVarP(&o.workers, "workers", "w", 0, "goroutines building the visibility graph (-1 for all CPUs)")
}

// solveOptions starts from the configuration and lets explicitly set flags win
func (o *inputOpts) solveOptions(cmd *cobra.Command) SolveOptions {
	cfg := configFromContext(cmd.Context())
	opts := SolveOptions{
		Build:        cfg.Visibility.BuildOptions(),
		Simplify:     cfg.Visibility.Simplify,
		AutoSimplify: cfg.Visibility.SimplifyAuto,
		Logger:       loggerFromContext(cmd.Context()),
	}

	flags := cmd.Flags()
	if flags.Changed("interior") {
		opts.Build.RequireInterior = o.requireInterior
	}
	if flags.Changed("allow-degenerate") {
		opts.Build.AllowDegenerate = o.allowDegenerate
	}
	if flags.Changed("epsilon") {
		opts.Build.Epsilon = o.epsilon
	}
	if flags.Changed("simplify") {
		opts.Simplify = o.simplify
	}
	if flags.Changed("simplify-auto") {
		opts.AutoSimplify = o.simplifyAuto
	}
	if flags.Changed("workers") {
		opts.Build.Workers = o.workers
	}
	return opts
}

// load reads the polygon in the format chosen by flag or file extension
func (o *inputOpts) load(ctx context.Context, path string) ([]Point, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if o.geojson || ext == ".geojson" {
		return LoadPolygonGeoJSONFile(path)
	}
	return ReadPolygonFile(path, loggerFromContext(ctx))
}

func (o *inputOpts) solve(cmd *cobra.Command, path string) (*Result, error) {
	points, err := o.load(cmd.Context(), path)
	if err != nil {
		return nil, err
	}
	return Solve(points, o.solveOptions(cmd))
}

// newSolveCmd places guards on a polygon file and prints the placement
func newSolveCmd() *cobra.Command {
	var (
		in      inputOpts
		asJSON  bool
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Place guards on the polygon in file",
		Long: `Read a polygon (one "x y" pair per line, or GeoJSON), build its vertex
visibility graph and place guards with greedy set cover.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := in.solve(cmd, args[0])
			if err != nil {
				return err
			}

			if outPath != "" {
				if err := SaveResult(result, outPath); err != nil {
					return err
				}
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			printPlacement(cmd.OutOrStdout(), result)
			if outPath != "" {
				printFile(cmd.OutOrStdout(), outPath)
			}
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "also save the result as JSON to this file")

	return cmd
}

// newRenderCmd draws the visibility graph and the guards with Graphviz
func newRenderCmd() *cobra.Command {
	var (
		in         inputOpts
		outPath    string
		scale      float64
		sightLines bool
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render the polygon, its sight lines and guards to SVG or DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := in.solve(cmd, args[0])
			if err != nil {
				return err
			}

			dot := ToDOT(result.Polygon, result.Graph(), result.Placement, DOTOptions{
				Scale:      scale,
				SightLines: sightLines,
			})

			if outPath == "" {
				outPath = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".svg"
			}

			data := []byte(dot)
			if !strings.EqualFold(filepath.Ext(outPath), ".dot") {
				if data, err = RenderSVG(cmd.Context(), dot); err != nil {
					return err
				}
			}

			if err := os.WriteFile(outPath, data, 0644); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			printSuccess(cmd.OutOrStdout(), "Rendered %d vertices, %d guards", result.Polygon.Len(), len(result.Placement.Guards))
			printFile(cmd.OutOrStdout(), outPath)
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output file; .dot writes the DOT source (default <file>.svg)")
	cmd.Flags().Float64Var(&scale, "scale", 1, "inches per polygon unit")
	cmd.Flags().BoolVar(&sightLines, "sight-lines", true, "draw visibility edges")

	return cmd
}

// newPathCmd prints the shortest route between two vertices along sight lines
func newPathCmd() *cobra.Command {
	var in inputOpts

	cmd := &cobra.Command{
		Use:   "path [file] [from] [to]",
		Short: "Shortest route between two vertices along sight lines",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid from vertex %q: %w", args[1], err)
			}
			to, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid to vertex %q: %w", args[2], err)
			}

			result, err := in.solve(cmd, args[0])
			if err != nil {
				return err
			}

			route, err := ShortestPath(result.Polygon, result.Graph(), from, to)
			if err != nil {
				return err
			}
			printRoute(cmd.OutOrStdout(), route)
			return nil
		},
	}

	in.register(cmd)
	return cmd
}

// newShowCmd prints a placement saved with solve --output
func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [result.json]",
		Short: "Print a saved guard placement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := LoadResult(args[0])
			if err != nil {
				return err
			}
			printPlacement(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

// newServeCmd runs the HTTP API
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve guard placement over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)
			logger := loggerFromContext(ctx)
			if addr != "" {
				cfg.Server.Addr = addr
			}

			cache, err := NewResultCache(cfg.Cache)
			if err != nil {
				return err
			}
			defer cache.Close()

			return NewServer(cfg, cache, logger).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
