package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ReadPolygon reads one "x y" pair per line. Lines that are not exactly two
// numeric fields are skipped.
func ReadPolygon(r io.Reader) ([]Point, error) {
	points := []Point{}
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) != 2 {
			continue
		}
		x, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			continue
		}
		y, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			continue
		}
		points = append(points, Point{X: x, Y: y})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read polygon: %w", err)
	}
	return points, nil
}

// ReadPolygonFile reads a coordinate file. A missing file yields an empty
// polygon rather than an error.
func ReadPolygonFile(path string, logger *log.Logger) ([]Point, error) {
	if logger == nil {
		logger = log.Default()
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn("polygon file not found", "path", path)
		return []Point{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	points, err := ReadPolygon(f)
	if err != nil {
		return nil, err
	}
	logger.Debug("polygon loaded", "path", path, "vertices", len(points))
	return points, nil
}

// LoadPolygonGeoJSON extracts the outer ring of the first polygon found in a
// FeatureCollection, a Feature or a bare geometry
func LoadPolygonGeoJSON(data []byte) ([]Point, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("failed to parse geojson: %w", err)
	}

	var geometries []orb.Geometry
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse feature collection: %w", err)
		}
		for _, feature := range fc.Features {
			geometries = append(geometries, feature.Geometry)
		}
	case "Feature":
		feature, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse feature: %w", err)
		}
		geometries = append(geometries, feature.Geometry)
	default:
		geometry, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse geometry: %w", err)
		}
		geometries = append(geometries, geometry.Geometry())
	}

	for _, geometry := range geometries {
		if ring, ok := outerRing(geometry); ok {
			return ringToPoints(ring), nil
		}
	}
	return nil, fmt.Errorf("no polygon found in geojson")
}

// LoadPolygonGeoJSONFile reads a GeoJSON file from disk
func LoadPolygonGeoJSONFile(path string) ([]Point, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return LoadPolygonGeoJSON(data)
}

// outerRing returns the outer boundary of a polygon or of the first non-empty polygon in a multipolygon
func outerRing(geometry orb.Geometry) (orb.Ring, bool) {
	switch g := geometry.(type) {
	case orb.Polygon:
		if len(g) > 0 {
			return g[0], true
		}
	case orb.MultiPolygon:
		for _, poly := range g {
			if len(poly) > 0 {
				return poly[0], true
			}
		}
	}
	return nil, false
}

// ringToPoints drops the closing point GeoJSON repeats at the end of a ring
func ringToPoints(ring orb.Ring) []Point {
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		ring = ring[:len(ring)-1]
	}
	points := make([]Point, 0, len(ring))
	for _, p := range ring {
		points = append(points, Point{X: p[0], Y: p[1]})
	}
	return points
}
