package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPolygon(t *testing.T) {
	input := `# three corners
0 0
4 0

1 2 3
x 1
2 y
0 4
`
	points, err := ReadPolygon(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []Point{{0, 0}, {4, 0}, {0, 4}}, points)
}

func TestReadPolygon_Empty(t *testing.T) {
	points, err := ReadPolygon(strings.NewReader(""))
	require.NoError(t, err)
	assert.NotNil(t, points)
	assert.Empty(t, points)
}

func TestReadPolygonFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "square.txt")
	require.NoError(t, os.WriteFile(path, []byte("0 0\n4 0\n4 4\n0 4\n"), 0644))

	points, err := ReadPolygonFile(path, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, squarePoints(), points)

	missing, err := ReadPolygonFile(filepath.Join(dir, "missing.txt"), discardLogger())
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestLoadPolygonGeoJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "feature collection",
			data: `{"type":"FeatureCollection","features":[
				{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[9,9]}},
				{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[4,0],[4,4],[0,4],[0,0]]]}}
			]}`,
		},
		{
			name: "feature with multipolygon",
			data: `{"type":"Feature","properties":{},"geometry":{"type":"MultiPolygon","coordinates":[[[[0,0],[4,0],[4,4],[0,4],[0,0]]]]}}`,
		},
		{
			name: "bare polygon",
			data: `{"type":"Polygon","coordinates":[[[0,0],[4,0],[4,4],[0,4],[0,0]]]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, err := LoadPolygonGeoJSON([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, squarePoints(), points)
		})
	}
}

func TestLoadPolygonGeoJSON_Errors(t *testing.T) {
	_, err := LoadPolygonGeoJSON([]byte(`{"type":"Point","coordinates":[1,2]}`))
	require.Error(t, err)

	_, err = LoadPolygonGeoJSON([]byte(`not json`))
	require.Error(t, err)

	_, err = LoadPolygonGeoJSONFile(filepath.Join(t.TempDir(), "missing.geojson"))
	require.Error(t, err)
}
