package loader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/inetmap/internal/atlas"
	"github.com/san-kum/inetmap/internal/join"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const worldJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "id": "USA", "properties": {"name": "USA"},
     "geometry": {"type": "Polygon", "coordinates": [[[-120,30],[-80,30],[-80,48],[-120,48],[-120,30]]]}},
    {"type": "Feature", "id": "FRA", "properties": {"name": "France"},
     "geometry": {"type": "MultiPolygon", "coordinates": [[[[0,43],[7,43],[7,50],[0,50],[0,43]]],[[[8.5,41.4],[9.5,41.4],[9.5,43],[8.5,43],[8.5,41.4]]]]}},
    {"type": "Feature", "id": "TCD", "properties": {"name": "Chad"},
     "geometry": {"type": "Polygon", "coordinates": [[[14,8],[23,8],[23,23],[14,23],[14,8]]]}},
    {"type": "Feature", "id": "XXX", "properties": {},
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]}},
    {"type": "Feature", "id": "PNT", "properties": {"name": "Pointland"},
     "geometry": {"type": "Point", "coordinates": [1, 1]}}
  ]
}`

const tidyCSV = `,country,year,subscriptions_per100
0,France,1995,5.0
1,France,2000,20.0
2,USA,1995,10.0
3,Atlantis,1995,3.5
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadGeometry(t *testing.T) {
	regions, err := ReadGeometry(context.Background(), strings.NewReader(worldJSON))
	require.NoError(t, err)
	require.Len(t, regions, 3)

	assert.Equal(t, "USA", regions[0].Name)
	assert.Equal(t, "France", regions[1].Name)
	assert.Equal(t, "Chad", regions[2].Name)
	assert.NotNil(t, regions[1].Geometry)
}

func TestReadGeometryMalformed(t *testing.T) {
	_, err := ReadGeometry(context.Background(), strings.NewReader(`{"type": "FeatureCollection", "features": [`))
	require.Error(t, err)
}

func TestReadGeometryWithoutRegions(t *testing.T) {
	_, err := ReadGeometry(context.Background(), strings.NewReader(`{"type": "FeatureCollection", "features": []}`))
	require.ErrorIs(t, err, ErrNoGeometry)
}

func TestReadObservations(t *testing.T) {
	obs, err := ReadObservations(context.Background(), strings.NewReader(tidyCSV))
	require.NoError(t, err)
	require.Len(t, obs, 4)

	assert.Equal(t, join.Observation{Country: "France", Year: 1995, Value: 5}, obs[0])
	assert.Equal(t, join.Observation{Country: "USA", Year: 1995, Value: 10}, obs[2])
}

func TestReadObservationsMalformed(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"missing column", "country,year\nFrance,1995\n"},
		{"bad year", "country,year,subscriptions_per100\nFrance,95,1\n"},
		{"bad value", "country,year,subscriptions_per100\nFrance,1995,lots\n"},
		{"negative value", "country,year,subscriptions_per100\nFrance,1995,-1\n"},
		{"signed year", "country,year,subscriptions_per100\nFrance,-199,1\n"},
		{"plus year", "country,year,subscriptions_per100\nFrance,+199,1\n"},
		{"nan value", "country,year,subscriptions_per100\nFrance,1995,NaN\n"},
		{"infinite value", "country,year,subscriptions_per100\nFrance,1995,+Inf\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadObservations(context.Background(), strings.NewReader(tt.csv))
			assert.Error(t, err)
		})
	}
}

func TestReadObservationsReportsLine(t *testing.T) {
	csv := "country,year,subscriptions_per100\nFrance,1995,1\nFrance,1996,2\nFrance,1997,-3\n"
	_, err := ReadObservations(context.Background(), strings.NewReader(csv))

	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 4, rowErr.Line)
	assert.ErrorIs(t, err, ErrNegativeValue)
}

func TestReadObservationsRejectsNonFinite(t *testing.T) {
	for _, v := range []string{"NaN", "Inf", "-Inf"} {
		t.Run(v, func(t *testing.T) {
			csv := "country,year,subscriptions_per100\nFrance,1995,1\nFrance,1996," + v + "\n"
			_, err := ReadObservations(context.Background(), strings.NewReader(csv))

			var rowErr *RowError
			require.ErrorAs(t, err, &rowErr)
			assert.Equal(t, 3, rowErr.Line)
			assert.ErrorIs(t, err, ErrNonFiniteValue)
		})
	}
}

func TestParseYear(t *testing.T) {
	for _, s := range []string{"-199", "+199", "19a5", " 95 ", "19955"} {
		_, err := parseYear(s)
		assert.Error(t, err, s)
	}
	y, err := parseYear(" 2004 ")
	require.NoError(t, err)
	assert.Equal(t, 2004, y)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	src := Sources{
		Geometry:     writeFile(t, dir, "world.json", worldJSON),
		Observations: writeFile(t, dir, "tidy.csv", tidyCSV),
	}

	ds, err := Load(context.Background(), src, Options{Names: atlas.DefaultNames()})
	require.NoError(t, err)

	assert.Equal(t, []int{1995, 2000}, ds.Years())
	assert.Equal(t, []string{"Atlantis"}, ds.Report.Unmatched)
	assert.Equal(t, 20.0, ds.Max)
	assert.Equal(t, 3, ds.Store.Len())

	us, ok := ds.Store.Lookup("United States")
	require.True(t, ok, "USA should be normalized")
	assert.Equal(t, map[int]float64{1995: 10}, us.Observations)

	chad, ok := ds.Store.Lookup("Chad")
	require.True(t, ok)
	assert.Empty(t, chad.Observations)
}

func TestLoadFailsWhenEitherSourceFails(t *testing.T) {
	dir := t.TempDir()
	geo := writeFile(t, dir, "world.json", worldJSON)
	obs := writeFile(t, dir, "tidy.csv", tidyCSV)

	_, err := Load(context.Background(), Sources{Geometry: geo, Observations: filepath.Join(dir, "missing.csv")}, Options{})
	require.Error(t, err)

	_, err = Load(context.Background(), Sources{Geometry: filepath.Join(dir, "missing.json"), Observations: obs}, Options{})
	require.Error(t, err)
}

func TestLoadCanceled(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, Sources{
		Geometry:     writeFile(t, dir, "world.json", worldJSON),
		Observations: writeFile(t, dir, "tidy.csv", tidyCSV),
	}, Options{})
	require.Error(t, err)
}

func TestAssembleDuplicatePolicy(t *testing.T) {
	regions := []Region{{Name: "France"}}
	obs := []join.Observation{
		{Country: "France", Year: 1995, Value: 1},
		{Country: "France", Year: 1995, Value: 2},
	}

	_, err := Assemble(regions, obs, Options{Duplicates: join.Error})
	require.ErrorContains(t, err, "duplicate observation")

	ds, err := Assemble(regions, obs, Options{Duplicates: join.FirstWins})
	require.NoError(t, err)
	france, _ := ds.Store.Lookup("France")
	assert.Equal(t, 1.0, france.Observations[1995])
}

func TestAssembleDuplicateRegion(t *testing.T) {
	_, err := Assemble([]Region{{Name: "USA"}, {Name: "United States"}}, nil, Options{Names: atlas.DefaultNames()})
	require.ErrorContains(t, err, "duplicate entity name")
}
