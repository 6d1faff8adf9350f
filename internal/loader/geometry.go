// Package loader reads the boundary and observation sources and assembles
// the joined dataset.
package loader

import (
	"context"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
)

// Region is one named boundary from the geometry source.
type Region struct {
	Name     string
	Geometry geom.T
}

// LoadGeometry reads a GeoJSON FeatureCollection from path.
func LoadGeometry(ctx context.Context, path string) ([]Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "loader: open geometry")
	}
	defer func() { _ = f.Close() }()
	return ReadGeometry(ctx, f)
}

// ReadGeometry decodes a FeatureCollection. The region name comes from the
// "name" property. Features without a name or with a geometry other than
// Polygon/MultiPolygon are skipped.
func ReadGeometry(ctx context.Context, r io.Reader) ([]Region, error) {
	log := zap.L().With(zap.String("component", "loader.geometry"))

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "loader: read geometry")
	}

	var fc geojson.FeatureCollection
	if err := fc.UnmarshalJSON(data); err != nil {
		return nil, eris.Wrap(err, "loader: decode geometry")
	}

	regions := make([]Region, 0, len(fc.Features))
	for i, feat := range fc.Features {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "loader: geometry canceled")
		}

		name, _ := feat.Properties["name"].(string)
		if name == "" {
			log.Warn("skipping feature without name", zap.Int("index", i), zap.String("id", feat.ID))
			continue
		}

		switch feat.Geometry.(type) {
		case *geom.Polygon, *geom.MultiPolygon:
		default:
			log.Warn("skipping non-areal feature", zap.String("name", name), zap.Int("index", i))
			continue
		}

		regions = append(regions, Region{Name: name, Geometry: feat.Geometry})
	}

	if len(regions) == 0 {
		return nil, ErrNoGeometry
	}
	log.Debug("geometry decoded", zap.Int("features", len(fc.Features)), zap.Int("regions", len(regions)))
	return regions, nil
}
