package carto

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
)

// Contains reports whether lon/lat lies inside an areal geometry. Points in
// a hole are outside; points on the outer boundary are inside.
func Contains(g geom.T, lon, lat float64) bool {
	switch g := g.(type) {
	case *geom.Polygon:
		return polygonContains(g, lon, lat)
	case *geom.MultiPolygon:
		for i := 0; i < g.NumPolygons(); i++ {
			if polygonContains(g.Polygon(i), lon, lat) {
				return true
			}
		}
	}
	return false
}

func polygonContains(p *geom.Polygon, lon, lat float64) bool {
	if p.NumLinearRings() == 0 {
		return false
	}
	b := p.Bounds()
	if lon < b.Min(0) || lon > b.Max(0) || lat < b.Min(1) || lat > b.Max(1) {
		return false
	}
	pt := geom.Coord{lon, lat}
	if !xy.IsPointInRing(p.Layout(), pt, p.LinearRing(0).FlatCoords()) {
		return false
	}
	for i := 1; i < p.NumLinearRings(); i++ {
		if xy.IsPointInRing(p.Layout(), pt, p.LinearRing(i).FlatCoords()) {
			return false
		}
	}
	return true
}
