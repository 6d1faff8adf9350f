package carto

import (
	"strconv"
	"strings"

	"github.com/twpayne/go-geom"
)

// PathData renders an areal geometry as the d attribute of an SVG path.
func PathData(g geom.T, proj *Mercator) string {
	var sb strings.Builder
	switch g := g.(type) {
	case *geom.Polygon:
		writePolygon(&sb, g, proj)
	case *geom.MultiPolygon:
		for i := 0; i < g.NumPolygons(); i++ {
			writePolygon(&sb, g.Polygon(i), proj)
		}
	}
	return sb.String()
}

func writePolygon(sb *strings.Builder, p *geom.Polygon, proj *Mercator) {
	for i := 0; i < p.NumLinearRings(); i++ {
		r := p.LinearRing(i)
		flat, stride := r.FlatCoords(), r.Stride()
		for j := 0; j+1 < len(flat); j += stride {
			x, y := proj.Project(flat[j], flat[j+1])
			if j == 0 {
				sb.WriteByte('M')
			} else {
				sb.WriteByte('L')
			}
			sb.WriteString(strconv.FormatFloat(x, 'f', 1, 64))
			sb.WriteByte(',')
			sb.WriteString(strconv.FormatFloat(y, 'f', 1, 64))
		}
		sb.WriteByte('Z')
	}
}
