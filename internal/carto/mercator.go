package carto

import (
	"math"

	"github.com/twpayne/go-geom"
)

// MaxLatitude keeps the poles out of the projection.
const MaxLatitude = 85.05113

// Mercator is a spherical mercator projection scaled and translated into a
// viewport.
type Mercator struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
}

// Fit returns the projection that centers bounds in a width × height
// viewport with pad pixels of margin on every side.
func Fit(b *geom.Bounds, width, height, pad float64) *Mercator {
	if b == nil || b.IsEmpty() {
		b = geom.NewBounds(geom.XY).Set(-180, -60, 180, MaxLatitude)
	}
	x0, y0 := forward(b.Min(0), b.Max(1))
	x1, y1 := forward(b.Max(0), b.Min(1))

	w := math.Max(width-2*pad, 1)
	h := math.Max(height-2*pad, 1)
	dx := math.Max(x1-x0, 1e-9)
	dy := math.Max(y1-y0, 1e-9)
	s := math.Min(w/dx, h/dy)

	return &Mercator{
		Scale:      s,
		TranslateX: width/2 - s*(x0+x1)/2,
		TranslateY: height/2 - s*(y0+y1)/2,
	}
}

// Project maps lon/lat degrees to pixels.
func (m *Mercator) Project(lon, lat float64) (float64, float64) {
	x, y := forward(lon, lat)
	return m.TranslateX + m.Scale*x, m.TranslateY + m.Scale*y
}

// Invert maps pixels back to lon/lat degrees.
func (m *Mercator) Invert(px, py float64) (float64, float64) {
	x := (px - m.TranslateX) / m.Scale
	y := (py - m.TranslateY) / m.Scale
	lon := x * 180 / math.Pi
	lat := (2*math.Atan(math.Exp(-y)) - math.Pi/2) * 180 / math.Pi
	return lon, lat
}

// forward is the unit mercator with y pointing down.
func forward(lon, lat float64) (float64, float64) {
	lat = math.Max(-MaxLatitude, math.Min(MaxLatitude, lat))
	x := lon * math.Pi / 180
	y := -math.Log(math.Tan(math.Pi/4 + lat*math.Pi/360))
	return x, y
}
