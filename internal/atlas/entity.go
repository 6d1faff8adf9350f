package atlas

import (
	"sort"

	"github.com/twpayne/go-geom"
)

// Entity is one country: its boundary and its time series.
type Entity struct {
	Name         string
	Geometry     geom.T
	Observations map[int]float64
}

// Value returns the observation for year and whether one exists.
func (e *Entity) Value(year int) (float64, bool) {
	v, ok := e.Observations[year]
	return v, ok
}

// Set records an observation, replacing any previous value for year.
func (e *Entity) Set(year int, value float64) {
	if e.Observations == nil {
		e.Observations = make(map[int]float64)
	}
	e.Observations[year] = value
}

// Years returns the years with an observation, ascending.
func (e *Entity) Years() []int {
	years := make([]int, 0, len(e.Observations))
	for y := range e.Observations {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Series returns the observed values in year order, suitable for plotting.
func (e *Entity) Series() []float64 {
	years := e.Years()
	values := make([]float64, len(years))
	for i, y := range years {
		values[i] = e.Observations[y]
	}
	return values
}

// Bounds returns the geometry bounds, or nil when the entity has none.
func (e *Entity) Bounds() *geom.Bounds {
	if e.Geometry == nil {
		return nil
	}
	return e.Geometry.Bounds()
}
