package carto

import "github.com/twpayne/go-geom"

// Empty marks a pixel no shape covers.
const Empty = -1

// Raster records, per pixel, the index of the shape covering its center.
type Raster struct {
	Width, Height int
	Cells         []int
}

// Rasterize samples shapes at every pixel center of a width × height grid.
// When shapes overlap the first one wins.
func Rasterize(shapes []geom.T, proj *Mercator, width, height int) *Raster {
	r := &Raster{Width: width, Height: height, Cells: make([]int, width*height)}
	for i := range r.Cells {
		r.Cells[i] = Empty
	}

	bounds := make([]*geom.Bounds, len(shapes))
	for i, s := range shapes {
		if s != nil {
			bounds[i] = s.Bounds()
		}
	}

	for py := 0; py < height; py++ {
		for px := 0; px < width; px++ {
			lon, lat := proj.Invert(float64(px)+0.5, float64(py)+0.5)
			for i, s := range shapes {
				b := bounds[i]
				if b == nil || lon < b.Min(0) || lon > b.Max(0) || lat < b.Min(1) || lat > b.Max(1) {
					continue
				}
				if Contains(s, lon, lat) {
					r.Cells[py*width+px] = i
					break
				}
			}
		}
	}
	return r
}

// At returns the shape index at a pixel, or Empty outside the grid.
func (r *Raster) At(x, y int) int {
	if x < 0 || y < 0 || x >= r.Width || y >= r.Height {
		return Empty
	}
	return r.Cells[y*r.Width+x]
}

// Edge reports whether the pixel borders a different shape or water.
func (r *Raster) Edge(x, y int) bool {
	id := r.At(x, y)
	return r.At(x-1, y) != id || r.At(x+1, y) != id || r.At(x, y-1) != id || r.At(x, y+1) != id
}
