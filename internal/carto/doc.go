// Package carto turns boundary geometry into screen space.
//
// It offers just what the two surfaces need: a mercator projection fitted
// to a viewport, point-in-polygon hit testing, a raster of which shape owns
// each pixel, and SVG path data. Coordinates are longitude/latitude in
// degrees on the way in and pixels, y growing downwards, on the way out.
package carto
