package export

import (
	"fmt"
	"html"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/san-kum/inetmap/internal/atlas"
	"github.com/san-kum/inetmap/internal/carto"
	"github.com/san-kum/inetmap/internal/scale"
)

const (
	headerHeight = 56
	footerHeight = 96
	mapPad       = 8
)

// Renderer draws frames of one fixed map as standalone SVG documents.
type Renderer struct {
	Width, Height int
	names         []string
	paths         []string
	proj          *carto.Mercator
}

// NewRenderer projects every entity of st into a width × height canvas.
// Path data is computed once and reused for every frame.
func NewRenderer(st *atlas.Store, width, height int) *Renderer {
	mapHeight := float64(height - headerHeight - footerHeight)
	proj := carto.Fit(st.Bounds(), float64(width), mapHeight, mapPad)
	r := &Renderer{Width: width, Height: height, proj: proj}
	for _, e := range st.Entities() {
		r.names = append(r.names, e.Name)
		r.paths = append(r.paths, carto.PathData(e.Geometry, proj))
	}
	return r
}

// Projection returns the projection used for the map area, which starts
// headerHeight pixels below the top of the canvas.
func (r *Renderer) Projection() *carto.Mercator { return r.proj }

func (r *Renderer) SVG(f Frame) string {
	var sb strings.Builder
	w, h := r.Width, r.Height

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, w, h, w, h))

	sb.WriteString(fmt.Sprintf(`<text x="%d" y="34" font-size="22" text-anchor="middle">%s</text>
`, w/2, html.EscapeString(f.Heading)))

	sb.WriteString(fmt.Sprintf(`<g transform="translate(0,%d)" stroke="#888888" stroke-width="0.5">
`, headerHeight))
	var highlighted string
	for i, name := range r.names {
		fill := "#cccccc"
		if c, ok := f.Fills[name]; ok {
			fill = c.Hex()
		}
		path := fmt.Sprintf(`<path id="%s" fill="%s" d="%s"><title>%s</title></path>
`, html.EscapeString(name), fill, r.paths[i], html.EscapeString(name))
		if name == f.Highlighted {
			highlighted = strings.Replace(path, "<path ", `<path stroke="#000000" stroke-width="2" `, 1)
			continue
		}
		sb.WriteString(path)
	}
	sb.WriteString(highlighted)
	if f.Label != nil {
		r.writeLabel(&sb, f.Label.Lines, f.Label.X, f.Label.Y)
	}
	sb.WriteString("</g>\n")

	r.writeFooter(&sb, f)
	sb.WriteString("</svg>\n")
	return sb.String()
}

func (r *Renderer) writeLabel(sb *strings.Builder, lines []string, x, y int) {
	width := 0
	for _, l := range lines {
		if n := len(l)*8 + 16; n > width {
			width = n
		}
	}
	height := len(lines)*18 + 10
	sb.WriteString(fmt.Sprintf(`<g class="label" transform="translate(%d,%d)">
<rect width="%d" height="%d" rx="4" fill="#ffffff" fill-opacity="0.9" stroke="#333333"/>
`, x+10, y+10, width, height))
	for i, l := range lines {
		sb.WriteString(fmt.Sprintf(`<text x="8" y="%d" font-size="13" stroke="none">%s</text>
`, 20+i*18, html.EscapeString(l)))
	}
	sb.WriteString("</g>\n")
}

func (r *Renderer) writeFooter(sb *strings.Builder, f Frame) {
	top := r.Height - footerHeight

	sb.WriteString(fmt.Sprintf(`<g class="legend" transform="translate(16,%d)">
`, top+8))
	for i, s := range f.Legend {
		sb.WriteString(fmt.Sprintf(`<rect x="%d" y="0" width="40" height="12" fill="%s" stroke="#888888" stroke-width="0.5"/>
<text x="%d" y="26" font-size="11">%s</text>
`, i*42, s.Color.Hex(), i*42, strconv.FormatFloat(s.Value, 'f', -1, 64)))
	}
	sb.WriteString("</g>\n")

	if f.Picker && len(f.Years) > 0 {
		sb.WriteString(fmt.Sprintf(`<text class="years" x="16" y="%d" font-size="12">`, top+54))
		for i, y := range f.Years {
			if i > 0 {
				sb.WriteString(" ")
			}
			if y == f.Selected {
				sb.WriteString(fmt.Sprintf(`<tspan font-weight="bold" fill="#ff0000">%d</tspan>`, y))
			} else {
				sb.WriteString(strconv.Itoa(y))
			}
		}
		sb.WriteString("</text>\n")
	}

	if f.Caption != "" {
		sb.WriteString(fmt.Sprintf(`<text x="16" y="%d" font-size="12" fill="#555555">%s</text>
`, top+72, html.EscapeString(f.Caption)))
	}
	if f.Attribution != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="10" text-anchor="end" fill="#777777">%s</text>
`, r.Width-16, top+88, html.EscapeString(f.Attribution)))
	}
}

func (r *Renderer) WriteFile(path string, f Frame) error {
	if err := os.WriteFile(path, []byte(r.SVG(f)), 0644); err != nil {
		return eris.Wrapf(err, "export: write %s", path)
	}
	return nil
}

// LegendSVG draws just the legend swatches of sc over domain.
func LegendSVG(sc *scale.Scale, domain []float64) string {
	r := &Renderer{Width: len(domain)*42 + 32, Height: footerHeight}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="48" font-family="sans-serif">
`, r.Width))
	r.writeFooter(&sb, Frame{Legend: sc.Legend(domain)})
	sb.WriteString("</svg>\n")
	return sb.String()
}
