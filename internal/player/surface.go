package player

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/inetmap/internal/scale"
)

// Label is a positioned text block, one entry per line.
type Label struct {
	Lines []string
	X, Y  int
}

// Surface receives drawing commands. Implementations own any visual
// transition and may replace an in-flight one when a new command arrives.
type Surface interface {
	SetHeading(text string)
	SetCaption(text string)
	SetAttribution(text string)
	Fill(name string, c colorful.Color, d time.Duration)
	SetLegend(swatches []scale.Swatch)
	ShowYearPicker(years []int, selected int)
	Highlight(name string, on bool, d time.Duration)
	ShowLabel(l Label)
	HideLabel()
}
