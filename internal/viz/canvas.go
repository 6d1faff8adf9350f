package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Canvas is a grid of colored pixels drawn with the upper half block: each
// cell shows its top pixel as foreground and its bottom pixel as
// background, so a Width × Height cell canvas holds Width × 2·Height pixels.
// Text written with Text covers whole cells.
type Canvas struct {
	Width, Height int
	pix           []colorful.Color
	text          map[int]rune
}

func NewCanvas(w, h int) *Canvas {
	return &Canvas{
		Width:  w,
		Height: h,
		pix:    make([]colorful.Color, w*h*2),
		text:   make(map[int]rune),
	}
}

// Set colors a pixel. y counts pixel rows, two per cell.
func (c *Canvas) Set(x, y int, col colorful.Color) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height*2 {
		return
	}
	c.pix[y*c.Width+x] = col
}

func (c *Canvas) At(x, y int) colorful.Color {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height*2 {
		return colorful.Color{}
	}
	return c.pix[y*c.Width+x]
}

// Text writes s starting at cell (col, row), clipped to the canvas.
func (c *Canvas) Text(col, row int, s string) {
	if row < 0 || row >= c.Height {
		return
	}
	for i, r := range []rune(s) {
		x := col + i
		if x < 0 || x >= c.Width {
			continue
		}
		c.text[row*c.Width+x] = r
	}
}

// Box writes lines inside a single-line border with its corner at (col,
// row), shifted left and up as needed to stay on the canvas.
func (c *Canvas) Box(col, row int, lines []string) {
	inner := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > inner {
			inner = n
		}
	}
	w, h := inner+4, len(lines)+2
	if col+w > c.Width {
		col = c.Width - w
	}
	if row+h > c.Height {
		row = c.Height - h
	}
	if col < 0 {
		col = 0
	}
	if row < 0 {
		row = 0
	}

	c.Text(col, row, "┌"+strings.Repeat("─", w-2)+"┐")
	for i, l := range lines {
		pad := strings.Repeat(" ", inner-len([]rune(l)))
		c.Text(col, row+1+i, "│ "+l+pad+" │")
	}
	c.Text(col, row+h-1, "└"+strings.Repeat("─", w-2)+"┘")
}

func (c *Canvas) Clear() {
	for i := range c.pix {
		c.pix[i] = colorful.Color{}
	}
	for k := range c.text {
		delete(c.text, k)
	}
}

// Render draws the canvas with text cells in textStyle.
func (c *Canvas) Render(textStyle lipgloss.Style) string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			if r, ok := c.text[row*c.Width+col]; ok {
				b.WriteString(textStyle.Render(string(r)))
				continue
			}
			top := c.pix[(2*row)*c.Width+col]
			bottom := c.pix[(2*row+1)*c.Width+col]
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top.Hex())).
				Background(lipgloss.Color(bottom.Hex())).
				Render("▀"))
		}
		if row < c.Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
