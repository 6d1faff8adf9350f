package viz

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/inetmap/internal/atlas"
	"github.com/san-kum/inetmap/internal/carto"
	"github.com/san-kum/inetmap/internal/player"
	"github.com/san-kum/inetmap/internal/scale"
	"github.com/twpayne/go-geom"
)

const (
	frameInterval = time.Second / 30
	defaultWidth  = 100
	defaultHeight = 32

	// heading and caption above the map; legend, picker, attribution and
	// help below it
	mapTop     = 2
	chromeRows = 6

	panelWidth     = 42
	minPanelScreen = 110
	pickerPrefix   = "Year: "
	pickerCell     = 5
)

type frameMsg time.Time

type Options struct {
	Width, Height int
	Theme         string
	Series        bool
	NoData        colorful.Color
	NoDataLabel   string
}

// Model renders the map and turns terminal input into player events.
type Model struct {
	ctx    context.Context
	store  *atlas.Store
	events chan<- player.Event
	opts   Options
	theme  Theme
	styles styles

	names  []string
	shapes []geom.T
	index  map[string]int

	fills      []colorful.Color
	fillTweens []*colorTween
	emphasis   []float64
	emphTweens []*levelTween

	width, height    int
	mapCols, mapRows int
	proj             *carto.Mercator
	raster           *carto.Raster
	canvas           *Canvas

	heading, caption, attribution string
	legend                        []scale.Swatch
	years                         []int
	selected                      int
	picker                        bool
	label                         *player.Label
	highlighted                   int
	pointer                       int
	showSeries                    bool
	showHelp                      bool
}

// NewModel prepares a model for st. Events are delivered on events until
// ctx is done.
func NewModel(ctx context.Context, st *atlas.Store, events chan<- player.Event, opts Options) Model {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	if opts.NoData == (colorful.Color{}) {
		opts.NoData = hexColor(scale.DefaultNoData)
	}
	if opts.NoDataLabel == "" {
		opts.NoDataLabel = "no data"
	}

	n := st.Len()
	m := Model{
		ctx:         ctx,
		store:       st,
		events:      events,
		opts:        opts,
		theme:       GetTheme(opts.Theme),
		index:       make(map[string]int, n),
		fills:       make([]colorful.Color, n),
		fillTweens:  make([]*colorTween, n),
		emphasis:    make([]float64, n),
		emphTweens:  make([]*levelTween, n),
		highlighted: carto.Empty,
		pointer:     carto.Empty,
		showSeries:  opts.Series,
	}
	m.styles = newStyles(m.theme)
	for i, e := range st.Entities() {
		m.names = append(m.names, e.Name)
		m.shapes = append(m.shapes, e.Geometry)
		m.index[e.Name] = i
		m.fills[i] = opts.NoData
	}
	m.resize(opts.Width, opts.Height)
	return m
}

func (m Model) Init() tea.Cmd {
	return m.frameCmd()
}

func (m Model) frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Update applies surface commands and input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case frameMsg:
		m.advance(float32(frameInterval.Seconds()))
		return m, m.frameCmd()

	case headingMsg:
		m.heading = string(msg)
	case captionMsg:
		m.caption = string(msg)
	case attributionMsg:
		m.attribution = string(msg)
	case fillMsg:
		m.fill(msg)
	case highlightMsg:
		m.highlight(msg)
	case legendMsg:
		m.legend = msg
	case pickerMsg:
		m.years, m.selected, m.picker = msg.years, msg.selected, true
	case labelMsg:
		l := player.Label(msg)
		m.label = &l
	case hideLabelMsg:
		m.label = nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ", "enter", "s":
		return m, m.emit(player.Skip{})
	case "left", "h":
		return m.stepYear(-1)
	case "right", "l":
		return m.stepYear(1)
	case "home":
		if len(m.years) > 0 {
			return m.selectYear(m.years[0])
		}
	case "end":
		if len(m.years) > 0 {
			return m.selectYear(m.years[len(m.years)-1])
		}
	case "g":
		m.showSeries = !m.showSeries
		m.resize(m.width, m.height)
	case "t":
		m.theme = nextTheme(m.theme.Name)
		m.styles = newStyles(m.theme)
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionMotion:
		id := m.entityAt(msg.X, msg.Y)
		if id == m.pointer {
			return m, nil
		}
		var evs []player.Event
		if m.pointer != carto.Empty {
			evs = append(evs, player.HoverEnd{Name: m.names[m.pointer]})
		}
		if id != carto.Empty {
			evs = append(evs, player.HoverStart{Name: m.names[id], X: msg.X, Y: msg.Y})
		}
		m.pointer = id
		return m, m.emit(evs...)
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && msg.Y == m.pickerRow() {
			if y, ok := m.yearAt(msg.X); ok {
				return m.selectYear(y)
			}
		}
	}
	return m, nil
}

// emit delivers evs in order from a command goroutine, so Update never
// blocks on the player.
func (m Model) emit(evs ...player.Event) tea.Cmd {
	if len(evs) == 0 || m.events == nil {
		return nil
	}
	ctx, events := m.ctx, m.events
	return func() tea.Msg {
		for _, ev := range evs {
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
		return nil
	}
}

func (m Model) selectYear(year int) (tea.Model, tea.Cmd) {
	if !m.picker || year == m.selected {
		return m, nil
	}
	m.selected = year
	return m, m.emit(player.YearSelected{Year: year})
}

func (m Model) stepYear(dir int) (tea.Model, tea.Cmd) {
	for i, y := range m.years {
		if y != m.selected {
			continue
		}
		j := i + dir
		if j < 0 || j >= len(m.years) {
			return m, nil
		}
		return m.selectYear(m.years[j])
	}
	return m, nil
}

func (m *Model) fill(msg fillMsg) {
	i, ok := m.index[msg.name]
	if !ok {
		return
	}
	if msg.duration <= 0 {
		m.fills[i], m.fillTweens[i] = msg.color, nil
		return
	}
	m.fillTweens[i] = newColorTween(m.fills[i], msg.color, msg.duration)
}

func (m *Model) highlight(msg highlightMsg) {
	i, ok := m.index[msg.name]
	if !ok {
		return
	}
	target := 0.0
	if msg.on {
		target = 1
		m.highlighted = i
	} else if m.highlighted == i {
		m.highlighted = carto.Empty
	}
	if msg.duration <= 0 {
		m.emphasis[i], m.emphTweens[i] = target, nil
		return
	}
	m.emphTweens[i] = newLevelTween(m.emphasis[i], target, msg.duration)
}

// advance moves every running fade forward by dt seconds.
func (m *Model) advance(dt float32) {
	for i, tw := range m.fillTweens {
		if tw == nil {
			continue
		}
		c, done := tw.Update(dt)
		m.fills[i] = c
		if done {
			m.fillTweens[i] = nil
		}
	}
	for i, tw := range m.emphTweens {
		if tw == nil {
			continue
		}
		v, done := tw.Update(dt)
		m.emphasis[i] = v
		if done {
			m.emphTweens[i] = nil
		}
	}
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	cols := w
	if m.showSeries && w >= minPanelScreen {
		cols = w - panelWidth
	}
	rows := h - chromeRows
	if rows < 4 {
		rows = 4
	}
	if cols < 10 {
		cols = 10
	}
	m.mapCols, m.mapRows = cols, rows
	m.proj = carto.Fit(m.store.Bounds(), float64(cols), float64(rows*2), 1)
	m.raster = carto.Rasterize(m.shapes, m.proj, cols, rows*2)
	m.canvas = NewCanvas(cols, rows)
}

// entityAt maps a screen cell to the entity drawn there.
func (m Model) entityAt(x, y int) int {
	row := y - mapTop
	if x < 0 || x >= m.mapCols || row < 0 || row >= m.mapRows {
		return carto.Empty
	}
	if id := m.raster.At(x, 2*row); id != carto.Empty {
		return id
	}
	return m.raster.At(x, 2*row+1)
}

func (m Model) pickerRow() int { return mapTop + m.mapRows + 1 }

func (m Model) yearAt(x int) (int, bool) {
	off := x - len(pickerPrefix)
	if off < 0 || off%pickerCell >= pickerCell-1 {
		return 0, false
	}
	i := off / pickerCell
	if i >= len(m.years) {
		return 0, false
	}
	return m.years[i], true
}

func (m Model) pixel(x, y int) colorful.Color {
	water := hexColor(m.theme.Water)
	id := m.raster.At(x, y)
	if id == carto.Empty {
		return water
	}
	c := m.fills[id]
	if e := m.emphasis[id]; e > 0 {
		c = c.BlendRgb(hexColor(m.theme.Highlight), 0.5*e)
	}
	if m.raster.Edge(x, y) {
		c = c.BlendRgb(hexColor(m.theme.Border), 0.3)
	}
	return c.Clamped()
}

func (m *Model) draw() {
	m.canvas.Clear()
	for y := 0; y < m.mapRows*2; y++ {
		for x := 0; x < m.mapCols; x++ {
			m.canvas.Set(x, y, m.pixel(x, y))
		}
	}
	if m.label != nil {
		m.canvas.Box(m.label.X+2, m.label.Y-mapTop+1, m.label.Lines)
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()

	var s strings.Builder
	s.WriteString(m.styles.heading.Render(m.heading) + "\n")
	s.WriteString(m.styles.caption.Render(m.caption) + "\n")

	mapView := m.canvas.Render(m.styles.tooltip)
	if panel := m.seriesPanel(); panel != "" {
		mapView = lipgloss.JoinHorizontal(lipgloss.Top, mapView, panel)
	}
	s.WriteString(mapView + "\n")
	s.WriteString(m.legendView() + "\n")
	s.WriteString(m.pickerView() + "\n")
	s.WriteString(m.styles.muted.Render(m.attribution) + "\n")
	if m.showHelp {
		s.WriteString(m.styles.help.Render("space skip · ←/→ year · home/end first/last · g series · t theme · q quit"))
	} else {
		s.WriteString(m.styles.help.Render("? help · q quit"))
	}
	return s.String()
}

func (m Model) legendView() string {
	var parts []string
	for _, sw := range m.legend {
		parts = append(parts, swatch(sw.Color.Hex())+" "+strconv.FormatFloat(sw.Value, 'f', -1, 64))
	}
	if len(parts) > 0 {
		parts = append(parts, swatch(m.opts.NoData.Hex())+" "+m.opts.NoDataLabel)
	}
	return strings.Join(parts, "  ")
}

func (m Model) pickerView() string {
	if !m.picker || len(m.years) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.muted.Render(pickerPrefix))
	for i, y := range m.years {
		if i > 0 {
			b.WriteString(" ")
		}
		label := strconv.Itoa(y)
		if y == m.selected {
			b.WriteString(m.styles.selected.Render(label))
		} else {
			b.WriteString(m.styles.muted.Render(label))
		}
	}
	return b.String()
}

func (m Model) seriesPanel() string {
	if !m.showSeries || m.width < minPanelScreen || m.highlighted == carto.Empty {
		return ""
	}
	e, ok := m.store.Lookup(m.names[m.highlighted])
	if !ok {
		return ""
	}

	body := m.opts.NoDataLabel
	years, series := e.Years(), e.Series()
	switch {
	case len(series) >= 2:
		h := m.mapRows - 6
		if h < 4 {
			h = 4
		}
		if h > 12 {
			h = 12
		}
		body = asciigraph.Plot(series,
			asciigraph.Height(h),
			asciigraph.Width(panelWidth-16),
			asciigraph.Precision(1),
			asciigraph.Caption(fmt.Sprintf("%d-%d", years[0], years[len(years)-1])))
	case len(series) == 1:
		body = fmt.Sprintf("%d: %s", years[0], player.FormatValue(series[0]))
	}
	return m.styles.panel.Width(panelWidth - 2).Render(m.styles.heading.Render(e.Name) + "\n" + body)
}
