package player

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/san-kum/inetmap/internal/atlas"
	"github.com/san-kum/inetmap/internal/scale"
	"go.uber.org/zap"
)

type State int

const (
	Initializing State = iota
	AutoPlaying
	Interactive
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case AutoPlaying:
		return "auto-playing"
	case Interactive:
		return "interactive"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Text holds the copy shown around the map.
type Text struct {
	Intro       string
	Heading     string // format with one %d verb for the year
	Hint        string
	Attribution string
	NoData      string
}

func DefaultText() Text {
	return Text{
		Intro:       "Internet usage throughout the world has increased drastically since 1990",
		Heading:     "Internet Users per hundred people: %d",
		Hint:        "(Hover over each country to see the data, select a year to reshade the map)",
		Attribution: "data source: www.gapminder.org/data/",
		NoData:      "no data",
	}
}

type Options struct {
	IntroDelay     time.Duration
	Tick           time.Duration
	FillTransition time.Duration
	HoverIn        time.Duration
	HoverOut       time.Duration
	LegendDomain   []float64
	Text           Text
}

func DefaultOptions() Options {
	return Options{
		IntroDelay:     3 * time.Second,
		Tick:           time.Second,
		FillTransition: 500 * time.Millisecond,
		HoverIn:        200 * time.Millisecond,
		HoverOut:       600 * time.Millisecond,
		LegendDomain:   scale.LegendDomain,
		Text:           DefaultText(),
	}
}

// Player is the animation and interaction state machine.
type Player struct {
	store   *atlas.Store
	years   []int
	index   map[int]bool
	scale   *scale.Scale
	surface Surface
	opts    Options
	log     *zap.Logger

	state   State
	next    int // index into years of the next auto-play step
	current int
	hasYear bool
	hovered *HoverStart
}

// New returns a player in the Initializing state. years must be ascending
// and duplicate free, as produced by join.Years.
func New(st *atlas.Store, years []int, sc *scale.Scale, surface Surface, opts Options) *Player {
	index := make(map[int]bool, len(years))
	for _, y := range years {
		index[y] = true
	}
	return &Player{
		store:   st,
		years:   years,
		index:   index,
		scale:   sc,
		surface: surface,
		opts:    opts,
		log:     zap.L().With(zap.String("component", "player")),
	}
}

func (p *Player) State() State { return p.state }

// CurrentYear returns the year on screen, if any has been shown yet.
func (p *Player) CurrentYear() (int, bool) { return p.current, p.hasYear }

func (p *Player) Years() []int { return p.years }

// Hovered returns the name of the entity under the pointer.
func (p *Player) Hovered() (string, bool) {
	if p.hovered == nil {
		return "", false
	}
	return p.hovered.Name, true
}

// Start shows the introductory heading. Nothing is shaded yet.
func (p *Player) Start() {
	p.surface.SetHeading(p.opts.Text.Intro)
	p.log.Debug("intro shown", zap.Int("years", len(p.years)), zap.Int("entities", p.store.Len()))
}

// BeginAutoPlay leaves Initializing. It reports whether there are years to
// step through; with none the player goes straight to Interactive.
func (p *Player) BeginAutoPlay() bool {
	if p.state != Initializing {
		return false
	}
	if len(p.years) == 0 {
		p.enterInteractive()
		return false
	}
	p.state = AutoPlaying
	p.next = 0
	p.log.Debug("auto-play started", zap.Ints("years", p.years))
	return true
}

// Tick performs one auto-play step and reports whether more steps remain.
// The step that shows the last year also enters Interactive.
func (p *Player) Tick() bool {
	if p.state != AutoPlaying {
		return false
	}
	year := p.years[p.next]
	p.next++
	p.shade(year)
	p.surface.SetLegend(p.scale.Legend(p.opts.LegendDomain))

	if p.next >= len(p.years) {
		p.enterInteractive()
		return false
	}
	return true
}

// Handle applies one input event.
func (p *Player) Handle(ev Event) error {
	if _, ok := ev.(Skip); ok {
		return p.skip()
	}
	if p.state != Interactive {
		return fmt.Errorf("%w: %s during %s", ErrNotInteractive, ev, p.state)
	}

	switch ev := ev.(type) {
	case YearSelected:
		if !p.index[ev.Year] {
			return fmt.Errorf("%w: %d", ErrUnknownYear, ev.Year)
		}
		p.shade(ev.Year)
		p.surface.ShowYearPicker(p.years, ev.Year)
		p.surface.SetCaption(p.opts.Text.Hint)
		if p.hovered != nil {
			p.showLabel(*p.hovered)
		}
	case HoverStart:
		if _, ok := p.store.Lookup(ev.Name); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownEntity, ev.Name)
		}
		if p.hovered != nil && p.hovered.Name != ev.Name {
			p.surface.Highlight(p.hovered.Name, false, p.opts.HoverOut)
		}
		h := ev
		p.hovered = &h
		p.surface.Highlight(ev.Name, true, p.opts.HoverIn)
		p.showLabel(ev)
	case HoverEnd:
		if p.hovered == nil || p.hovered.Name != ev.Name {
			return nil
		}
		p.surface.Highlight(ev.Name, false, p.opts.HoverOut)
		p.surface.HideLabel()
		p.hovered = nil
	default:
		return fmt.Errorf("player: unhandled event %s", ev)
	}
	return nil
}

// skip finishes auto-play at once on the most recent year.
func (p *Player) skip() error {
	if p.state == Interactive {
		return nil
	}
	p.log.Debug("auto-play skipped", zap.Stringer("state", p.state))
	if len(p.years) > 0 {
		p.shade(p.years[len(p.years)-1])
		p.surface.SetLegend(p.scale.Legend(p.opts.LegendDomain))
	}
	p.enterInteractive()
	return nil
}

func (p *Player) enterInteractive() {
	p.state = Interactive
	p.next = len(p.years)
	if len(p.years) > 0 {
		last := p.years[len(p.years)-1]
		p.surface.ShowYearPicker(p.years, last)
		p.current, p.hasYear = last, true
	}
	p.surface.SetCaption(p.opts.Text.Hint)
	p.surface.SetAttribution(p.opts.Text.Attribution)
	p.log.Debug("interactive", zap.Int("year", p.current))
}

// shade makes year current and recolors every entity for it. Auto-play and
// year selection both go through here.
func (p *Player) shade(year int) {
	p.current, p.hasYear = year, true
	p.surface.SetHeading(fmt.Sprintf(p.opts.Text.Heading, year))
	for _, e := range p.store.Entities() {
		v, ok := e.Value(year)
		p.surface.Fill(e.Name, p.scale.ColorFor(v, ok), p.opts.FillTransition)
	}
}

func (p *Player) showLabel(h HoverStart) {
	p.surface.ShowLabel(Label{Lines: p.LabelLines(h.Name), X: h.X, Y: h.Y})
}

// LabelLines formats the hover label for name at the current year.
func (p *Player) LabelLines(name string) []string {
	value := p.opts.Text.NoData
	year := ""
	if p.hasYear {
		year = strconv.Itoa(p.current)
		if e, ok := p.store.Lookup(name); ok {
			if v, ok := e.Value(p.current); ok {
				value = FormatValue(v)
			}
		}
	}
	return []string{name, year, value}
}

// FormatValue rounds to two decimals and drops trailing zeros.
func FormatValue(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
