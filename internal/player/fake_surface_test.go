package player_test

import (
	"strings"
	"sync"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/inetmap/internal/player"
	"github.com/san-kum/inetmap/internal/scale"
)

// fakeSurface records every command it receives.
type fakeSurface struct {
	mu          sync.Mutex
	heading     string
	headings    []string
	caption     string
	attribution string
	fills       map[string]colorful.Color
	fillCount   map[string]int
	legendCalls int
	picker      []int
	selected    int
	highlighted map[string]bool
	label       *player.Label
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		fills:       make(map[string]colorful.Color),
		fillCount:   make(map[string]int),
		highlighted: make(map[string]bool),
	}
}

func (f *fakeSurface) SetHeading(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.heading = text
	f.headings = append(f.headings, text)
}

func (f *fakeSurface) SetCaption(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.caption = text
}

func (f *fakeSurface) SetAttribution(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attribution = text
}

func (f *fakeSurface) Fill(name string, c colorful.Color, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fills[name] = c
	f.fillCount[name]++
}

func (f *fakeSurface) SetLegend([]scale.Swatch) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.legendCalls++
}

func (f *fakeSurface) ShowYearPicker(years []int, selected int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.picker = append([]int(nil), years...)
	f.selected = selected
}

func (f *fakeSurface) Highlight(name string, on bool, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.highlighted[name] = on
}

func (f *fakeSurface) ShowLabel(l player.Label) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.label = &l
}

func (f *fakeSurface) HideLabel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.label = nil
}

func (f *fakeSurface) fill(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fills[name].Hex()
}

func (f *fakeSurface) labelText() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.label == nil {
		return ""
	}
	return strings.Join(f.label.Lines, "\n")
}

func (f *fakeSurface) pickerShown() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.picker != nil
}

// fakeClock hands out channels the test feeds by hand.
type fakeClock struct {
	after  chan time.Time
	ticker *fakeTicker
}

func newFakeClock() *fakeClock {
	return &fakeClock{
		after:  make(chan time.Time),
		ticker: &fakeTicker{c: make(chan time.Time)},
	}
}

func (c *fakeClock) After(time.Duration) <-chan time.Time { return c.after }

func (c *fakeClock) NewTicker(time.Duration) player.Ticker {
	c.ticker.mu.Lock()
	defer c.ticker.mu.Unlock()
	c.ticker.started++
	return c.ticker
}

type fakeTicker struct {
	mu      sync.Mutex
	c       chan time.Time
	started int
	stops   int
}

func (t *fakeTicker) C() <-chan time.Time { return t.c }

func (t *fakeTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stops++
}

func (t *fakeTicker) counts() (started, stops int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started, t.stops
}
