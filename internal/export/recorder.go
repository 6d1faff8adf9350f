package export

import (
	"sync"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/inetmap/internal/player"
	"github.com/san-kum/inetmap/internal/scale"
)

// Frame is everything a surface shows at one instant.
type Frame struct {
	Heading     string
	Caption     string
	Attribution string
	Fills       map[string]colorful.Color
	Legend      []scale.Swatch
	Years       []int
	Selected    int
	Picker      bool
	Highlighted string
	Label       *player.Label
}

// Recorder is a player.Surface that keeps the latest state instead of
// drawing it. Transitions complete instantly.
type Recorder struct {
	mu    sync.Mutex
	frame Frame
}

var _ player.Surface = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{frame: Frame{Fills: make(map[string]colorful.Color)}}
}

func (r *Recorder) SetHeading(text string) {
	r.mu.Lock()
	r.frame.Heading = text
	r.mu.Unlock()
}

func (r *Recorder) SetCaption(text string) {
	r.mu.Lock()
	r.frame.Caption = text
	r.mu.Unlock()
}

func (r *Recorder) SetAttribution(text string) {
	r.mu.Lock()
	r.frame.Attribution = text
	r.mu.Unlock()
}

func (r *Recorder) Fill(name string, c colorful.Color, _ time.Duration) {
	r.mu.Lock()
	r.frame.Fills[name] = c
	r.mu.Unlock()
}

func (r *Recorder) SetLegend(swatches []scale.Swatch) {
	r.mu.Lock()
	r.frame.Legend = append(r.frame.Legend[:0], swatches...)
	r.mu.Unlock()
}

func (r *Recorder) ShowYearPicker(years []int, selected int) {
	r.mu.Lock()
	r.frame.Years = append([]int(nil), years...)
	r.frame.Selected = selected
	r.frame.Picker = true
	r.mu.Unlock()
}

func (r *Recorder) Highlight(name string, on bool, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if on {
		r.frame.Highlighted = name
	} else if r.frame.Highlighted == name {
		r.frame.Highlighted = ""
	}
}

func (r *Recorder) ShowLabel(l player.Label) {
	l.Lines = append([]string(nil), l.Lines...)
	r.mu.Lock()
	r.frame.Label = &l
	r.mu.Unlock()
}

func (r *Recorder) HideLabel() {
	r.mu.Lock()
	r.frame.Label = nil
	r.mu.Unlock()
}

// Snapshot returns a deep copy of the current frame.
func (r *Recorder) Snapshot() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	f := r.frame
	f.Fills = make(map[string]colorful.Color, len(r.frame.Fills))
	for k, v := range r.frame.Fills {
		f.Fills[k] = v
	}
	f.Legend = append([]scale.Swatch(nil), r.frame.Legend...)
	f.Years = append([]int(nil), r.frame.Years...)
	if r.frame.Label != nil {
		l := *r.frame.Label
		l.Lines = append([]string(nil), l.Lines...)
		f.Label = &l
	}
	return f
}

// AutoPlay drives p through auto-play without waiting on a clock and calls
// emit after every step with the year shown and the recorded frame. p must
// be fresh and drawing to rec.
func AutoPlay(p *player.Player, rec *Recorder, emit func(year int, f Frame) error) error {
	p.Start()
	if !p.BeginAutoPlay() {
		return nil
	}
	for more := true; more; {
		more = p.Tick()
		year, _ := p.CurrentYear()
		if err := emit(year, rec.Snapshot()); err != nil {
			return err
		}
	}
	return nil
}
