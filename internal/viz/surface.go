package viz

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/inetmap/internal/player"
	"github.com/san-kum/inetmap/internal/scale"
)

type (
	headingMsg     string
	captionMsg     string
	attributionMsg string
	legendMsg      []scale.Swatch
	labelMsg       player.Label
	hideLabelMsg   struct{}
)

type fillMsg struct {
	name     string
	color    colorful.Color
	duration time.Duration
}

type pickerMsg struct {
	years    []int
	selected int
}

type highlightMsg struct {
	name     string
	on       bool
	duration time.Duration
}

// Surface is a player.Surface that delivers every command to a Model as a
// message. send is usually (*tea.Program).Send.
type Surface struct {
	send func(tea.Msg)
}

var _ player.Surface = (*Surface)(nil)

func NewSurface(send func(tea.Msg)) *Surface {
	return &Surface{send: send}
}

func (s *Surface) SetHeading(text string)     { s.send(headingMsg(text)) }
func (s *Surface) SetCaption(text string)     { s.send(captionMsg(text)) }
func (s *Surface) SetAttribution(text string) { s.send(attributionMsg(text)) }
func (s *Surface) HideLabel()                 { s.send(hideLabelMsg{}) }

func (s *Surface) Fill(name string, c colorful.Color, d time.Duration) {
	s.send(fillMsg{name: name, color: c, duration: d})
}

func (s *Surface) SetLegend(swatches []scale.Swatch) {
	s.send(legendMsg(append([]scale.Swatch(nil), swatches...)))
}

func (s *Surface) ShowYearPicker(years []int, selected int) {
	s.send(pickerMsg{years: append([]int(nil), years...), selected: selected})
}

func (s *Surface) Highlight(name string, on bool, d time.Duration) {
	s.send(highlightMsg{name: name, on: on, duration: d})
}

func (s *Surface) ShowLabel(l player.Label) {
	l.Lines = append([]string(nil), l.Lines...)
	s.send(labelMsg(l))
}
