package viz

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// colorTween fades between two colors in RGB.
type colorTween struct {
	from, to colorful.Color
	tween    *gween.Tween
}

func newColorTween(from, to colorful.Color, d time.Duration) *colorTween {
	return &colorTween{from: from, to: to, tween: gween.New(0, 1, float32(d.Seconds()), ease.InOutQuad)}
}

// Update advances by dt seconds.
func (c *colorTween) Update(dt float32) (colorful.Color, bool) {
	t, done := c.tween.Update(dt)
	if done {
		return c.to, true
	}
	return c.from.BlendRgb(c.to, float64(t)).Clamped(), false
}

// levelTween moves a highlight level between 0 and 1.
type levelTween struct {
	tween *gween.Tween
	to    float64
}

func newLevelTween(from, to float64, d time.Duration) *levelTween {
	return &levelTween{tween: gween.New(float32(from), float32(to), float32(d.Seconds()), ease.OutQuad), to: to}
}

func (l *levelTween) Update(dt float32) (float64, bool) {
	v, done := l.tween.Update(dt)
	if done {
		return l.to, true
	}
	return float64(v), false
}
