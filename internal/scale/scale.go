// Package scale maps observed values to display colors.
//
// The mapping is a polylinear power scale: the domain stops 0, max/2 and max
// are raised to the configured exponent and the transformed value is
// interpolated linearly in RGB between the matching range stops. A small
// exponent spreads the low end of the range, where most countries sit.
package scale

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	DefaultExponent = 0.4
	DefaultLow      = "#ffffff"
	DefaultHigh     = "#ff0000"
	DefaultNoData   = "#cccccc"
)

// LegendDomain is the fixed set of values shown in the legend.
var LegendDomain = []float64{0, 2, 5, 10, 20, 40, 60, 80}

type Options struct {
	Exponent float64
	Low      colorful.Color
	High     colorful.Color
	NoData   colorful.Color
}

func DefaultOptions() Options {
	return Options{
		Exponent: DefaultExponent,
		Low:      mustHex(DefaultLow),
		High:     mustHex(DefaultHigh),
		NoData:   mustHex(DefaultNoData),
	}
}

// ParseOptions builds Options from hex strings. Empty strings and a zero
// exponent fall back to the defaults.
func ParseOptions(exponent float64, low, high, noData string) (Options, error) {
	opts := DefaultOptions()
	if exponent > 0 {
		opts.Exponent = exponent
	}
	for _, c := range []struct {
		hex string
		dst *colorful.Color
	}{{low, &opts.Low}, {high, &opts.High}, {noData, &opts.NoData}} {
		if c.hex == "" {
			continue
		}
		parsed, err := colorful.Hex(c.hex)
		if err != nil {
			return Options{}, err
		}
		*c.dst = parsed
	}
	return opts, nil
}

// Scale is immutable once built and shared by every frame, so colors stay
// comparable across years.
type Scale struct {
	opts   Options
	max    float64
	domain [3]float64
	stops  [3]colorful.Color
}

// New builds a scale whose top stop is max, the largest value in the whole
// dataset.
func New(max float64, opts Options) *Scale {
	if opts.Exponent <= 0 {
		opts.Exponent = DefaultExponent
	}
	s := &Scale{opts: opts, max: max}
	for i, d := range []float64{0, max * 0.5, max} {
		s.domain[i] = math.Pow(d, opts.Exponent)
	}
	s.stops = [3]colorful.Color{opts.Low, opts.Low.BlendRgb(opts.High, 0.5), opts.High}
	return s
}

func (s *Scale) Max() float64 { return s.max }

func (s *Scale) Midpoint() float64 { return s.max * 0.5 }

func (s *Scale) NoData() colorful.Color { return s.opts.NoData }

// ColorFor returns the color of an observation. ok=false means no
// observation exists and yields the no-data color; an exact zero is always
// the low color.
func (s *Scale) ColorFor(value float64, ok bool) colorful.Color {
	if !ok || math.IsNaN(value) {
		return s.opts.NoData
	}
	if value <= 0 || s.max <= 0 {
		return s.opts.Low
	}
	seg, t := s.locate(value)
	return s.stops[seg].BlendRgb(s.stops[seg+1], t).Clamped()
}

// Position returns where value falls along the color ramp, from 0 (low
// color) to 1 (high color).
func (s *Scale) Position(value float64) float64 {
	if value <= 0 || s.max <= 0 {
		return 0
	}
	seg, t := s.locate(value)
	return (float64(seg) + t) / 2
}

// locate finds the segment holding value and the fraction inside it.
// Values beyond max clamp to the top stop.
func (s *Scale) locate(value float64) (int, float64) {
	v := math.Pow(value, s.opts.Exponent)
	seg := 0
	if v > s.domain[1] {
		seg = 1
	}
	lo, hi := s.domain[seg], s.domain[seg+1]
	if hi <= lo {
		return seg, 1
	}
	t := (v - lo) / (hi - lo)
	return seg, math.Max(0, math.Min(1, t))
}

// Swatch is one legend entry.
type Swatch struct {
	Value float64
	Color colorful.Color
}

// Legend returns a swatch per domain value. It depends only on the scale,
// never on the year being shown.
func (s *Scale) Legend(domain []float64) []Swatch {
	out := make([]Swatch, len(domain))
	for i, v := range domain {
		out[i] = Swatch{Value: v, Color: s.ColorFor(v, true)}
	}
	return out
}

func mustHex(h string) colorful.Color {
	c, err := colorful.Hex(h)
	if err != nil {
		panic(err)
	}
	return c
}
