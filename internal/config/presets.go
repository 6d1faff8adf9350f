package config

import (
	"sort"
	"time"
)

// Presets are named pacing profiles for the animation.
var Presets = map[string]*TimingConfig{
	"classic": {
		IntroDelay: 3 * time.Second, Tick: time.Second, FillTransition: 500 * time.Millisecond,
		HoverIn: 200 * time.Millisecond, HoverOut: 600 * time.Millisecond,
	},
	"quick": {
		IntroDelay: 500 * time.Millisecond, Tick: 250 * time.Millisecond, FillTransition: 150 * time.Millisecond,
		HoverIn: 100 * time.Millisecond, HoverOut: 200 * time.Millisecond,
	},
	"slow": {
		IntroDelay: 5 * time.Second, Tick: 3 * time.Second, FillTransition: 1500 * time.Millisecond,
		HoverIn: 300 * time.Millisecond, HoverOut: time.Second,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *TimingConfig {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
