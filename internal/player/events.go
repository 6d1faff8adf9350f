package player

import "fmt"

// Event is an input delivered by the rendering surface.
type Event interface {
	fmt.Stringer
	isEvent()
}

// YearSelected picks the year to show.
type YearSelected struct {
	Year int
}

// HoverStart reports the pointer entering an entity at screen position X, Y.
type HoverStart struct {
	Name string
	X, Y int
}

// HoverEnd reports the pointer leaving an entity.
type HoverEnd struct {
	Name string
}

// Skip ends auto-play early and jumps to the most recent year.
type Skip struct{}

func (YearSelected) isEvent() {}
func (HoverStart) isEvent()   {}
func (HoverEnd) isEvent()     {}
func (Skip) isEvent()         {}

func (e YearSelected) String() string { return fmt.Sprintf("year-selected(%d)", e.Year) }
func (e HoverStart) String() string {
	return fmt.Sprintf("hover-start(%s @ %d,%d)", e.Name, e.X, e.Y)
}
func (e HoverEnd) String() string { return fmt.Sprintf("hover-end(%s)", e.Name) }
func (Skip) String() string       { return "skip" }
