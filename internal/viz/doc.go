// Package viz draws the choropleth in a terminal.
//
// The package implements a player.Surface on top of Bubble Tea:
//
//   - [Model]: the tea.Model that owns the screen
//   - [Surface]: forwards player commands into a running tea.Program
//   - [Canvas]: half-block pixel canvas, two pixels per cell
//
// Fill and highlight changes fade over the duration the player asks for.
// Mouse motion over the map and the keys below become player events.
//
// # Key Bindings
//
//	Space  - Skip the intro animation
//	←/→    - Previous/next year
//	Home   - First year
//	End    - Last year
//	G      - Toggle the series panel
//	T      - Cycle color themes
//	?      - Show help
//	Q      - Quit
package viz
