// Package player drives the choropleth through time.
//
// A [Player] moves through three states:
//
//	Initializing ──intro──▶ AutoPlaying ──last year──▶ Interactive
//
// Initializing shows the introductory heading. AutoPlaying advances one year
// per tick in ascending order and shades every entity for that year. After
// the final year the player enters Interactive exactly once and stays there:
// the current year then changes only through [YearSelected], and
// [HoverStart]/[HoverEnd] show and hide a label for one entity.
//
// Auto-play and manual selection share one shading routine, so a year looks
// the same whichever way it was reached.
//
// # Rendering
//
// The player never draws. It issues commands to a [Surface] ("fill this
// entity with this color over this duration", "show this label here") and
// never waits for a transition to finish before the next tick.
//
// # Ownership
//
// All state, including the current year, belongs to the goroutine running
// [Player.Run]. Input reaches it only through the events channel. The
// synchronous methods ([Player.Tick], [Player.Handle]) are for callers that
// drive the player themselves, such as headless frame export and tests.
package player
