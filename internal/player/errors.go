package player

import "errors"

var (
	// ErrUnknownYear indicates a selected year outside the dataset's years.
	ErrUnknownYear = errors.New("player: year not in dataset")

	// ErrUnknownEntity indicates a hover event for a name the store lacks.
	ErrUnknownEntity = errors.New("player: unknown entity")

	// ErrNotInteractive indicates an input event before auto-play finished.
	ErrNotInteractive = errors.New("player: not accepting input yet")
)
