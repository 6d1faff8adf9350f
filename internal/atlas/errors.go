package atlas

import "errors"

var (
	// ErrDuplicateName indicates two entities normalize to the same name.
	ErrDuplicateName = errors.New("atlas: duplicate entity name")

	// ErrEmptyName indicates an entity without a name.
	ErrEmptyName = errors.New("atlas: empty entity name")
)
