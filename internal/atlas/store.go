package atlas

import (
	"fmt"
	"math"

	"github.com/twpayne/go-geom"
)

// Store keeps entities in insertion order with an index by name.
type Store struct {
	names    NameTable
	entities []*Entity
	byName   map[string]*Entity
}

func New(names NameTable) *Store {
	if names == nil {
		names = NameTable{}
	}
	return &Store{
		names:  names,
		byName: make(map[string]*Entity),
	}
}

// Names returns the normalization table the store was built with.
func (s *Store) Names() NameTable { return s.names }

// Add normalizes name and appends a new entity without observations.
func (s *Store) Add(name string, g geom.T) (*Entity, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	name = s.names.Normalize(name)
	if _, ok := s.byName[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	e := &Entity{Name: name, Geometry: g, Observations: make(map[int]float64)}
	s.entities = append(s.entities, e)
	s.byName[name] = e
	return e, nil
}

// Lookup finds an entity by its canonical name.
func (s *Store) Lookup(name string) (*Entity, bool) {
	e, ok := s.byName[name]
	return e, ok
}

// Entities returns the entities in insertion order. The slice is shared.
func (s *Store) Entities() []*Entity { return s.entities }

func (s *Store) Len() int { return len(s.entities) }

// Max returns the largest observed value across all entities and years, or
// zero when nothing has been observed.
func (s *Store) Max() float64 {
	max := 0.0
	for _, e := range s.entities {
		for _, v := range e.Observations {
			max = math.Max(max, v)
		}
	}
	return max
}

// Bounds returns the union of all entity bounds.
func (s *Store) Bounds() *geom.Bounds {
	b := geom.NewBounds(geom.XY)
	for _, e := range s.entities {
		if e.Geometry != nil {
			b.Extend(e.Geometry)
		}
	}
	return b
}

// Observed reports how many entities carry at least one observation.
func (s *Store) Observed() int {
	n := 0
	for _, e := range s.entities {
		if len(e.Observations) > 0 {
			n++
		}
	}
	return n
}
