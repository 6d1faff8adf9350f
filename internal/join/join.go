// Package join attaches year-keyed observations to the entities of an
// atlas.Store by exact country name after normalization.
package join

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/inetmap/internal/atlas"
)

// ErrDuplicate is returned under the Error policy when a (country, year)
// pair appears twice in one run.
var ErrDuplicate = errors.New("join: duplicate observation")

// Observation is one row of the tidy series.
type Observation struct {
	Country string
	Year    int
	Value   float64
}

// Policy decides which observation survives when a (country, year) pair
// repeats.
type Policy string

const (
	LastWins  Policy = "last"
	FirstWins Policy = "first"
	Error     Policy = "error"
)

// ParsePolicy maps a config string to a Policy. Empty means LastWins.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", LastWins:
		return LastWins, nil
	case FirstWins, Error:
		return Policy(s), nil
	}
	return "", fmt.Errorf("join: unknown duplicate policy %q", s)
}

type Options struct {
	Duplicates Policy
}

// Report summarizes one join run.
type Report struct {
	Years      []int
	Applied    int
	Unmatched  []string
	Duplicates int
}

type key struct {
	country string
	year    int
}

// Run merges obs into st. Observations whose country has no entity are
// dropped. The observation slice is not modified. Under the Error policy
// the store is left untouched when a duplicate is found.
func Run(st *atlas.Store, obs []Observation, opts Options) (Report, error) {
	policy := opts.Duplicates
	if policy == "" {
		policy = LastWins
	}

	years, groups := byYear(obs)
	report := Report{Years: years}
	if policy == Error {
		if err := firstDuplicate(st, years, groups); err != nil {
			report.Duplicates = 1
			return report, err
		}
	}
	seen := make(map[key]bool, len(obs))
	unmatched := make(map[string]bool)

	for _, year := range years {
		for _, o := range groups[year] {
			name := st.Names().Normalize(o.Country)
			e, ok := st.Lookup(name)
			if !ok {
				unmatched[name] = true
				continue
			}

			k := key{name, year}
			if seen[k] {
				report.Duplicates++
				if policy == FirstWins {
					continue
				}
			}
			seen[k] = true

			e.Set(year, o.Value)
			report.Applied++
		}
	}

	for name := range unmatched {
		report.Unmatched = append(report.Unmatched, name)
	}
	sort.Strings(report.Unmatched)

	return report, nil
}

// firstDuplicate reports the first matched (country, year) pair that
// repeats, walking years in order.
func firstDuplicate(st *atlas.Store, years []int, groups map[int][]Observation) error {
	seen := make(map[string]bool)
	for _, year := range years {
		clear(seen)
		for _, o := range groups[year] {
			name := st.Names().Normalize(o.Country)
			if _, ok := st.Lookup(name); !ok {
				continue
			}
			if seen[name] {
				return fmt.Errorf("%w: %s %d", ErrDuplicate, name, year)
			}
			seen[name] = true
		}
	}
	return nil
}

// Years returns every year present in obs, ascending and without repeats.
func Years(obs []Observation) []int {
	years, _ := byYear(obs)
	return years
}

// byYear groups observations by year, keeping input order within a group.
func byYear(obs []Observation) ([]int, map[int][]Observation) {
	groups := make(map[int][]Observation)
	for _, o := range obs {
		groups[o.Year] = append(groups[o.Year], o)
	}
	years := make([]int, 0, len(groups))
	for y := range groups {
		years = append(years, y)
	}
	sort.Ints(years)
	return years, groups
}

// Max returns the largest value in obs.
func Max(obs []Observation) float64 {
	max := 0.0
	for _, o := range obs {
		if o.Value > max {
			max = o.Value
		}
	}
	return max
}
