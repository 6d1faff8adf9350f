package atlas

// NameTable maps a dataset's spelling of a country to the canonical name
// used as the join key.
type NameTable map[string]string

// DefaultNames patches the two known mismatches between the world boundary
// file and the gapminder series.
func DefaultNames() NameTable {
	return NameTable{
		"USA":     "United States",
		"England": "United Kingdom",
	}
}

// Normalize returns the canonical spelling of name. Names without an entry
// are returned unchanged.
func (t NameTable) Normalize(name string) string {
	if fixed, ok := t[name]; ok {
		return fixed
	}
	return name
}
