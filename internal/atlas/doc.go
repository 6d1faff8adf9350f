// Package atlas holds the geographic entity store that the choropleth shades.
//
// Each [Entity] pairs a country's boundary geometry with a year-keyed series
// of observed values. The [Store] is built once at load time: geometry is
// added first, observations are merged in afterwards by the join package,
// and from then on the store is only read.
//
//   - [Entity]: geometry plus observations; a missing year means "no data"
//   - [Store]: ordered entities indexed by normalized name
//   - [NameTable]: the fixed name-mismatch patch applied before joins
//
// # Absent versus zero
//
// A year with no observation has no key in [Entity.Observations]. A stored
// zero is a real measurement. Callers use [Entity.Value] to tell them apart.
package atlas
