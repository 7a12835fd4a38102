package models

import "math/rand/v2"

// Fleet is one side's collection of units. Order carries no meaning.
type Fleet []Unit

// Clone returns an independent copy of the fleet
func (f Fleet) Clone() Fleet {
	if f == nil {
		return nil
	}
	out := make(Fleet, len(f))
	copy(out, f)
	return out
}

// IsEmpty returns true if the fleet has no units
func (f Fleet) IsEmpty() bool {
	return len(f) == 0
}

// RandomTarget returns a uniformly chosen unit. Selecting from an empty
// fleet is a sequencing bug in the caller and panics.
func (f Fleet) RandomTarget(r *rand.Rand) *Unit {
	if len(f) == 0 {
		panic("models: random target requested from empty fleet")
	}
	return &f[r.IntN(len(f))]
}

// Retain keeps the units for which keep returns true, in place
func (f *Fleet) Retain(keep func(*Unit) bool) {
	kept := (*f)[:0]
	for i := range *f {
		if keep(&(*f)[i]) {
			kept = append(kept, (*f)[i])
		}
	}
	clear((*f)[len(kept):])
	*f = kept
}

// RoundReset restores shields and survival chances of every unit
func (f Fleet) RoundReset() {
	for i := range f {
		f[i].RoundReset()
	}
}

// Counts tallies the fleet by kind
func (f Fleet) Counts() Counts {
	var c Counts
	for i := range f {
		c.Add(f[i].Kind, 1)
	}
	return c
}

// Counts holds a unit count per kind (no maps, deterministic iteration)
type Counts [NumUnitKinds]int

// Get returns the count for a kind
func (c Counts) Get(k UnitKind) int {
	if !k.Valid() {
		return 0
	}
	return c[k]
}

// Add adds n units of a kind
func (c *Counts) Add(k UnitKind, n int) {
	if k.Valid() {
		c[k] += n
	}
}

// Total returns the total count of all units
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// EachNonZero calls fn for each kind with a non-zero count, in kind order
func (c Counts) EachNonZero(fn func(UnitKind, int)) {
	for k, n := range c {
		if n != 0 {
			fn(UnitKind(k), n)
		}
	}
}

// Map returns the non-zero counts keyed by kind
func (c Counts) Map() map[UnitKind]int {
	m := make(map[UnitKind]int)
	c.EachNonZero(func(k UnitKind, n int) {
		m[k] = n
	})
	return m
}
