package models

// Unit pairs a kind with its combat stats
type Unit struct {
	Kind  UnitKind
	Stats UnitStats
}

// NewUnit creates a unit of the given kind
func NewUnit(kind UnitKind, stats UnitStats) Unit {
	return Unit{Kind: kind, Stats: stats}
}

// Attack fires one shot at target using the unit's base attack
func (u *Unit) Attack(target *Unit) bool {
	return target.Stats.ReceiveDamage(u.Stats.BaseAttack)
}

// RapidFireAgainst returns the rapid-fire factor of u against target
func (u *Unit) RapidFireAgainst(target *Unit) int {
	return RapidFire(u.Kind, target.Kind)
}

// RoundReset prepares the unit for the next round
func (u *Unit) RoundReset() {
	u.Stats.RoundReset()
}

// Survives reports whether the unit is kept at the given explosion threshold
func (u *Unit) Survives(threshold float64) bool {
	return u.Stats.Survives(threshold)
}

func (u Unit) String() string {
	return u.Kind.String()
}
