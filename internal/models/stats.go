package models

// ExplosionHullRatio is the remaining-hull fraction below which a hit
// starts eroding a unit's survival chance
const ExplosionHullRatio = 0.7

// survivalFloor stops further multiplication once a unit is as good as gone
const survivalFloor = 1e-9

// BattleTechs holds attack, shield and hull technology levels.
// Each level adds 10% to the matching base value.
type BattleTechs struct {
	Attack int8 `yaml:"attack" json:"attack"`
	Shield int8 `yaml:"shield" json:"shield"`
	Hull   int8 `yaml:"hull" json:"hull"`
}

// ApplyTech scales value by (1 + level/10), truncated toward zero
func ApplyTech(level int8, value int) int {
	return value * (10 + int(level)) / 10
}

// UnitStats holds base values fixed at creation and the current combat state
type UnitStats struct {
	BaseHull   int
	BaseShield int
	BaseAttack int

	Hull           int
	Shield         int
	SurvivalChance float64
}

// NewUnitStats creates fresh stats with current values equal to the base values
func NewUnitStats(hull, shield, attack int) UnitStats {
	return UnitStats{
		BaseHull:       hull,
		BaseShield:     shield,
		BaseAttack:     attack,
		Hull:           hull,
		Shield:         shield,
		SurvivalChance: 1.0,
	}
}

// WithTechs returns fresh stats built from the base values scaled by techs
func (s UnitStats) WithTechs(techs BattleTechs) UnitStats {
	return NewUnitStats(
		ApplyTech(techs.Hull, s.BaseHull),
		ApplyTech(techs.Shield, s.BaseShield),
		ApplyTech(techs.Attack, s.BaseAttack),
	)
}

// EffectiveDamage returns how much of a shot of size dmg reaches the unit.
//
// A shot larger than the current shield lands in full. A smaller shot is
// rounded down to whole percents of the base shield, so anything under 1%
// of the base shield is absorbed and EffectiveDamage returns 0.
func (s *UnitStats) EffectiveDamage(dmg int) int {
	if dmg > s.Shield || s.BaseShield <= 0 {
		return dmg
	}
	percent := dmg * 100 / s.BaseShield
	return s.BaseShield * percent / 100
}

// ReceiveDamage applies one shot and reports whether it had any effect
func (s *UnitStats) ReceiveDamage(dmg int) bool {
	dmg = s.EffectiveDamage(dmg)
	if dmg <= 0 {
		return false
	}

	s.Hull = max(s.Hull-max(dmg-s.Shield, 0), 0)
	s.Shield = max(s.Shield-dmg, 0)

	if s.SurvivalChance > survivalFloor {
		if remaining := s.HullRatio(); remaining < ExplosionHullRatio {
			s.SurvivalChance *= remaining
		}
	}
	return true
}

// HullRatio returns the remaining hull as a fraction of the base hull
func (s *UnitStats) HullRatio() float64 {
	if s.BaseHull <= 0 {
		return 0
	}
	return float64(s.Hull) / float64(s.BaseHull)
}

// RoundReset restores the shield and survival chance for the next round.
// Hull damage persists.
func (s *UnitStats) RoundReset() {
	s.Shield = s.BaseShield
	s.SurvivalChance = 1.0
}

// Survives reports whether the unit outlives the given explosion threshold
func (s *UnitStats) Survives(threshold float64) bool {
	return threshold < s.SurvivalChance
}
