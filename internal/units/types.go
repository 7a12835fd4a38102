package units

import "github.com/napolitain/fleet-sim/internal/models"

// Definition holds the base combat values of a unit kind before technologies
type Definition struct {
	Kind   models.UnitKind
	Hull   int
	Shield int
	Attack int
}

// Stats returns untouched base stats for the definition
func (d Definition) Stats() models.UnitStats {
	return models.NewUnitStats(d.Hull, d.Shield, d.Attack)
}

// definitions is indexed by kind
var definitions = [models.NumUnitKinds]Definition{
	// Ships
	models.LightFighter:  {Hull: 400, Shield: 10, Attack: 50},
	models.HeavyFighter:  {Hull: 1_000, Shield: 25, Attack: 150},
	models.Cruiser:       {Hull: 2_700, Shield: 50, Attack: 400},
	models.Battleship:    {Hull: 6_000, Shield: 200, Attack: 1_000},
	models.Battlecruiser: {Hull: 7_000, Shield: 400, Attack: 700},
	models.Bomber:        {Hull: 7_500, Shield: 500, Attack: 1_000},
	models.Destroyer:     {Hull: 11_000, Shield: 500, Attack: 2_000},
	models.Deathstar:     {Hull: 2_340_000, Shield: 50_000, Attack: 200_000},
	models.Reaper:        {Hull: 14_000, Shield: 700, Attack: 2_800},
	models.Pathfinder:    {Hull: 2_300, Shield: 100, Attack: 200},

	// Defenses
	models.RocketLauncher:  {Hull: 200, Shield: 20, Attack: 80},
	models.LightLaser:      {Hull: 200, Shield: 25, Attack: 100},
	models.HeavyLaser:      {Hull: 800, Shield: 100, Attack: 250},
	models.GaussCannon:     {Hull: 3_500, Shield: 200, Attack: 1_100},
	models.IonCannon:       {Hull: 800, Shield: 500, Attack: 150},
	models.PlasmaTurret:    {Hull: 10_000, Shield: 300, Attack: 3_000},
	models.SmallShieldDome: {Hull: 2_000, Shield: 2_000, Attack: 1},
	models.LargeShieldDome: {Hull: 10_000, Shield: 10_000, Attack: 1},

	// Civil
	models.SmallCargo:     {Hull: 400, Shield: 10, Attack: 5},
	models.LargeCargo:     {Hull: 1_200, Shield: 25, Attack: 5},
	models.ColonyShip:     {Hull: 3_000, Shield: 100, Attack: 50},
	models.Recycler:       {Hull: 1_600, Shield: 10, Attack: 1},
	models.EspionageProbe: {Hull: 100, Shield: 0, Attack: 0},
	models.SolarSatellite: {Hull: 200, Shield: 1, Attack: 1},
	models.Crawler:        {Hull: 400, Shield: 1, Attack: 1},
}

func init() {
	for k := range definitions {
		definitions[k].Kind = models.UnitKind(k)
	}
}

// GetDefinition returns the base definition for a kind
func GetDefinition(kind models.UnitKind) (Definition, bool) {
	if !kind.Valid() {
		return Definition{}, false
	}
	return definitions[kind], true
}

// AllUnits returns every definition in kind order
func AllUnits() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions[:])
	return out
}

// CombatShips returns the ship kinds RandomFleet draws from
func CombatShips() []models.UnitKind {
	return []models.UnitKind{models.LightFighter, models.HeavyFighter, models.Cruiser}
}
