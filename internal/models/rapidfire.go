package models

// rapidFireTable[attacker][defender] holds rapid-fire factors. Zero means none.
var rapidFireTable = buildRapidFireTable()

// civilianTargets are picked off cheaply by almost every ship
var civilianTargets = map[UnitKind]int{
	EspionageProbe: 5,
	SolarSatellite: 5,
	Crawler:        5,
}

func buildRapidFireTable() [NumUnitKinds][NumUnitKinds]int {
	var t [NumUnitKinds][NumUnitKinds]int
	set := func(attacker UnitKind, against map[UnitKind]int) {
		for defender, factor := range against {
			t[attacker][defender] = factor
		}
	}

	for _, k := range []UnitKind{
		LightFighter, HeavyFighter, Cruiser, Battleship, Battlecruiser,
		Bomber, Destroyer, Reaper, Pathfinder,
		SmallCargo, LargeCargo, ColonyShip, Recycler,
	} {
		set(k, civilianTargets)
	}

	set(HeavyFighter, map[UnitKind]int{SmallCargo: 3})
	set(Cruiser, map[UnitKind]int{LightFighter: 6, RocketLauncher: 10})
	set(Battleship, map[UnitKind]int{Pathfinder: 5})
	set(Battlecruiser, map[UnitKind]int{
		HeavyFighter: 4,
		Cruiser:      4,
		Battleship:   7,
		SmallCargo:   3,
		LargeCargo:   3,
	})
	set(Bomber, map[UnitKind]int{
		RocketLauncher: 20,
		LightLaser:     20,
		HeavyLaser:     10,
		IonCannon:      10,
		GaussCannon:    5,
		PlasmaTurret:   5,
	})
	set(Destroyer, map[UnitKind]int{Battlecruiser: 2, LightLaser: 10})
	set(Deathstar, map[UnitKind]int{
		EspionageProbe: 250,
		SolarSatellite: 250,
		Crawler:        250,
		LightFighter:   200,
		HeavyFighter:   100,
		Cruiser:        33,
		Battleship:     30,
		Battlecruiser:  15,
		Bomber:         25,
		Destroyer:      5,
		Reaper:         10,
		Pathfinder:     30,
		SmallCargo:     250,
		LargeCargo:     250,
		ColonyShip:     250,
		Recycler:       250,
		RocketLauncher: 200,
		LightLaser:     200,
		HeavyLaser:     100,
		IonCannon:      100,
		GaussCannon:    50,
	})
	set(Reaper, map[UnitKind]int{Battleship: 7, Bomber: 4, Destroyer: 3})
	set(Pathfinder, map[UnitKind]int{LightFighter: 3, HeavyFighter: 2, Cruiser: 3})
	set(IonCannon, map[UnitKind]int{Reaper: 2})

	return t
}

// RapidFire returns how many shots on average attacker fires against
// defender. It is always at least 1; unlisted pairs get exactly one shot.
func RapidFire(attacker, defender UnitKind) int {
	if !attacker.Valid() || !defender.Valid() {
		return 1
	}
	if f := rapidFireTable[attacker][defender]; f > 1 {
		return f
	}
	return 1
}

// ContinueProbability is the chance of another shot after hitting a target
// with rapid-fire factor r: (r-1)/r
func ContinueProbability(r int) float64 {
	if r <= 1 {
		return 0
	}
	return float64(r-1) / float64(r)
}
