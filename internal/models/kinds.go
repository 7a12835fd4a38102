package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned when a unit kind name cannot be resolved
var ErrUnknownKind = errors.New("unknown unit kind")

// UnitKind identifies a ship, defense or civil unit
type UnitKind int

const (
	LightFighter UnitKind = iota
	HeavyFighter
	Cruiser
	Battleship
	Battlecruiser
	Bomber
	Destroyer
	Deathstar
	Reaper
	Pathfinder

	RocketLauncher
	LightLaser
	HeavyLaser
	GaussCannon
	IonCannon
	PlasmaTurret

	SmallShieldDome
	LargeShieldDome

	SmallCargo
	LargeCargo
	ColonyShip
	Recycler
	EspionageProbe
	SolarSatellite
	Crawler

	numUnitKinds
)

// NumUnitKinds is the number of distinct unit kinds, usable as array length
const NumUnitKinds = int(numUnitKinds)

var kindNames = [NumUnitKinds]string{
	LightFighter:    "LightFighter",
	HeavyFighter:    "HeavyFighter",
	Cruiser:         "Cruiser",
	Battleship:      "Battleship",
	Battlecruiser:   "Battlecruiser",
	Bomber:          "Bomber",
	Destroyer:       "Destroyer",
	Deathstar:       "Deathstar",
	Reaper:          "Reaper",
	Pathfinder:      "Pathfinder",
	RocketLauncher:  "RocketLauncher",
	LightLaser:      "LightLaser",
	HeavyLaser:      "HeavyLaser",
	GaussCannon:     "GaussCannon",
	IonCannon:       "IonCannon",
	PlasmaTurret:    "PlasmaTurret",
	SmallShieldDome: "SmallShieldDome",
	LargeShieldDome: "LargeShieldDome",
	SmallCargo:      "SmallCargo",
	LargeCargo:      "LargeCargo",
	ColonyShip:      "ColonyShip",
	Recycler:        "Recycler",
	EspionageProbe:  "EspionageProbe",
	SolarSatellite:  "SolarSatellite",
	Crawler:         "Crawler",
}

// AllUnitKinds returns all unit kinds in deterministic order (ships, defenses, civil)
func AllUnitKinds() []UnitKind {
	kinds := make([]UnitKind, NumUnitKinds)
	for i := range kinds {
		kinds[i] = UnitKind(i)
	}
	return kinds
}

// Valid reports whether k is a known kind
func (k UnitKind) Valid() bool {
	return k >= 0 && k < numUnitKinds
}

func (k UnitKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("UnitKind(%d)", int(k))
	}
	return kindNames[k]
}

// IsDefense reports whether the kind is a stationary planetary defense
func (k UnitKind) IsDefense() bool {
	return k >= RocketLauncher && k <= LargeShieldDome
}

// ParseUnitKind resolves a kind from its name. Matching ignores case,
// spaces, dashes and underscores, so "light_fighter" and "Light Fighter" both work.
func ParseUnitKind(name string) (UnitKind, error) {
	want := normalizeKindName(name)
	for k, n := range kindNames {
		if normalizeKindName(n) == want {
			return UnitKind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// MarshalText implements encoding.TextMarshaler
func (k UnitKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *UnitKind) UnmarshalText(text []byte) error {
	parsed, err := ParseUnitKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func normalizeKindName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}
