package units

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/napolitain/fleet-sim/internal/models"
)

// MinTechLevel is the lowest level that still leaves a non-negative stat
const MinTechLevel = -10

var (
	// ErrInvalidTechLevel is returned for technology levels below MinTechLevel
	ErrInvalidTechLevel = errors.New("invalid technology level")
	// ErrNegativeCount is returned when a fleet asks for fewer than zero units
	ErrNegativeCount = errors.New("negative unit count")
)

// Factory builds units with one side's technology levels applied
type Factory struct {
	techs models.BattleTechs
}

// NewFactory creates a factory after validating the tech levels
func NewFactory(techs models.BattleTechs) (*Factory, error) {
	if err := ValidateTechs(techs); err != nil {
		return nil, err
	}
	return &Factory{techs: techs}, nil
}

// Techs returns the technology levels applied by the factory
func (f *Factory) Techs() models.BattleTechs {
	return f.techs
}

// ValidateTechs checks that every level is at least MinTechLevel
func ValidateTechs(techs models.BattleTechs) error {
	for _, lvl := range []struct {
		name  string
		level int8
	}{
		{"attack", techs.Attack},
		{"shield", techs.Shield},
		{"hull", techs.Hull},
	} {
		if lvl.level < MinTechLevel {
			return fmt.Errorf("%w: %s level %d is below %d", ErrInvalidTechLevel, lvl.name, lvl.level, MinTechLevel)
		}
	}
	return nil
}

// Create builds a single unit of the given kind
func (f *Factory) Create(kind models.UnitKind) (models.Unit, error) {
	def, ok := GetDefinition(kind)
	if !ok {
		return models.Unit{}, fmt.Errorf("%w: %d", models.ErrUnknownKind, int(kind))
	}
	return models.NewUnit(kind, def.Stats().WithTechs(f.techs)), nil
}

// FromCounts builds a fleet from a kind to count mapping. Units are laid
// out in kind order so the same counts always produce the same fleet.
func (f *Factory) FromCounts(counts map[models.UnitKind]int) (models.Fleet, error) {
	var c models.Counts
	total := 0
	for kind, n := range counts {
		if !kind.Valid() {
			return nil, fmt.Errorf("%w: %d", models.ErrUnknownKind, int(kind))
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: %s=%d", ErrNegativeCount, kind, n)
		}
		c.Add(kind, n)
		total += n
	}

	fleet := make(models.Fleet, 0, total)
	for _, kind := range models.AllUnitKinds() {
		n := c.Get(kind)
		if n == 0 {
			continue
		}
		proto, err := f.Create(kind)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			fleet = append(fleet, proto)
		}
	}
	return fleet, nil
}

// FromNames is FromCounts keyed by unit kind names, as read from scenario files
func (f *Factory) FromNames(counts map[string]int) (models.Fleet, error) {
	byKind := make(map[models.UnitKind]int, len(counts))
	for name, n := range counts {
		kind, err := models.ParseUnitKind(name)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: %s=%d", ErrNegativeCount, name, n)
		}
		byKind[kind] += n
	}
	return f.FromCounts(byKind)
}

// RandomFleet builds size units drawn uniformly from CombatShips
func (f *Factory) RandomFleet(size int, r *rand.Rand) (models.Fleet, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: size=%d", ErrNegativeCount, size)
	}
	ships := CombatShips()
	fleet := make(models.Fleet, 0, size)
	for i := 0; i < size; i++ {
		u, err := f.Create(ships[r.IntN(len(ships))])
		if err != nil {
			return nil, err
		}
		fleet = append(fleet, u)
	}
	return fleet, nil
}
