package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/napolitain/fleet-sim/internal/models"
	"github.com/napolitain/fleet-sim/internal/units"
)

// ErrUnsupportedFormat is returned for scenario files that are neither YAML nor JSON
var ErrUnsupportedFormat = errors.New("unsupported scenario format")

// Side describes one party of a battle as read from a scenario file
type Side struct {
	Techs models.BattleTechs `yaml:"techs" json:"techs"`
	Units map[string]int     `yaml:"units" json:"units"`
}

// Fleet builds the side's fleet with its technologies applied
func (s Side) Fleet() (models.Fleet, error) {
	f, err := units.NewFactory(s.Techs)
	if err != nil {
		return nil, err
	}
	return f.FromNames(s.Units)
}

// Scenario is a battle setup: two sides plus optional simulation overrides
type Scenario struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Attacker    Side   `yaml:"attacker" json:"attacker"`
	Defender    Side   `yaml:"defender" json:"defender"`

	// Trials and Seed override the configured values when non-zero
	Trials int    `yaml:"trials,omitempty" json:"trials,omitempty"`
	Seed   uint64 `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// Fleets builds both fleets of the scenario
func (s *Scenario) Fleets() (attackers, defenders models.Fleet, err error) {
	attackers, err = s.Attacker.Fleet()
	if err != nil {
		return nil, nil, fmt.Errorf("attacker: %w", err)
	}
	defenders, err = s.Defender.Fleet()
	if err != nil {
		return nil, nil, fmt.Errorf("defender: %w", err)
	}
	return attackers, defenders, nil
}

// Validate checks trial count, tech levels and unit names without building fleets
func (s *Scenario) Validate() error {
	if s.Trials < 0 {
		return fmt.Errorf("scenario %q: negative trials %d", s.Name, s.Trials)
	}
	for _, side := range []struct {
		name string
		side Side
	}{
		{"attacker", s.Attacker},
		{"defender", s.Defender},
	} {
		if err := units.ValidateTechs(side.side.Techs); err != nil {
			return fmt.Errorf("scenario %q %s: %w", s.Name, side.name, err)
		}
		for name, n := range side.side.Units {
			if _, err := models.ParseUnitKind(name); err != nil {
				return fmt.Errorf("scenario %q %s: %w", s.Name, side.name, err)
			}
			if n < 0 {
				return fmt.Errorf("scenario %q %s: %w: %s=%d", s.Name, side.name, units.ErrNegativeCount, name, n)
			}
		}
	}
	return nil
}

// Supported reports whether path has a scenario file extension
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// LoadScenario reads a YAML or JSON scenario file. A missing name defaults
// to the file name without extension.
func LoadScenario(path string) (*Scenario, error) {
	if !Supported(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	sc, err := ParseScenario(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// ParseScenario decodes a scenario in the format given by ext. Unknown
// fields are rejected.
func ParseScenario(data []byte, ext string) (*Scenario, error) {
	var sc Scenario
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&sc); err != nil {
			return nil, err
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&sc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	return &sc, nil
}

// LoadScenarios loads every scenario file in dir, sorted by name. Files
// that fail to load are skipped and reported together in the returned error.
func LoadScenarios(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenarios directory: %w", err)
	}

	var (
		scenarios []*Scenario
		errs      []error
	)
	for _, entry := range entries {
		if entry.IsDir() || !Supported(entry.Name()) {
			continue
		}
		sc, err := LoadScenario(filepath.Join(dir, entry.Name()))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scenarios = append(scenarios, sc)
	}

	slices.SortFunc(scenarios, func(a, b *Scenario) int {
		return strings.Compare(a.Name, b.Name)
	})
	return scenarios, errors.Join(errs...)
}

// SaveScenario writes sc as YAML or JSON depending on the extension of path
func SaveScenario(path string, sc *Scenario) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(sc)
	case ".json":
		data, err = json.MarshalIndent(sc, "", "  ")
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("failed to encode scenario: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
