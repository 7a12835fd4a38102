// Package battle resolves a single round-based fight between two fleets
package battle

import (
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/napolitain/fleet-sim/internal/models"
)

// DefaultMaxRounds is the number of rounds after which a battle is a draw
const DefaultMaxRounds = 6

// State is the battle state machine
type State int

const (
	Ongoing State = iota
	AttackersWiped
	DefendersWiped
	MutualDestruction
	RoundLimitReached
)

func (s State) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case AttackersWiped:
		return "attackers_wiped"
	case DefendersWiped:
		return "defenders_wiped"
	case MutualDestruction:
		return "mutual_destruction"
	case RoundLimitReached:
		return "round_limit_reached"
	default:
		return "unknown"
	}
}

// ThresholdFunc yields the explosion threshold a damaged unit's survival
// chance is compared against during cleanup
type ThresholdFunc func(r *rand.Rand) float64

// RandomThreshold draws a fresh uniform threshold per unit
func RandomThreshold(r *rand.Rand) float64 {
	return r.Float64()
}

// FixedThreshold removes every damaged unit whose survival chance is at or below t
func FixedThreshold(t float64) ThresholdFunc {
	return func(*rand.Rand) float64 { return t }
}

// Option configures an Engine
type Option func(*Engine)

// WithMaxRounds overrides DefaultMaxRounds
func WithMaxRounds(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxRounds = n
		}
	}
}

// WithThreshold sets the cleanup threshold policy. Every unit is then
// checked against it, intact ones included.
func WithThreshold(fn ThresholdFunc) Option {
	return func(e *Engine) {
		if fn != nil {
			e.threshold = fn
			e.keepIntact = false
		}
	}
}

// WithLogger sets the logger used for per-round debug output
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// Result is the terminal composition of both sides
type Result struct {
	State     State
	Rounds    int
	Attackers models.Counts
	Defenders models.Counts
}

// Engine owns the starting snapshot and the live fleets of one battle
type Engine struct {
	startingAttackers models.Fleet
	startingDefenders models.Fleet
	attackers         models.Fleet
	defenders         models.Fleet

	rng       *rand.Rand
	maxRounds int
	threshold ThresholdFunc
	log       zerolog.Logger

	// keepIntact skips the threshold draw for units at full survival chance
	keepIntact bool

	rounds int
	state  State
}

// New creates an engine. The given fleets become the starting snapshot and
// are never mutated; r is the only source of randomness the engine uses.
func New(attackers, defenders models.Fleet, r *rand.Rand, opts ...Option) *Engine {
	e := &Engine{
		startingAttackers: attackers.Clone(),
		startingDefenders: defenders.Clone(),
		rng:               r,
		maxRounds:         DefaultMaxRounds,
		threshold:         RandomThreshold,
		keepIntact:        true,
		log:               zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.Reset()
	return e
}

// Reset restores the live fleets to the starting snapshot
func (e *Engine) Reset() {
	e.attackers = e.startingAttackers.Clone()
	e.defenders = e.startingDefenders.Clone()
	e.rounds = 0
	e.state = Ongoing
}

// Reseed swaps the random source, typically before a new trial
func (e *Engine) Reseed(r *rand.Rand) {
	e.rng = r
}

// Run fights rounds until one side is gone or the round cap is hit
func (e *Engine) Run() State {
	for {
		if s := e.terminalState(); s != Ongoing {
			e.state = s
			return s
		}
		e.computeRound()
		e.roundCleanup()
		e.rounds++

		e.log.Debug().
			Int("round", e.rounds).
			Int("attackers", len(e.attackers)).
			Int("defenders", len(e.defenders)).
			Msg("round complete")
	}
}

// Result returns per-kind counts of the live fleets
func (e *Engine) Result() Result {
	return Result{
		State:     e.state,
		Rounds:    e.rounds,
		Attackers: e.attackers.Counts(),
		Defenders: e.defenders.Counts(),
	}
}

// State returns the current state
func (e *Engine) State() State { return e.state }

// Rounds returns the number of completed rounds
func (e *Engine) Rounds() int { return e.rounds }

// Attackers returns the live attacking fleet. Callers must not modify it.
func (e *Engine) Attackers() models.Fleet { return e.attackers }

// Defenders returns the live defending fleet. Callers must not modify it.
func (e *Engine) Defenders() models.Fleet { return e.defenders }

func (e *Engine) terminalState() State {
	switch {
	case e.attackers.IsEmpty() && e.defenders.IsEmpty():
		return MutualDestruction
	case e.attackers.IsEmpty():
		return AttackersWiped
	case e.defenders.IsEmpty():
		return DefendersWiped
	case e.rounds >= e.maxRounds:
		return RoundLimitReached
	}
	return Ongoing
}

// computeRound lets attackers fire first, then defenders. Units are only
// removed at cleanup, so units hit this round still fire back.
func (e *Engine) computeRound() {
	e.fire(e.attackers, e.defenders)
	e.fire(e.defenders, e.attackers)
}

func (e *Engine) fire(shooters, targets models.Fleet) {
	n := len(shooters)
	for i := 0; i < n; i++ {
		if targets.IsEmpty() {
			return
		}
		e.unitTurn(&shooters[i], targets)
	}
}

// unitTurn fires the shooter's guaranteed shot and any rapid-fire follow-ups.
// Each follow-up picks a fresh random target. It returns the shots fired.
func (e *Engine) unitTurn(shooter *models.Unit, targets models.Fleet) int {
	shots := 0
	for {
		target := targets.RandomTarget(e.rng)
		shooter.Attack(target)
		shots++

		p := models.ContinueProbability(shooter.RapidFireAgainst(target))
		if p == 0 || e.rng.Float64() >= p {
			return shots
		}
	}
}

func (e *Engine) roundCleanup() {
	keep := func(u *models.Unit) bool {
		if e.keepIntact && u.Stats.SurvivalChance >= 1 {
			return true
		}
		return u.Survives(e.threshold(e.rng))
	}
	e.attackers.Retain(keep)
	e.defenders.Retain(keep)

	e.attackers.RoundReset()
	e.defenders.RoundReset()
}
