package montecarlo

import (
	"github.com/napolitain/fleet-sim/internal/models"
	"github.com/napolitain/fleet-sim/internal/solver/battle"
)

// Summary is the expected outcome over all trials
type Summary struct {
	Trials int

	// Attackers and Defenders map every kind a side started with to its
	// expected number of survivors
	Attackers map[models.UnitKind]float64
	Defenders map[models.UnitKind]float64

	// MeanAttackers and MeanDefenders are the expected total survivors
	MeanAttackers float64
	MeanDefenders float64

	AttackerWins float64
	DefenderWins float64
	Draws        float64

	MeanRounds float64

	// Outcomes counts trials per terminal state
	Outcomes map[battle.State]int
}

func newSummary(trials int, startA, startD models.Counts, t *tally) *Summary {
	n := float64(trials)
	s := &Summary{
		Trials:    trials,
		Attackers: expected(startA, t.attackers, n),
		Defenders: expected(startD, t.defenders, n),
		Outcomes:  make(map[battle.State]int),
	}
	s.MeanAttackers = float64(t.attackers.Total()) / n
	s.MeanDefenders = float64(t.defenders.Total()) / n

	for st, count := range t.states {
		if count > 0 {
			s.Outcomes[battle.State(st)] = count
		}
	}
	s.AttackerWins = float64(t.states[battle.DefendersWiped]) / n
	s.DefenderWins = float64(t.states[battle.AttackersWiped]) / n
	s.Draws = float64(t.states[battle.MutualDestruction]+t.states[battle.RoundLimitReached]) / n
	s.MeanRounds = float64(t.rounds) / n
	return s
}

func expected(start, survived models.Counts, n float64) map[models.UnitKind]float64 {
	out := make(map[models.UnitKind]float64)
	start.EachNonZero(func(k models.UnitKind, _ int) {
		out[k] = float64(survived.Get(k)) / n
	})
	return out
}

// Losses returns the expected number of lost units per kind for one side
func Losses(start models.Counts, survivors map[models.UnitKind]float64) map[models.UnitKind]float64 {
	out := make(map[models.UnitKind]float64)
	start.EachNonZero(func(k models.UnitKind, n int) {
		out[k] = float64(n) - survivors[k]
	})
	return out
}
