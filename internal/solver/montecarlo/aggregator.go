// Package montecarlo runs many independent battles between the same two
// fleets and reports the expected outcome
package montecarlo

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/napolitain/fleet-sim/internal/models"
	"github.com/napolitain/fleet-sim/internal/solver/battle"
)

// ErrInvalidTrials is returned when fewer than one trial is requested
var ErrInvalidTrials = errors.New("trial count must be positive")

// ProgressFunc is called after every finished trial with the number of
// trials done so far. It is called from several goroutines at once.
type ProgressFunc func(done, total int)

// Option configures a Simulator
type Option func(*Simulator)

// WithWorkers sets the number of goroutines running trials. Values below one
// are ignored.
func WithWorkers(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithSeed sets the seed every trial generator is derived from
func WithSeed(seed uint64) Option {
	return func(s *Simulator) {
		s.seed = seed
	}
}

// WithEngineOptions passes options to every battle engine
func WithEngineOptions(opts ...battle.Option) Option {
	return func(s *Simulator) {
		s.engineOpts = append(s.engineOpts, opts...)
	}
}

// WithLogger sets the logger
func WithLogger(l zerolog.Logger) Option {
	return func(s *Simulator) {
		s.log = l
	}
}

// WithProgress registers a progress callback
func WithProgress(fn ProgressFunc) Option {
	return func(s *Simulator) {
		s.progress = fn
	}
}

// Simulator repeats a battle between fixed starting fleets
type Simulator struct {
	attackers  models.Fleet
	defenders  models.Fleet
	seed       uint64
	workers    int
	engineOpts []battle.Option
	log        zerolog.Logger
	progress   ProgressFunc
}

// New creates a simulator. The fleets are copied and never mutated.
func New(attackers, defenders models.Fleet, opts ...Option) *Simulator {
	s := &Simulator{
		attackers: attackers.Clone(),
		defenders: defenders.Clone(),
		workers:   runtime.NumCPU(),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TrialRand returns the random source for trial i. Trial 0 of a seed is the
// source a single battle with that seed uses.
func TrialRand(seed uint64, i int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(i)))
}

// tally accumulates integer totals so the merge is order independent
type tally struct {
	attackers models.Counts
	defenders models.Counts
	states    [battle.RoundLimitReached + 1]int
	rounds    int
}

func (t *tally) record(res battle.Result) {
	for k := range res.Attackers {
		t.attackers[k] += res.Attackers[k]
		t.defenders[k] += res.Defenders[k]
	}
	t.states[res.State]++
	t.rounds += res.Rounds
}

func (t *tally) merge(o *tally) {
	for k := range o.attackers {
		t.attackers[k] += o.attackers[k]
		t.defenders[k] += o.defenders[k]
	}
	for i := range o.states {
		t.states[i] += o.states[i]
	}
	t.rounds += o.rounds
}

// MeanResults runs trials independent battles and returns the expected
// survivors per side. Trial i always uses TrialRand(seed, i), so the summary
// does not depend on the number of workers. Cancelling ctx stops every worker
// before its next trial.
func (s *Simulator) MeanResults(ctx context.Context, trials int) (*Summary, error) {
	if trials < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTrials, trials)
	}
	workers := min(s.workers, trials)

	s.log.Info().
		Int("trials", trials).
		Int("workers", workers).
		Uint64("seed", s.seed).
		Int("attackers", len(s.attackers)).
		Int("defenders", len(s.defenders)).
		Msg("starting simulation")
	start := time.Now()

	partial := make([]tally, workers)
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			acc := &partial[w]
			engine := battle.New(s.attackers, s.defenders, nil, s.engineOpts...)
			for i := w; i < trials; i += workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				engine.Reset()
				engine.Reseed(TrialRand(s.seed, i))
				engine.Run()
				acc.record(engine.Result())

				n := done.Add(1)
				if s.progress != nil {
					s.progress(int(n), trials)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Warn().Err(err).Int64("done", done.Load()).Int("trials", trials).Msg("simulation interrupted")
		return nil, fmt.Errorf("simulation interrupted after %d of %d trials: %w", done.Load(), trials, err)
	}

	var total tally
	for i := range partial {
		total.merge(&partial[i])
	}
	summary := newSummary(trials, s.attackers.Counts(), s.defenders.Counts(), &total)

	s.log.Info().
		Dur("elapsed", time.Since(start)).
		Float64("attackerWins", summary.AttackerWins).
		Float64("defenderWins", summary.DefenderWins).
		Float64("draws", summary.Draws).
		Msg("simulation finished")

	return summary, nil
}
