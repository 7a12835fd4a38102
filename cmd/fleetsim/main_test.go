package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napolitain/fleet-sim/internal/loader"
	"github.com/napolitain/fleet-sim/internal/models"
	"github.com/napolitain/fleet-sim/internal/solver/battle"
	"github.com/napolitain/fleet-sim/internal/solver/montecarlo"
)

const scenarioDir = "../../data/scenarios/"

// execute runs the root command with args and returns what it wrote to stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(viper.Reset)

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestUnitsCommand(t *testing.T) {
	out, err := execute(t, "units", "--attack", "10", "--rapidfire")
	require.NoError(t, err)

	assert.Contains(t, out, "Deathstar")
	assert.Contains(t, out, "SmallShieldDome")
	assert.Contains(t, out, "400000", "deathstar attack doubled by level 10")
	assert.Contains(t, out, "LightFighter:200")
}

func TestUnitsCommandRejectsLowTechs(t *testing.T) {
	_, err := execute(t, "units", "--hull", "-11")
	require.Error(t, err)
}

func TestRunCommand(t *testing.T) {
	out, err := execute(t, "run", scenarioDir+"fighters_vs_battleship.yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "fighters_vs_battleship")
	assert.Contains(t, out, "attackers_wiped")
	assert.Contains(t, out, "after 2 rounds")
	assert.Contains(t, out, "Seed: 1")
}

func TestRunCommandSeedFlagOverridesScenario(t *testing.T) {
	out, err := execute(t, "run", "--seed", "99", scenarioDir+"fighters_vs_battleship.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "Seed: 99")
}

func TestRunCommandMissingScenario(t *testing.T) {
	_, err := execute(t, "run", scenarioDir+"missing.yaml")
	require.Error(t, err)

	_, err = execute(t, "run")
	require.Error(t, err)
}

func TestSimulateCommand(t *testing.T) {
	out, err := execute(t, "simulate", "--trials", "20", "--workers", "2", scenarioDir+"deathstar_raid.yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "deathstar_raid")
	assert.Contains(t, out, "Trials:        20")
	assert.Contains(t, out, "Attacker wins: 100.0%")
	assert.Contains(t, out, "EXPECTED SURVIVORS")
}

func TestSimulateUsesScenarioTrials(t *testing.T) {
	out, err := execute(t, "simulate", scenarioDir+"fighters_vs_battleship.yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "Trials:        100")
	assert.Contains(t, out, "Defender wins: 100.0%")
}

func TestSimulateMatchesRunForFirstTrial(t *testing.T) {
	sc, err := loader.LoadScenario(scenarioDir + "planet_assault.json")
	require.NoError(t, err)
	a, d, err := sc.Fleets()
	require.NoError(t, err)

	e := battle.New(a, d, montecarlo.TrialRand(5, 0))
	e.Run()

	summary, err := montecarlo.New(a, d, montecarlo.WithSeed(5)).MeanResults(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, float64(e.Result().Defenders.Total()), summary.MeanDefenders)
	assert.Equal(t, float64(e.Result().Attackers.Total()), summary.MeanAttackers)
}

func TestEngineOptionsFromConfig(t *testing.T) {
	c := cfg
	c.MaxRounds = 2
	c.ExplosionThreshold = 0
	assert.Len(t, engineOptions(c), 3)

	c.ExplosionThreshold = -1
	assert.Len(t, engineOptions(c), 2)
}

func TestProgressModel(t *testing.T) {
	cancelled := false
	m := newProgressModel("raid", 100, func() { cancelled = true })

	next, cmd := m.Update(progressMsg{done: 40, total: 100})
	assert.Nil(t, cmd)
	m = next.(progressModel)
	assert.Equal(t, 40, m.done)
	assert.Contains(t, m.View(), "40/100 trials")

	next, _ = m.Update(progressMsg{done: 30, total: 100})
	m = next.(progressModel)
	assert.Equal(t, 40, m.done, "late reports do not move the bar back")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(progressModel)
	assert.True(t, cancelled)
	assert.Contains(t, m.View(), "stopping")

	summary := &montecarlo.Summary{Trials: 100}
	next, cmd = m.Update(finishedMsg{summary: summary})
	m = next.(progressModel)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Same(t, summary, m.summary)
	assert.Equal(t, 100, m.done)
	assert.InDelta(t, 1.0, m.ratio(), 1e-12)
}

func TestProgressModelKeepsError(t *testing.T) {
	m := newProgressModel("raid", 10, func() {})
	next, _ := m.Update(finishedMsg{err: context.Canceled})
	m = next.(progressModel)
	assert.True(t, errors.Is(m.err, context.Canceled))
	assert.Less(t, m.ratio(), 1.0)
}

func TestPrintSummary(t *testing.T) {
	var start models.Counts
	start.Add(models.Cruiser, 4)
	summary := &montecarlo.Summary{
		Trials:       10,
		Attackers:    map[models.UnitKind]float64{models.Cruiser: 2.5},
		Defenders:    map[models.UnitKind]float64{},
		AttackerWins: 0.7,
		DefenderWins: 0.2,
		Draws:        0.1,
		MeanRounds:   3.25,
	}

	var buf bytes.Buffer
	printSummary(&buf, start, models.Counts{}, summary)

	out := buf.String()
	assert.Contains(t, out, "2.50")
	assert.Contains(t, out, "1.50")
	assert.Contains(t, out, "Attacker wins: 70.0%")
	assert.Contains(t, out, "Mean rounds:   3.25")
}
