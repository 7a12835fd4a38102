package main

import (
	"math/rand/v2"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/napolitain/fleet-sim/internal/config"
	"github.com/napolitain/fleet-sim/internal/logging"
	"github.com/napolitain/fleet-sim/internal/solver/battle"
)

var (
	configDir string
	cfg       config.Config
	logger    = zerolog.Nop()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fleetsim",
		Short: "Space fleet battle simulator",
		Long: `Resolves round-based battles between two fleets, either once or
many times over to estimate the expected survivors of each side.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configDir, "config-dir", "c", ".", "Directory containing fleetsim.yaml or fleetsim.json")
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")
	pf.String("log-format", "console", "Log format (console, json)")
	pf.Uint64("seed", 0, "Random seed, 0 picks one at random")
	pf.Int("max-rounds", battle.DefaultMaxRounds, "Rounds after which a battle is a draw")
	pf.Float64("explosion-threshold", -1, "Fixed explosion threshold, negative draws one per damaged unit")

	rootCmd.AddCommand(newUnitsCmd(), newRunCmd(), newSimulateCmd())
	return rootCmd
}

func setup(cmd *cobra.Command, args []string) error {
	if err := config.Load(configDir); err != nil {
		return err
	}
	if err := config.BindFlags(cmd.Flags()); err != nil {
		return err
	}
	c, err := config.Current()
	if err != nil {
		return err
	}
	cfg = c
	logger = logging.New(logging.Options{Level: c.LogLevel, Format: c.LogFormat, Writer: cmd.ErrOrStderr()})
	logger.Debug().Interface("config", cfg).Msg("configuration loaded")
	return nil
}

// engineOptions translates the configuration into battle engine options
func engineOptions(c config.Config) []battle.Option {
	opts := []battle.Option{
		battle.WithMaxRounds(c.MaxRounds),
		battle.WithLogger(logger),
	}
	if !c.RandomThreshold() {
		opts = append(opts, battle.WithThreshold(battle.FixedThreshold(c.ExplosionThreshold)))
	}
	return opts
}

// resolveSeed picks the seed for a scenario: an explicit --seed flag wins,
// then the scenario's own seed, then the configured one. Zero means random.
func resolveSeed(cmd *cobra.Command, scenarioSeed uint64) uint64 {
	seed := cfg.Seed
	if scenarioSeed != 0 && !cmd.Flags().Changed("seed") {
		seed = scenarioSeed
	}
	if seed == 0 {
		seed = rand.Uint64()
	}
	return seed
}

// defaultWorkers is used for the --workers flag
func defaultWorkers() int {
	return runtime.NumCPU()
}
