package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/fleet-sim/internal/loader"
	"github.com/napolitain/fleet-sim/internal/models"
	"github.com/napolitain/fleet-sim/internal/solver/battle"
	"github.com/napolitain/fleet-sim/internal/solver/montecarlo"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario>",
		Short: "Fight a single battle",
		Long: `Loads a YAML or JSON scenario and fights one battle. The same seed
reproduces the first trial of "fleetsim simulate".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := loader.LoadScenario(args[0])
			if err != nil {
				return err
			}
			attackers, defenders, err := sc.Fleets()
			if err != nil {
				return fmt.Errorf("scenario %q: %w", sc.Name, err)
			}

			seed := resolveSeed(cmd, sc.Seed)
			logger.Info().Str("scenario", sc.Name).Uint64("seed", seed).Msg("running battle")

			engine := battle.New(attackers, defenders, montecarlo.TrialRand(seed, 0), engineOptions(cfg)...)
			engine.Run()

			out := cmd.OutOrStdout()
			printBanner(out, sc.Name, sc.Description)
			printBattleResult(out, attackers.Counts(), defenders.Counts(), engine.Result())
			fmt.Fprintf(out, "\nSeed: %d\n", seed)
			return nil
		},
	}
}

func printBattleResult(w io.Writer, startA, startD models.Counts, res battle.Result) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Side", "Unit", "Before", "After", "Lost"}),
	)
	for _, side := range []struct {
		name         string
		start, after models.Counts
	}{
		{"attacker", startA, res.Attackers},
		{"defender", startD, res.Defenders},
	} {
		side.start.EachNonZero(func(k models.UnitKind, n int) {
			after := side.after.Get(k)
			table.Append([]string{
				side.name,
				k.String(),
				fmt.Sprintf("%d", n),
				fmt.Sprintf("%d", after),
				fmt.Sprintf("%d", n-after),
			})
		})
	}
	table.Render()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Outcome: %s after %d rounds\n", stateColor(res.State).Sprint(res.State), res.Rounds)
}

func stateColor(s battle.State) *color.Color {
	switch s {
	case battle.DefendersWiped:
		return color.New(color.FgGreen, color.Bold)
	case battle.AttackersWiped:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgYellow, color.Bold)
	}
}
