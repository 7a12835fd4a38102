package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/napolitain/fleet-sim/internal/loader"
	"github.com/napolitain/fleet-sim/internal/models"
	"github.com/napolitain/fleet-sim/internal/solver/montecarlo"
)

func newSimulateCmd() *cobra.Command {
	var progress bool

	cmd := &cobra.Command{
		Use:   "simulate <scenario>",
		Short: "Estimate expected survivors over many battles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := loader.LoadScenario(args[0])
			if err != nil {
				return err
			}
			attackers, defenders, err := sc.Fleets()
			if err != nil {
				return fmt.Errorf("scenario %q: %w", sc.Name, err)
			}

			trials := cfg.Trials
			if sc.Trials > 0 && !cmd.Flags().Changed("trials") {
				trials = sc.Trials
			}
			seed := resolveSeed(cmd, sc.Seed)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			simLogger := logger
			if progress && logger.GetLevel() < zerolog.WarnLevel {
				simLogger = logger.Level(zerolog.WarnLevel)
			}
			opts := []montecarlo.Option{
				montecarlo.WithWorkers(cfg.Workers),
				montecarlo.WithSeed(seed),
				montecarlo.WithEngineOptions(engineOptions(cfg)...),
				montecarlo.WithLogger(simLogger),
			}

			var summary *montecarlo.Summary
			if progress {
				summary, err = simulateWithProgress(ctx, sc.Name, attackers, defenders, trials, opts)
			} else {
				summary, err = montecarlo.New(attackers, defenders, opts...).MeanResults(ctx, trials)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printBanner(out, sc.Name, sc.Description)
			printSummary(out, attackers.Counts(), defenders.Counts(), summary)
			fmt.Fprintf(out, "\nSeed: %d\n", seed)
			return nil
		},
	}

	cmd.Flags().Int("trials", 1000, "Number of battles to simulate")
	cmd.Flags().Int("workers", defaultWorkers(), "Goroutines running battles")
	cmd.Flags().BoolVarP(&progress, "progress", "p", false, "Show a live progress bar")
	return cmd
}

func simulateWithProgress(ctx context.Context, name string, attackers, defenders models.Fleet, trials int, opts []montecarlo.Option) (*montecarlo.Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := newProgressProgram(name, trials, cancel, os.Stderr)
	step := max(trials/200, 1)
	opts = append(opts, montecarlo.WithProgress(func(done, total int) {
		if done%step == 0 || done == total {
			p.Send(progressMsg{done: done, total: total})
		}
	}))

	go func() {
		s, err := montecarlo.New(attackers, defenders, opts...).MeanResults(ctx, trials)
		p.Send(finishedMsg{summary: s, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("progress view: %w", err)
	}
	m := final.(progressModel)
	return m.summary, m.err
}

func printSummary(w io.Writer, startA, startD models.Counts, s *montecarlo.Summary) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Side", "Unit", "Start", "Expected survivors", "Expected losses"}),
	)
	for _, side := range []struct {
		name      string
		start     models.Counts
		survivors map[models.UnitKind]float64
	}{
		{"attacker", startA, s.Attackers},
		{"defender", startD, s.Defenders},
	} {
		losses := montecarlo.Losses(side.start, side.survivors)
		side.start.EachNonZero(func(k models.UnitKind, n int) {
			table.Append([]string{
				side.name,
				k.String(),
				fmt.Sprintf("%d", n),
				fmt.Sprintf("%.2f", side.survivors[k]),
				fmt.Sprintf("%.2f", losses[k]),
			})
		})
	}
	table.Render()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Trials:        %d\n", s.Trials)
	fmt.Fprintf(w, "Attacker wins: %s\n", percent(s.AttackerWins))
	fmt.Fprintf(w, "Defender wins: %s\n", percent(s.DefenderWins))
	fmt.Fprintf(w, "Draws:         %s\n", percent(s.Draws))
	fmt.Fprintf(w, "Mean survivors: attacker %.2f / defender %.2f\n", s.MeanAttackers, s.MeanDefenders)
	fmt.Fprintf(w, "Mean rounds:   %.2f\n", s.MeanRounds)
}

func percent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}
