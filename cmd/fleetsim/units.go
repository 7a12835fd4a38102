package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/fleet-sim/internal/models"
	"github.com/napolitain/fleet-sim/internal/units"
)

func newUnitsCmd() *cobra.Command {
	var (
		techs     models.BattleTechs
		rapidFire bool
	)
	cmd := &cobra.Command{
		Use:   "units",
		Short: "Show unit stats with technologies applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := units.NewFactory(techs)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printBanner(out, "Unit Stats", fmt.Sprintf("attack %d · shield %d · hull %d", techs.Attack, techs.Shield, techs.Hull))
			if err := printUnitStats(out, f); err != nil {
				return err
			}
			if rapidFire {
				fmt.Fprintln(out)
				printRapidFire(out)
			}
			return nil
		},
	}

	cmd.Flags().Int8Var(&techs.Attack, "attack", 0, "Weapons technology level")
	cmd.Flags().Int8Var(&techs.Shield, "shield", 0, "Shielding technology level")
	cmd.Flags().Int8Var(&techs.Hull, "hull", 0, "Armour technology level")
	cmd.Flags().BoolVarP(&rapidFire, "rapidfire", "r", false, "Also show the rapid-fire table")
	return cmd
}

func unitClass(k models.UnitKind) string {
	if k.IsDefense() {
		return "defense"
	}
	return "ship"
}

func printUnitStats(w io.Writer, f *units.Factory) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Unit", "Class", "Hull", "Shield", "Attack"}),
	)

	for _, def := range units.AllUnits() {
		u, err := f.Create(def.Kind)
		if err != nil {
			return err
		}
		table.Append([]string{
			def.Kind.String(),
			unitClass(def.Kind),
			fmt.Sprintf("%d", u.Stats.BaseHull),
			fmt.Sprintf("%d", u.Stats.BaseShield),
			fmt.Sprintf("%d", u.Stats.BaseAttack),
		})
	}
	table.Render()
	return nil
}

func printRapidFire(w io.Writer) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Attacker", "Rapid fire against"}),
	)

	for _, attacker := range models.AllUnitKinds() {
		var targets []string
		for _, target := range models.AllUnitKinds() {
			if r := models.RapidFire(attacker, target); r > 1 {
				targets = append(targets, fmt.Sprintf("%s:%d", target, r))
			}
		}
		if len(targets) == 0 {
			continue
		}
		table.Append([]string{attacker.String(), strings.Join(targets, ", ")})
	}
	table.Render()
}
