package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/offgrid-tools/hykpi/pkg/kpi"
	"github.com/offgrid-tools/hykpi/pkg/report"
	"github.com/offgrid-tools/hykpi/pkg/scenario"
)

func joinNames() string {
	return strings.Join(scenario.Names(), ", ")
}

func NewScenariosCommand() *cobra.Command {
	verbose := false

	cmd := &cobra.Command{
		Use:     "scenarios",
		Short:   "List appliance scenarios and tank options",
		GroupID: gOffline,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Println(bold("Scenarios:"))
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, s := range scenario.Catalogue() {
				fmt.Fprintf(tw, "  %s\t%d appliances\t%s Wh/day\n", s.Name, len(s.Appliances), report.Num(s.DailyDemandWh, 0))
				if !verbose {
					continue
				}
				for _, a := range s.Appliances {
					fmt.Fprintf(tw, "    %s\t%s W × %s h\t%s Wh\n", a.Name, report.Num(a.Power, 0), report.Num(a.Hours, 2), report.Num(a.EnergyWh(), 0))
				}
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			cmd.Println()
			cmd.Println(bold("Methanol tanks:"))
			for _, t := range scenario.Tanks() {
				marker := ""
				if t == scenario.DefaultTank {
					marker = " (default)"
				}
				cmd.Printf("  %s: %s L%s\n", t.Name, report.Num(t.Liters, 0), marker)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list the appliances of every scenario")

	return cmd
}

func NewFormulasCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "formulas",
		Short:   "Explain how each KPI is computed",
		GroupID: gOffline,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, f := range kpi.Formulas() {
				cmd.Printf("%s\n  %s\n", bold("%s", f.KPI), f.Expression)
			}
			return nil
		},
	}
}
