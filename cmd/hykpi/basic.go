package main

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/offgrid-tools/hykpi/pkg/kpi"
	"github.com/offgrid-tools/hykpi/pkg/report"
	"github.com/offgrid-tools/hykpi/pkg/scenario"
	"github.com/offgrid-tools/hykpi/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)
		},
	}
}

// logResult summarises the KPIs the daemon recomputed after a change.
func logResult(r *kpi.Result) {
	logrus.WithFields(logrus.Fields{
		"dailyDemandWh":    report.Num(r.DailyDemandWh.Float(), 0),
		"tankAutonomyDays": report.Num(r.TankAutonomyDays.Float(), 1),
		"efficiency":       report.Num(r.Efficiency.Float()*100, 1) + "%",
	}).Info("kpi updated")
}

func NewTankCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "tank [M5|M10|2xM10|litres]",
		Short:   "Set the methanol available",
		GroupID: gSession,
		Long: `Set the methanol available to the fuel cell in the dashboard session.

Accepts a cartridge option (M5, M10, 2xM10) or a number of litres.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			l, err := scenario.ParseTank(args[0])
			if err != nil {
				return err
			}

			r, err := apiClient.SetTank(l)
			if err != nil {
				return fmt.Errorf("failed to set tank: %w", err)
			}

			logrus.Infof("successfully set methanol available to %s L", report.Num(l, 1))
			logResult(r)

			return nil
		},
	}
}

func NewPeakLoadCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "peak-load [watts]",
		Short:   "Set the peak simultaneous load",
		GroupID: gSession,
		Long: `Set the peak simultaneous load in W.

The battery covers the peak in full when the current it needs stays within the maximum discharge current.`,
		RunE: func(_ *cobra.Command, args []string) error {
			w, err := parseFloatArg(args, "peak load")
			if err != nil {
				return err
			}

			r, err := apiClient.SetPeakLoad(w)
			if err != nil {
				return fmt.Errorf("failed to set peak load: %w", err)
			}

			logrus.Infof("successfully set peak load to %s W, coverage is %s%%", report.Num(w, 0), report.Num(r.PeakLoadCoverage.Float(), 1))

			return nil
		},
	}
}

func NewScenarioCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "scenario [name]",
		Short:   "Switch the appliance scenario",
		GroupID: gSession,
		Long: `Switch the dashboard session to a preset appliance scenario.

Available scenarios: ` + joinNames() + `. Switching drops any custom appliance list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name, err := scenario.Canonical(args[0])
			if err != nil {
				return err
			}

			r, err := apiClient.SetScenario(name)
			if err != nil {
				return fmt.Errorf("failed to set scenario: %w", err)
			}

			logrus.Infof("successfully switched to scenario %s", name)
			logResult(r)

			return nil
		},
	}
}

func NewApplianceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "appliance",
		Short:   "Change appliances in the dashboard session",
		GroupID: gSession,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "hours [name] [hours]",
			Short: "Set the daily usage of one appliance",
			Long: `Set the hours per day one appliance runs. Names match case-insensitively.

  hykpi appliance hours "Heater Fan" 3`,
			Args: cobra.ExactArgs(2),
			RunE: func(_ *cobra.Command, args []string) error {
				h, err := strconv.ParseFloat(args[1], 64)
				if err != nil {
					return fmt.Errorf("invalid hours: %v", err)
				}
				if h < 0 || h > kpi.MaxHoursPerDay {
					return fmt.Errorf("invalid hours: must be between 0 and %d", kpi.MaxHoursPerDay)
				}

				r, err := apiClient.SetApplianceHours(args[0], h)
				if err != nil {
					return fmt.Errorf("failed to set hours of %s: %w", args[0], err)
				}

				logrus.Infof("successfully set %s to %s h/day", args[0], report.Num(h, 2))
				logResult(r)

				return nil
			},
		},
		&cobra.Command{
			Use:   "set [name=W:h]...",
			Short: "Replace the appliance list",
			Long: `Replace the whole appliance list of the dashboard session.

  hykpi appliance set Fridge=45:24 Lights=10:6 "Heater Fan=250:2"`,
			Args: cobra.MinimumNArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				apps, err := parseApplianceFlags(args)
				if err != nil {
					return err
				}

				r, err := apiClient.SetAppliances(apps)
				if err != nil {
					return fmt.Errorf("failed to set appliances: %w", err)
				}

				logrus.Infof("successfully set %d appliances", len(apps))
				logResult(r)

				return nil
			},
		},
	)

	return cmd
}
