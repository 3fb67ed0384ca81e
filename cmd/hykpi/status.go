package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/offgrid-tools/hykpi/pkg/config"
	"github.com/offgrid-tools/hykpi/pkg/kpi"
	"github.com/offgrid-tools/hykpi/pkg/report"
)

type statusData struct {
	session *kpi.Snapshot
	config  *config.RawFileConfig
}

// fetchStatusData gathers all data required for the status command from the daemon.
func fetchStatusData() (*statusData, error) {
	s, err := apiClient.GetSession()
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	conf, err := apiClient.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}

	return &statusData{
		session: s,
		config:  conf,
	}, nil
}

func NewStatusCommand() *cobra.Command {
	asJSON := false

	cmd := &cobra.Command{
		Use:     "status",
		GroupID: gSession,
		Short:   "Show the dashboard session",
		Long:    `Show the inputs and KPIs of the daemon's live session.`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := fetchStatusData()
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd, newStatusJSON(data.session.Inputs, data.session.Result, data.session.Constants))
			}

			printKPIs(cmd, data.session.Inputs, data.session.Result)

			cmd.Println()
			cmd.Println(bold("Daemon:"))
			conf := config.NewFileFromConfig(data.config, "")
			cmd.Printf("  Allow non-root users to access the daemon: %s\n", bool2Text(conf.AllowNonRootAccess()))
			cmd.Printf("  Fuel cell output: %s\n", bold("%s W", report.Num(data.session.Constants.FuelCellOutputW, 0)))
			cmd.Printf("  Battery: %s\n", bold("%s Wh", report.Num(data.session.Constants.BatteryCapacityWh(), 0)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}

// printKPIs renders in and r for a terminal.
func printKPIs(cmd *cobra.Command, in kpi.Inputs, r kpi.Result) {
	cmd.Println(bold("Inputs:"))
	if in.Scenario != "" {
		cmd.Printf("  Scenario: %s\n", bold("%s", in.Scenario))
	} else {
		cmd.Printf("  Scenario: %s\n", bold("custom"))
	}
	cmd.Printf("  Methanol available: %s\n", bold("%s L", report.Num(in.TankLiters, 1)))
	cmd.Printf("  Peak load: %s\n", bold("%s W", report.Num(in.PeakLoadW, 0)))

	cmd.Println()
	cmd.Println(bold("Key performance indicators:"))
	cmd.Printf("  Daily energy demand: %s\n", bold("%s Wh", report.Num(r.DailyDemandWh.Float(), 0)))
	cmd.Printf("  Methanol needed per day: %s\n", bold("%s L", report.Num(r.MethanolPerDayL.Float(), 2)))
	cmd.Printf("  Tank autonomy: %s\n", bold("%s days", report.Num(r.TankAutonomyDays.Float(), 1)))
	cmd.Printf("  Battery-only runtime: %s (%s)\n", bold("%s h", report.Num(r.BatteryRuntimeH.Float(), 1)), zoneText(r.BatteryZone))
	cmd.Printf("  Battery recharge time: %s\n", bold("%s h", report.Num(r.RechargeTimeH.Float(), 1)))
	cmd.Printf("  System efficiency: %s (%s)\n", bold("%s%%", report.Num(r.Efficiency.Float()*100, 1)), zoneText(r.EfficiencyZone))
	cmd.Printf("    %s\n", r.EfficiencyMessage)
	cmd.Printf("  Peak load coverage: %s\n", coverageText(r.PeakLoadCoverage.Float()))

	cmd.Println()
	cmd.Println(bold("Daily energy split:"))
	cmd.Printf("  Battery: %s\n", bold("%s Wh", report.Num(r.BatteryEnergyWh.Float(), 0)))
	cmd.Printf("  Fuel cell: %s\n", bold("%s Wh", report.Num(r.FuelCellEnergyWh.Float(), 0)))

	if len(r.Appliances) == 0 {
		return
	}
	cmd.Println()
	cmd.Println(bold("Appliances:"))
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, a := range r.Appliances {
		fmt.Fprintf(tw, "  %s\t%s W\t%s h\t%s Wh\n", a.Name, report.Num(a.Power, 0), report.Num(a.Hours, 2), report.Num(a.EnergyWh.Float(), 0))
	}
	_ = tw.Flush()
}

func zoneText(z kpi.Zone) string {
	switch z {
	case kpi.ZoneCritical, kpi.ZoneLow, kpi.ZonePoor:
		return color.New(color.Bold, color.FgRed).Sprint(z)
	case kpi.ZoneMedium, kpi.ZoneFair:
		return color.New(color.Bold, color.FgYellow).Sprint(z)
	default:
		return color.New(color.Bold, color.FgGreen).Sprint(z)
	}
}

func coverageText(pct float64) string {
	s := report.Num(pct, 1) + "%"
	if pct >= 100 {
		return bool2Text(true) + " " + bold("%s", s)
	}
	return bool2Text(false) + " " + color.New(color.Bold, color.FgRed).Sprint(s)
}

func bool2Text(b bool) string {
	if b {
		return color.New(color.Bold, color.FgGreen).Sprint("✔")
	}
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
