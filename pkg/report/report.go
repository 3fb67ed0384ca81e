// Package report renders a KPI session as a plain-text report, the printable
// counterpart of the dashboard.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/offgrid-tools/hykpi/pkg/kpi"
)

const (
	Title      = "EFOY Hybrid Power System Report"
	disclaimer = "Note: all values are estimates for educational and academic purposes only."
)

type Report struct {
	GeneratedAt time.Time
	Inputs      kpi.Inputs
	Result      kpi.Result
	Constants   kpi.Constants
}

func New(in kpi.Inputs, r kpi.Result, c kpi.Constants, at time.Time) *Report {
	return &Report{GeneratedAt: at, Inputs: in, Result: r, Constants: c}
}

// Line is one labelled KPI value.
type Line struct {
	Label string
	Value string
}

// KPILines returns the KPI section of the report, one line per indicator.
func (rep *Report) KPILines() []Line {
	r := rep.Result
	return []Line{
		{"Daily Energy Demand", Num(r.DailyDemandWh.Float(), 0) + " Wh"},
		{"Methanol Needed/Day", Num(r.MethanolPerDayL.Float(), 2) + " L"},
		{"Tank Autonomy", Num(r.TankAutonomyDays.Float(), 1) + " days"},
		{"Battery-Only Runtime", Num(r.BatteryRuntimeH.Float(), 1) + " h"},
		{"Battery Charge Time (DMFC)", Num(r.RechargeTimeH.Float(), 1) + " h"},
		{"System Efficiency", Num(r.Efficiency.Float()*100, 1) + "%"},
		{"Peak Load Coverage", Num(r.PeakLoadCoverage.Float(), 1) + "%"},
	}
}

func (rep *Report) Write(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintln(&b, Title)
	fmt.Fprintln(&b, strings.Repeat("=", len(Title)))
	fmt.Fprintf(&b, "Generated on %s\n", rep.GeneratedAt.Format("2006-01-02 at 15:04"))
	if rep.Inputs.Scenario != "" {
		fmt.Fprintf(&b, "Scenario: %s\n", rep.Inputs.Scenario)
	}
	fmt.Fprintf(&b, "Methanol available: %s L, peak load: %s W\n\n",
		Num(rep.Inputs.TankLiters, 1), Num(rep.Inputs.PeakLoadW, 0))

	fmt.Fprintln(&b, "Key Performance Indicators:")
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	for _, l := range rep.KPILines() {
		fmt.Fprintf(tw, "  %s:\t%s\n", l.Label, l.Value)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Energy Contribution per Source (daily):")
	fmt.Fprintf(&b, "  Battery: %s Wh, Fuel Cell: %s Wh\n\n",
		Num(rep.Result.BatteryEnergyWh.Float(), 0), Num(rep.Result.FuelCellEnergyWh.Float(), 0))

	fmt.Fprintln(&b, "Appliance Energy Summary:")
	tw = tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	for _, a := range rep.Result.Appliances {
		fmt.Fprintf(tw, "  - %s:\t%s W ×\t%s h\t= %s Wh\n", a.Name, Num(a.Power, 0), Num(a.Hours, 2), Num(a.EnergyWh.Float(), 0))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	c := rep.Constants
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "System Constants:")
	fmt.Fprintf(&b, "  - Battery Capacity: %s Wh (%s Ah × %s V)\n", Num(c.BatteryCapacityWh(), 0), Num(c.BatteryCapacityAh, 0), Num(c.BatteryVoltage, 1))
	fmt.Fprintf(&b, "  - Fuel Cell Output Power: %s W\n", Num(c.FuelCellOutputW, 0))
	fmt.Fprintf(&b, "  - Methanol Consumption: %s L/kWh\n", Num(c.MethanolLitersPerKWh, 2))
	fmt.Fprintf(&b, "  - Methanol Energy Content: %s kWh/L\n", Num(c.MethanolEnergyKWhPerL, 2))
	fmt.Fprintf(&b, "  - Max Discharge Current: %s A\n", Num(c.MaxDischargeCurrentA, 0))

	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Battery gauge: %s. Efficiency gauge: %s (%s).\n",
		rep.Result.BatteryZone, rep.Result.EfficiencyZone, rep.Result.EfficiencyMessage)
	fmt.Fprintln(&b, disclaimer)

	_, err := io.WriteString(w, b.String())
	return err
}

// Num formats v with thousands separators, rounded to digits decimals.
// Non-finite values render as ∞ or n/a.
func Num(v float64, digits int) string {
	switch {
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	case math.IsNaN(v):
		return "n/a"
	}
	p := math.Pow(10, float64(digits))
	return humanize.CommafWithDigits(math.Round(v*p)/p, digits)
}
