package kpi

// Inputs is everything a user can change in one session.
type Inputs struct {
	Scenario   string      `json:"scenario,omitempty"`
	Appliances []Appliance `json:"appliances"`
	TankLiters float64     `json:"tankLiters"`
	PeakLoadW  float64     `json:"peakLoadW"`
}

// Result is the full KPI set derived from one Inputs. Every derived figure is
// a Number so that overflowing or degenerate inputs still encode.
type Result struct {
	DailyDemandWh     Number  `json:"dailyDemandWh"`
	MethanolPerDayL   Number  `json:"methanolPerDayL"`
	TankAutonomyDays  Number  `json:"tankAutonomyDays"`
	BatteryRuntimeH   Number  `json:"batteryRuntimeHours"`
	Efficiency        Number  `json:"efficiency"`
	PeakLoadCoverage  Number  `json:"peakLoadCoveragePercent"`
	BatteryEnergyWh   Number  `json:"batteryEnergyWh"`
	FuelCellEnergyWh  Number  `json:"fuelCellEnergyWh"`
	RechargeTimeH     Number  `json:"rechargeTimeHours"`
	BatteryZone       Zone    `json:"batteryZone"`
	EfficiencyZone    Zone    `json:"efficiencyZone"`
	EfficiencyMessage string  `json:"efficiencyMessage"`

	Appliances []ApplianceEnergy `json:"appliances"`
}

// Compute derives every KPI from in. Nothing is cached between calls.
func (k *Calculator) Compute(in Inputs) Result {
	demand := DailyEnergyDemand(in.Appliances)
	methanol := k.MethanolConsumption(demand)
	runtime := k.BatteryDischargeTime(demand)
	eff := k.FuelCellEfficiency(demand/1000, methanol)
	batteryWh, fuelCellWh := k.EnergySplit(demand)

	return Result{
		DailyDemandWh:     Number(demand),
		MethanolPerDayL:   Number(methanol),
		TankAutonomyDays:  Number(TankAutonomy(in.TankLiters, methanol)),
		BatteryRuntimeH:   Number(runtime),
		Efficiency:        Number(eff),
		PeakLoadCoverage:  Number(k.PeakLoadCoverage(in.PeakLoadW)),
		BatteryEnergyWh:   Number(batteryWh),
		FuelCellEnergyWh:  Number(fuelCellWh),
		RechargeTimeH:     Number(k.RechargeTime(batteryWh)),
		BatteryZone:       BatteryZone(runtime),
		EfficiencyZone:    EfficiencyZone(eff),
		EfficiencyMessage: Interpret(eff),
		Appliances:        Breakdown(in.Appliances),
	}
}

// Snapshot is the inputs, KPIs and constants of a session taken at one
// instant.
type Snapshot struct {
	Inputs    Inputs    `json:"inputs"`
	Result    Result    `json:"kpi"`
	Constants Constants `json:"constants"`
}
