// Package kpi estimates the energy autonomy of a hybrid off-grid system in
// which a direct methanol fuel cell (DMFC) keeps a battery charged and every
// load draws from the battery.
//
// The functions are pure. Degenerate inputs never produce errors: a zero
// divisor yields +Inf for autonomy figures and 0 for efficiency. Inputs are not
// range checked, so negative values propagate into the results.
package kpi

import "math"

// DailyEnergyDemand returns the total daily energy demand in Wh.
func DailyEnergyDemand(appliances []Appliance) float64 {
	var total float64
	for _, a := range appliances {
		total += a.Power * a.Hours
	}
	return total
}

// Calculator evaluates KPIs against a fixed set of system constants.
type Calculator struct {
	c Constants
}

func NewCalculator(c Constants) *Calculator {
	return &Calculator{c: c}
}

// Default uses DefaultConstants.
var Default = NewCalculator(DefaultConstants())

func (k *Calculator) Constants() Constants {
	return k.c
}

// MethanolConsumption returns the litres of methanol the fuel cell needs to
// deliver energyWh.
func (k *Calculator) MethanolConsumption(energyWh float64) float64 {
	return energyWh / 1000 * k.c.MethanolLitersPerKWh
}

// TankAutonomy returns how many days litersAvailable lasts at
// dailyConsumptionL per day.
func TankAutonomy(litersAvailable, dailyConsumptionL float64) float64 {
	if dailyConsumptionL == 0 {
		return math.Inf(1)
	}
	return litersAvailable / dailyConsumptionL
}

// BatteryDischargeTime divides the battery capacity by energyWh. Callers pass
// the daily demand and read the result as the battery-only runtime.
func (k *Calculator) BatteryDischargeTime(energyWh float64) float64 {
	if energyWh == 0 {
		return math.Inf(1)
	}
	return k.c.BatteryCapacityWh() / energyWh
}

// FuelCellEfficiency is the delivered energy over the chemical energy of the
// methanol consumed, as a fraction.
func (k *Calculator) FuelCellEfficiency(usefulEnergyKWh, methanolL float64) float64 {
	if methanolL == 0 {
		return 0
	}
	return usefulEnergyKWh / (methanolL * k.c.MethanolEnergyKWhPerL)
}

// PeakLoadCoverage returns the share of peakPowerW the battery can deliver
// without exceeding its maximum discharge current, in percent rounded to one
// decimal.
func (k *Calculator) PeakLoadCoverage(peakPowerW float64) float64 {
	peakCurrent := peakPowerW / k.c.BatteryVoltage
	if peakCurrent <= k.c.MaxDischargeCurrentA {
		return 100
	}
	return round1(k.c.MaxDischargeCurrentA * k.c.BatteryVoltage / peakPowerW * 100)
}

// EnergySplit divides the daily demand into the part covered by the battery's
// stored charge and the remainder the fuel cell has to supply.
func (k *Calculator) EnergySplit(energyWh float64) (batteryWh, fuelCellWh float64) {
	capacity := k.c.BatteryCapacityWh()
	return math.Min(capacity, energyWh), math.Max(0, energyWh-capacity)
}

// RechargeTime returns the hours the fuel cell needs at rated output to put
// drawnWh back into the battery.
func (k *Calculator) RechargeTime(drawnWh float64) float64 {
	if k.c.FuelCellOutputW == 0 {
		return math.Inf(1)
	}
	return drawnWh / k.c.FuelCellOutputW
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
