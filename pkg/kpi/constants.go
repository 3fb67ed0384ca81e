package kpi

import "github.com/sirupsen/logrus"

// Reference values for an EFOY Pro 2800 fuel cell charging an EFOY Li 105
// LiFePO4 battery.
const (
	DefaultMethanolLitersPerKWh  = 0.9  // L per kWh delivered
	DefaultBatteryCapacityAh     = 105  // Ah
	DefaultBatteryVoltage        = 12.8 // V
	DefaultFuelCellOutputW       = 125  // W, constant output
	DefaultMethanolEnergyKWhPerL = 4.4  // kWh/L, lower heating value
	DefaultMaxDischargeCurrentA  = 200  // A
	DefaultFuelCellRatedEff      = 0.35 // approx. from LHV
)

// Constants are the fixed parameters of one deployed system.
type Constants struct {
	MethanolLitersPerKWh  float64 `json:"methanolLitersPerKWh" yaml:"methanolLitersPerKWh"`
	BatteryCapacityAh     float64 `json:"batteryCapacityAh" yaml:"batteryCapacityAh"`
	BatteryVoltage        float64 `json:"batteryVoltage" yaml:"batteryVoltage"`
	FuelCellOutputW       float64 `json:"fuelCellOutputW" yaml:"fuelCellOutputW"`
	MethanolEnergyKWhPerL float64 `json:"methanolEnergyKWhPerL" yaml:"methanolEnergyKWhPerL"`
	MaxDischargeCurrentA  float64 `json:"maxDischargeCurrentA" yaml:"maxDischargeCurrentA"`
	FuelCellRatedEff      float64 `json:"fuelCellRatedEfficiency" yaml:"fuelCellRatedEfficiency"`
}

// DefaultConstants returns the reference EFOY Pro 2800 + Li 105 parameters.
func DefaultConstants() Constants {
	return Constants{
		MethanolLitersPerKWh:  DefaultMethanolLitersPerKWh,
		BatteryCapacityAh:     DefaultBatteryCapacityAh,
		BatteryVoltage:        DefaultBatteryVoltage,
		FuelCellOutputW:       DefaultFuelCellOutputW,
		MethanolEnergyKWhPerL: DefaultMethanolEnergyKWhPerL,
		MaxDischargeCurrentA:  DefaultMaxDischargeCurrentA,
		FuelCellRatedEff:      DefaultFuelCellRatedEff,
	}
}

// BatteryCapacityWh is the nominal battery energy (Ah × V).
func (c Constants) BatteryCapacityWh() float64 {
	return c.BatteryCapacityAh * c.BatteryVoltage
}

func (c Constants) LogrusFields() logrus.Fields {
	return logrus.Fields{
		"methanolLitersPerKWh":  c.MethanolLitersPerKWh,
		"batteryCapacityWh":     c.BatteryCapacityWh(),
		"fuelCellOutputW":       c.FuelCellOutputW,
		"methanolEnergyKWhPerL": c.MethanolEnergyKWhPerL,
		"maxDischargeCurrentA":  c.MaxDischargeCurrentA,
	}
}
