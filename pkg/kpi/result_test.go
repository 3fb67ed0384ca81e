package kpi

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultInputs() Inputs {
	return Inputs{
		Appliances: []Appliance{
			{Name: "Fridge", Power: 45, Hours: 24},
			{Name: "Lights", Power: 10, Hours: 6},
			{Name: "Laptop", Power: 60, Hours: 4},
			{Name: "Heater Fan", Power: 250, Hours: 2},
			{Name: "Water Pump", Power: 50, Hours: 0.5},
		},
		TankLiters: 20,
		PeakLoadW:  997,
	}
}

func TestComputeDefaultSession(t *testing.T) {
	r := Default.Compute(defaultInputs())

	assert.InDelta(t, 1905, r.DailyDemandWh.Float(), 1e-9)
	assert.InDelta(t, 1.7145, r.MethanolPerDayL.Float(), 1e-9)
	assert.InDelta(t, 20/1.7145, r.TankAutonomyDays.Float(), 1e-9)
	assert.InDelta(t, 1344.0/1905, r.BatteryRuntimeH.Float(), 1e-9)
	assert.InDelta(t, 1/(0.9*4.4), r.Efficiency.Float(), 1e-9)
	assert.Equal(t, 100.0, r.PeakLoadCoverage.Float())
	assert.InDelta(t, 1344, r.BatteryEnergyWh.Float(), 1e-9)
	assert.InDelta(t, 561, r.FuelCellEnergyWh.Float(), 1e-9)
	assert.InDelta(t, 10.752, r.RechargeTimeH.Float(), 1e-9)
	assert.Equal(t, ZoneCritical, r.BatteryZone)
	assert.Equal(t, ZoneFair, r.EfficiencyZone)
	require.Len(t, r.Appliances, 5)
	assert.Equal(t, "Heater Fan", r.Appliances[3].Name)
	assert.InDelta(t, 500, r.Appliances[3].EnergyWh.Float(), 1e-9)
}

func TestComputeNoLoad(t *testing.T) {
	r := Default.Compute(Inputs{TankLiters: 10})

	assert.Zero(t, r.DailyDemandWh.Float())
	assert.Zero(t, r.MethanolPerDayL.Float())
	assert.True(t, math.IsInf(r.TankAutonomyDays.Float(), 1))
	assert.True(t, math.IsInf(r.BatteryRuntimeH.Float(), 1))
	assert.Zero(t, r.Efficiency.Float())
	assert.Equal(t, 100.0, r.PeakLoadCoverage.Float())
	assert.Equal(t, ZoneFull, r.BatteryZone)
	assert.Equal(t, ZonePoor, r.EfficiencyZone)
	assert.Empty(t, r.Appliances)
}

func TestComputeIsIdempotent(t *testing.T) {
	in := defaultInputs()
	assert.Equal(t, Default.Compute(in), Default.Compute(in))
}

func TestResultJSONWithInfinity(t *testing.T) {
	r := Default.Compute(Inputs{TankLiters: 10})

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"tankAutonomyDays":"+Inf"`)
	assert.Contains(t, string(b), `"batteryRuntimeHours":"+Inf"`)

	var decoded Result
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.True(t, decoded.TankAutonomyDays.IsInf())
	assert.True(t, decoded.BatteryRuntimeH.IsInf())
}

func TestNumberJSON(t *testing.T) {
	tests := []struct {
		name string
		in   Number
		want string
	}{
		{"finite", Number(1.5), "1.5"},
		{"integer", Number(100), "100"},
		{"positive infinity", Number(math.Inf(1)), `"+Inf"`},
		{"negative infinity", Number(math.Inf(-1)), `"-Inf"`},
		{"nan", Number(math.NaN()), "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
		})
	}

	var n Number
	assert.Error(t, json.Unmarshal([]byte(`"lots"`), &n))
	require.NoError(t, json.Unmarshal([]byte(`"-Inf"`), &n))
	assert.True(t, math.IsInf(n.Float(), -1))
}

func TestZones(t *testing.T) {
	batteryTests := []struct {
		hours float64
		want  Zone
	}{
		{0, ZoneCritical},
		{2.39, ZoneCritical},
		{2.4, ZoneLow},
		{7.2, ZoneMedium},
		{12, ZoneGood},
		{19.2, ZoneFull},
		{math.Inf(1), ZoneFull},
	}
	for _, tt := range batteryTests {
		assert.Equal(t, tt.want, BatteryZone(tt.hours), "BatteryZone(%v)", tt.hours)
	}

	effTests := []struct {
		eff  float64
		want Zone
	}{
		{0, ZonePoor},
		{0.25, ZoneFair},
		{0.45, ZoneGood},
		{0.6, ZoneExcellent},
	}
	for _, tt := range effTests {
		assert.Equal(t, tt.want, EfficiencyZone(tt.eff), "EfficiencyZone(%v)", tt.eff)
	}

	assert.Contains(t, Interpret(0.3), "expected")
}

func TestValidateAppliancesRejectsNonFinite(t *testing.T) {
	tests := []struct {
		name       string
		appliances []Appliance
	}{
		{"nan power", []Appliance{{Name: "Kettle", Power: math.NaN(), Hours: 1}}},
		{"infinite power", []Appliance{{Name: "Kettle", Power: math.Inf(1), Hours: 1}}},
		{"nan hours", []Appliance{{Name: "Kettle", Power: 300, Hours: math.NaN()}}},
		{"energy overflow", []Appliance{{Name: "Smelter", Power: 1e308, Hours: 24}}},
		{"total overflow", []Appliance{
			{Name: "Smelter", Power: 1e308, Hours: 1},
			{Name: "Furnace", Power: 1e308, Hours: 1},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateAppliances(tt.appliances))
		})
	}
}

func TestResultJSONWithOverflow(t *testing.T) {
	// Compute does not validate, so overflowing inputs must still encode.
	r := Default.Compute(Inputs{
		Appliances: []Appliance{{Name: "Smelter", Power: 1e308, Hours: 24}},
		TankLiters: 20,
		PeakLoadW:  math.Inf(1),
	})
	require.True(t, r.DailyDemandWh.IsInf())

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"dailyDemandWh":"+Inf"`)
	assert.Contains(t, string(b), `"methanolPerDayL":"+Inf"`)
	assert.Contains(t, string(b), `"energyWh":"+Inf"`)

	r = Default.Compute(Inputs{TankLiters: 20, PeakLoadW: math.NaN()})
	_, err = json.Marshal(r)
	require.NoError(t, err)
}

func TestValidateAppliances(t *testing.T) {
	assert.NoError(t, ValidateAppliances(defaultInputs().Appliances))
	assert.Error(t, ValidateAppliances([]Appliance{{Name: "Kettle", Power: -1, Hours: 1}}))
	assert.Error(t, ValidateAppliances([]Appliance{{Name: "Kettle", Power: 300, Hours: 25}}))
	assert.Error(t, ValidateAppliances([]Appliance{{Name: " ", Power: 300, Hours: 1}}))
	assert.Error(t, ValidateAppliances([]Appliance{{Name: "Fridge/Freezer", Power: 80, Hours: 24}}))
	assert.Error(t, ValidateAppliances([]Appliance{
		{Name: "Kettle", Power: 300, Hours: 0.1},
		{Name: "kettle", Power: 300, Hours: 0.1},
	}))
}
