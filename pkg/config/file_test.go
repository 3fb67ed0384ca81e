package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offgrid-tools/hykpi/pkg/kpi"
	"github.com/offgrid-tools/hykpi/pkg/scenario"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestMissingFileUsesDefaults(t *testing.T) {
	f, err := NewFile(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Equal(t, kpi.DefaultConstants(), f.Constants())
	assert.Equal(t, scenario.Default, f.Scenario())
	assert.Equal(t, 20.0, f.TankLiters())
	assert.Equal(t, 997.0, f.PeakLoadW())
	assert.False(t, f.AllowNonRootAccess())

	want, _ := scenario.Get(scenario.Default)
	assert.Equal(t, want, f.Appliances())
	assert.Equal(t, scenario.Default, f.Inputs().Scenario)
}

func TestEmptyFileUsesDefaults(t *testing.T) {
	f, err := NewFile(writeFile(t, "hykpi.json", "  \n"))
	require.NoError(t, err)
	assert.Equal(t, scenario.Default, f.Scenario())
}

func TestLoadJSON(t *testing.T) {
	p := writeFile(t, "hykpi.json", `{
  "constants": {"fuelCellOutputW": 150},
  "scenario": "peak",
  "tankLiters": 10,
  "peakLoadW": 3000
}`)
	f, err := NewFile(p)
	require.NoError(t, err)

	k := f.Constants()
	assert.Equal(t, 150.0, k.FuelCellOutputW)
	assert.Equal(t, kpi.DefaultBatteryVoltage, k.BatteryVoltage)
	assert.Equal(t, scenario.Peak, f.Scenario())
	assert.Equal(t, 10.0, f.TankLiters())
	assert.Equal(t, 3000.0, f.PeakLoadW())
}

func TestLoadYAMLCustomAppliances(t *testing.T) {
	p := writeFile(t, "hykpi.yaml", `
appliances:
  - name: Fridge
    power: 45
    hours: 24
  - name: Starlink
    power: 50
    hours: 8
tankLiters: 5
`)
	f, err := NewFile(p)
	require.NoError(t, err)

	apps := f.Appliances()
	require.Len(t, apps, 2)
	assert.Equal(t, "Starlink", apps[1].Name)

	in := f.Inputs()
	assert.Empty(t, in.Scenario)
	assert.Equal(t, 5.0, in.TankLiters)
	assert.InDelta(t, 1480, kpi.DailyEnergyDemand(in.Appliances), 1e-9)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown scenario", "a.json", `{"scenario": "holiday"}`},
		{"negative tank", "b.json", `{"tankLiters": -1}`},
		{"negative peak", "c.yaml", "peakLoadW: -5\n"},
		{"hours out of range", "d.json", `{"appliances": [{"name": "Fridge", "power": 45, "hours": 25}]}`},
		{"malformed", "e.json", `{"scenario": `},
		{"zero voltage", "f.json", `{"constants": {"batteryVoltage": 0}, "peakLoadW": 0}`},
		{"zero energy density", "g.yaml", "constants:\n  methanolEnergyKWhPerL: 0\n"},
		{"negative capacity", "h.json", `{"constants": {"batteryCapacityAh": -100}}`},
		{"negative discharge current", "i.json", `{"constants": {"maxDischargeCurrentA": -1}}`},
		{"nan efficiency", "j.yaml", "constants:\n  fuelCellRatedEfficiency: .nan\n"},
		{"infinite output", "k.yaml", "constants:\n  fuelCellOutputW: .inf\n"},
		{"infinite tank", "l.yaml", "tankLiters: .inf\n"},
		{"slash in appliance name", "m.json", `{"appliances": [{"name": "Fridge/Freezer", "power": 80, "hours": 24}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFile(writeFile(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadAcceptsZeroConstants(t *testing.T) {
	f, err := NewFile(writeFile(t, "zero.json", `{"constants": {"fuelCellOutputW": 0, "maxDischargeCurrentA": 0}}`))
	require.NoError(t, err)
	assert.Zero(t, f.Constants().FuelCellOutputW)
	assert.Zero(t, f.Constants().MaxDischargeCurrentA)
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"hykpi.json", "hykpi.yml"} {
		t.Run(name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "nested", name)
			f := NewFileFromConfig(nil, p)
			require.NoError(t, f.SetScenario("winter"))
			require.NoError(t, f.SetTankLiters(10))
			require.NoError(t, f.SetPeakLoadW(1500))
			f.SetAllowNonRootAccess(true)
			require.NoError(t, f.Save())

			loaded, err := NewFile(p)
			require.NoError(t, err)
			assert.Equal(t, scenario.Winter, loaded.Scenario())
			assert.Equal(t, 10.0, loaded.TankLiters())
			assert.Equal(t, 1500.0, loaded.PeakLoadW())
			assert.True(t, loaded.AllowNonRootAccess())
		})
	}
}

func TestSetters(t *testing.T) {
	f := NewFileFromConfig(nil, "")

	assert.Error(t, f.SetScenario("holiday"))
	assert.Error(t, f.SetTankLiters(-1))
	assert.Error(t, f.SetPeakLoadW(-1))
	assert.Error(t, f.SetAppliances([]kpi.Appliance{{Name: "Kettle", Power: 300, Hours: 30}}))
	assert.Error(t, f.SetTankLiters(math.Inf(1)))
	assert.Error(t, f.SetPeakLoadW(math.NaN()))

	// An empty list is rejected rather than silently meaning "use the scenario".
	assert.Error(t, f.SetAppliances(nil))
	assert.Error(t, f.SetAppliances([]kpi.Appliance{}))
	assert.Equal(t, scenario.Default, f.Inputs().Scenario)

	require.NoError(t, f.SetAppliances([]kpi.Appliance{{Name: "Kettle", Power: 300, Hours: 0.1}}))
	assert.Len(t, f.Appliances(), 1)

	// Picking a scenario drops the custom list.
	require.NoError(t, f.SetScenario(scenario.Base))
	assert.Len(t, f.Appliances(), 5)
}

func TestRawFileConfigFromConfig(t *testing.T) {
	f := NewFileFromConfig(nil, "")
	raw, err := NewRawFileConfigFromConfig(f)
	require.NoError(t, err)
	require.NotNil(t, raw.Constants)
	assert.Equal(t, float64(kpi.DefaultFuelCellOutputW), *raw.Constants.FuelCellOutputW)
	assert.Equal(t, scenario.Default, *raw.Scenario)

	_, err = NewRawFileConfigFromConfig(nil)
	assert.Error(t, err)
}

func TestRawFileConfigKeepsCustomAppliances(t *testing.T) {
	f := NewFileFromConfig(nil, "")
	raw, err := NewRawFileConfigFromConfig(f)
	require.NoError(t, err)
	assert.Empty(t, raw.Appliances)

	require.NoError(t, f.SetAppliances([]kpi.Appliance{{Name: "Starlink", Power: 50, Hours: 8}}))
	raw, err = NewRawFileConfigFromConfig(f)
	require.NoError(t, err)
	require.Len(t, raw.Appliances, 1)
	assert.Equal(t, "Starlink", raw.Appliances[0].Name)
}
