package report

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offgrid-tools/hykpi/pkg/kpi"
	"github.com/offgrid-tools/hykpi/pkg/scenario"
)

func TestWriteDefaultScenario(t *testing.T) {
	apps, err := scenario.Get(scenario.Default)
	require.NoError(t, err)
	in := kpi.Inputs{Scenario: scenario.Default, Appliances: apps, TankLiters: 20, PeakLoadW: 997}
	r := kpi.Default.Compute(in)

	var buf bytes.Buffer
	rep := New(in, r, kpi.Default.Constants(), time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC))
	require.NoError(t, rep.Write(&buf))

	out := buf.String()
	for _, want := range []string{
		Title,
		"Generated on 2025-05-01 at 09:30",
		"Scenario: Default",
		"1,905 Wh",
		"1.71 L",
		"11.7 days",
		"25.3%",
		"Heater Fan:",
		"1,344 Wh",
		"Fuel Cell: 561 Wh",
		disclaimer,
	} {
		assert.Contains(t, out, want)
	}
	assert.Len(t, rep.KPILines(), 7)
}

func TestWriteNoLoadShowsInfinity(t *testing.T) {
	in := kpi.Inputs{TankLiters: 10}
	r := kpi.Default.Compute(in)

	var buf bytes.Buffer
	require.NoError(t, New(in, r, kpi.Default.Constants(), time.Now()).Write(&buf))
	assert.Contains(t, buf.String(), "∞ days")
	assert.NotContains(t, buf.String(), "Scenario:")
}

func TestNum(t *testing.T) {
	tests := []struct {
		v      float64
		digits int
		want   string
	}{
		{1905, 0, "1,905"},
		{1.7145, 2, "1.71"},
		{11.66, 1, "11.7"},
		{0, 1, "0"},
		{math.Inf(1), 1, "∞"},
		{math.NaN(), 1, "n/a"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Num(tt.v, tt.digits), "Num(%v, %d)", tt.v, tt.digits)
	}
}
