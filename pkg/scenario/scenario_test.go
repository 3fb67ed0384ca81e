package scenario

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offgrid-tools/hykpi/pkg/kpi"
)

func TestScenarioDemand(t *testing.T) {
	tests := []struct {
		name string
		want float64
	}{
		{Default, 1905},
		{Base, 1515},
		{Moderate, 2065},
		{Peak, 2980},
		{Summer, 1335},
		{Winter, 1865},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apps, err := Get(tt.name)
			require.NoError(t, err)
			require.NoError(t, kpi.ValidateAppliances(apps))
			assert.InDelta(t, tt.want, kpi.DailyEnergyDemand(apps), 1e-6)
		})
	}
}

func TestNamesCoverCatalogue(t *testing.T) {
	assert.Len(t, Names(), len(profiles))
	for _, n := range Names() {
		_, ok := profiles[n]
		assert.True(t, ok, "missing profile %s", n)
	}
}

func TestGetIsCaseInsensitiveAndCopies(t *testing.T) {
	a, err := Get("peak")
	require.NoError(t, err)
	a[0].Hours = 1

	b, err := Get("PEAK")
	require.NoError(t, err)
	assert.Equal(t, 24.0, b[0].Hours)

	_, err = Get("holiday")
	assert.True(t, errors.Is(err, ErrUnknownScenario))
}

func TestParseTank(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "M5", want: 5},
		{in: "m10", want: 10},
		{in: "2xM10", want: 20},
		{in: "12.5", want: 12.5},
		{in: "15L", want: 15},
		{in: "-1", wantErr: true},
		{in: "barrel", wantErr: true},
		{in: "NaN", wantErr: true},
		{in: "Inf", wantErr: true},
		{in: "-inf", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseTank(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "ParseTank(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "ParseTank(%q)", tt.in)
		assert.Equal(t, tt.want, got, "ParseTank(%q)", tt.in)
	}
}

func TestTanksSorted(t *testing.T) {
	ts := Tanks()
	require.Len(t, ts, 3)
	assert.Equal(t, "M5", ts[0].Name)
	assert.Equal(t, DefaultTank, ts[2])
}

func TestCatalogue(t *testing.T) {
	c := Catalogue()
	require.Len(t, c, len(Names()))
	assert.Equal(t, Default, c[0].Name)
	assert.InDelta(t, 1905, c[0].DailyDemandWh, 1e-9)
}
