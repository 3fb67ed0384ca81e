package main

import (
	"testing"

	"github.com/offgrid-tools/hykpi/pkg/kpi"
)

func TestParseApplianceFlag(t *testing.T) {
	tests := []struct {
		in      string
		want    kpi.Appliance
		wantErr bool
	}{
		{in: "Fridge=45:24", want: kpi.Appliance{Name: "Fridge", Power: 45, Hours: 24}},
		{in: "Heater Fan = 250 : 1.5", want: kpi.Appliance{Name: "Heater Fan", Power: 250, Hours: 1.5}},
		{in: "Fridge", wantErr: true},
		{in: "=45:24", wantErr: true},
		{in: "Fridge=45", wantErr: true},
		{in: "Fridge=lots:24", wantErr: true},
		{in: "Fridge=45:25", wantErr: true},
		{in: "Fridge=-1:2", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseApplianceFlag(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseApplianceFlag(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseApplianceFlag(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseApplianceFlagsRejectsDuplicates(t *testing.T) {
	if _, err := parseApplianceFlags([]string{"Fridge=45:24", "fridge=45:1"}); err == nil {
		t.Error("parseApplianceFlags() accepted a duplicate name")
	}
}

func TestParseFloatArg(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    float64
		wantErr bool
	}{
		{"plain", []string{"997"}, 997, false},
		{"decimal", []string{"12.5"}, 12.5, false},
		{"negative", []string{"-1"}, 0, true},
		{"garbage", []string{"watts"}, 0, true},
		{"nan", []string{"NaN"}, 0, true},
		{"infinity", []string{"+Inf"}, 0, true},
		{"overflow", []string{"1e400"}, 0, true},
		{"too many", []string{"1", "2"}, 0, true},
		{"none", nil, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFloatArg(tt.args, "peak load")
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFloatArg() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseFloatArg() = %v, want %v", got, tt.want)
			}
		})
	}
}
