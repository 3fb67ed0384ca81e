package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/offgrid-tools/hykpi/pkg/kpi"
)

type statusJSON struct {
	Inputs    kpi.Inputs      `json:"inputs"`
	Result    kpi.Result      `json:"kpi"`
	Constants statusConstJSON `json:"constants"`
}

type statusConstJSON struct {
	kpi.Constants
	BatteryCapacityWh float64 `json:"batteryCapacityWh"`
}

func newStatusJSON(in kpi.Inputs, r kpi.Result, k kpi.Constants) statusJSON {
	return statusJSON{
		Inputs: in,
		Result: r,
		Constants: statusConstJSON{
			Constants:         k,
			BatteryCapacityWh: k.BatteryCapacityWh(),
		},
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
