package kpi

// Formula describes how one KPI is derived.
type Formula struct {
	KPI        string `json:"kpi"`
	Expression string `json:"expression"`
}

func Formulas() []Formula {
	return []Formula{
		{"Daily Energy Demand (Wh)", "sum of appliance power (W) × hours of use per day"},
		{"Methanol Needed/Day (L)", "daily demand (kWh) × methanol consumption rate (L/kWh)"},
		{"Tank Autonomy (days)", "methanol available (L) / methanol needed per day (L)"},
		{"Battery-Only Runtime (h)", "battery capacity (Wh) / daily demand (Wh)"},
		{"Battery Charge Time (h)", "energy drawn from the battery (Wh) / fuel cell output (W)"},
		{"System Efficiency (%)", "delivered energy (kWh) / (methanol (L) × methanol energy density (kWh/L))"},
		{"Peak Load Coverage (%)", "100 if peak power / battery voltage ≤ max discharge current, else max current × voltage / peak power"},
	}
}
