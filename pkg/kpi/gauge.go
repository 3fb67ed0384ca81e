package kpi

// Zone classifies a gauge reading from worst to best.
type Zone string

const (
	ZoneCritical  Zone = "critical"
	ZoneLow       Zone = "low"
	ZoneMedium    Zone = "medium"
	ZoneGood      Zone = "good"
	ZoneFull      Zone = "full"
	ZonePoor      Zone = "poor"
	ZoneFair      Zone = "fair"
	ZoneExcellent Zone = "excellent"
)

// Battery gauge bands over a 24 h scale: 10%, 30%, 50% and 80%.
var batteryBands = []struct {
	below float64
	zone  Zone
}{
	{2.4, ZoneCritical},
	{7.2, ZoneLow},
	{12, ZoneMedium},
	{19.2, ZoneGood},
}

// BatteryZone classifies a battery runtime in hours.
func BatteryZone(hours float64) Zone {
	for _, b := range batteryBands {
		if hours < b.below {
			return b.zone
		}
	}
	return ZoneFull
}

// EfficiencyZone classifies a conversion efficiency fraction.
func EfficiencyZone(eff float64) Zone {
	switch {
	case eff < 0.2:
		return ZonePoor
	case eff < 0.4:
		return ZoneFair
	case eff < 0.6:
		return ZoneGood
	default:
		return ZoneExcellent
	}
}

// Interpret explains an efficiency reading for a DMFC system.
func Interpret(eff float64) string {
	switch {
	case eff < 0.2:
		return "below 20%: possible methanol waste or overestimated consumption"
	case eff < 0.5:
		return "20-50%: system working as expected for a DMFC"
	default:
		return "above 50%: likely battery-only operation or overestimated energy usage"
	}
}
