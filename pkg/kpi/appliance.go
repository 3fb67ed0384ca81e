package kpi

import (
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// MaxHoursPerDay bounds Appliance.Hours.
const MaxHoursPerDay = 24

// Appliance is one electrical load with its daily usage profile.
type Appliance struct {
	Name  string  `json:"name" yaml:"name"`
	Power float64 `json:"power" yaml:"power"` // W
	Hours float64 `json:"hours" yaml:"hours"` // h/day
}

// EnergyWh is the daily energy drawn by the appliance.
func (a Appliance) EnergyWh() float64 {
	return a.Power * a.Hours
}

// Validate checks the bounds of user-supplied appliances. The calculator itself
// never calls it.
func (a Appliance) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return pkgerrors.New("appliance name must not be empty")
	}
	// Names are addressed as a single path segment by the daemon API.
	if strings.Contains(a.Name, "/") {
		return pkgerrors.Errorf("appliance %q: name must not contain '/'", a.Name)
	}
	if !Finite(a.Power) || !Finite(a.Hours) {
		return pkgerrors.Errorf("appliance %q: power and hours must be finite numbers", a.Name)
	}
	if a.Power < 0 {
		return pkgerrors.Errorf("appliance %q: power must not be negative, got %g W", a.Name, a.Power)
	}
	if a.Hours < 0 || a.Hours > MaxHoursPerDay {
		return pkgerrors.Errorf("appliance %q: hours must be between 0 and %d, got %g", a.Name, MaxHoursPerDay, a.Hours)
	}
	if !Finite(a.EnergyWh()) {
		return pkgerrors.Errorf("appliance %q: daily energy overflows, got %g W for %g h", a.Name, a.Power, a.Hours)
	}
	return nil
}

// ValidateAppliances validates every appliance and rejects duplicate names
// and lists whose total daily energy overflows.
func ValidateAppliances(appliances []Appliance) error {
	seen := make(map[string]struct{}, len(appliances))
	var total float64
	for _, a := range appliances {
		if err := a.Validate(); err != nil {
			return err
		}
		total += a.EnergyWh()
		if !Finite(total) {
			return pkgerrors.Errorf("appliance %q: total daily energy overflows", a.Name)
		}
		key := strings.ToLower(a.Name)
		if _, ok := seen[key]; ok {
			return pkgerrors.Errorf("duplicate appliance %q", a.Name)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// ApplianceEnergy is one row of the appliance energy summary.
type ApplianceEnergy struct {
	Appliance
	EnergyWh Number `json:"energyWh"`
}

// Breakdown returns the daily energy of each appliance in input order.
func Breakdown(appliances []Appliance) []ApplianceEnergy {
	rows := make([]ApplianceEnergy, 0, len(appliances))
	for _, a := range appliances {
		rows = append(rows, ApplianceEnergy{Appliance: a, EnergyWh: Number(a.EnergyWh())})
	}
	return rows
}
