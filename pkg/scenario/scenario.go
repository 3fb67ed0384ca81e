// Package scenario holds the built-in appliance profiles and methanol tank
// options.
package scenario

import (
	"sort"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/offgrid-tools/hykpi/pkg/kpi"
)

const (
	Default  = "Default"
	Base     = "Base"
	Moderate = "Moderate"
	Peak     = "Peak"
	Summer   = "Summer"
	Winter   = "Winter"
)

// ErrUnknownScenario is returned for a name that is not in the catalogue.
var ErrUnknownScenario = pkgerrors.New("unknown scenario")

var (
	fridge      = kpi.Appliance{Name: "Fridge", Power: 45, Hours: 24}
	waterPump   = kpi.Appliance{Name: "Water Pump", Power: 50, Hours: 0.5}
	extractor   = kpi.Appliance{Name: "Extractor Bonnet", Power: 20, Hours: 1}
	microwave   = kpi.Appliance{Name: "Microwave", Power: 450, Hours: 0.08}
	kettle      = kpi.Appliance{Name: "Kettle", Power: 300, Hours: 0.08}
	phoneCharge = kpi.Appliance{Name: "Phone Charger", Power: 5, Hours: 2}
)

var profiles = map[string][]kpi.Appliance{
	Default: {
		fridge,
		{Name: "Lights", Power: 10, Hours: 6},
		{Name: "Laptop", Power: 60, Hours: 4},
		{Name: "Heater Fan", Power: 250, Hours: 2},
		waterPump,
	},
	Base: {
		fridge,
		{Name: "Lights", Power: 10, Hours: 4},
		{Name: "Laptop", Power: 60, Hours: 2},
		{Name: "Heater Fan", Power: 250, Hours: 1},
		waterPump,
	},
	Moderate: {
		fridge,
		{Name: "Lights", Power: 10, Hours: 6},
		{Name: "Laptop", Power: 60, Hours: 4},
		{Name: "Heater Fan", Power: 250, Hours: 2},
		waterPump,
		{Name: "TV", Power: 80, Hours: 2},
	},
	Peak: {
		fridge,
		{Name: "Lights", Power: 10, Hours: 10},
		{Name: "Laptop", Power: 60, Hours: 6},
		{Name: "Heater Fan", Power: 250, Hours: 3},
		{Name: "Water Pump", Power: 50, Hours: 1},
		{Name: "TV", Power: 80, Hours: 3},
		{Name: "Electric Blanket", Power: 100, Hours: 4},
	},
	Summer: {
		fridge,
		{Name: "Lights", Power: 10, Hours: 2},
		{Name: "Laptop", Power: 60, Hours: 2},
		waterPump,
		extractor,
		microwave,
		kettle,
		phoneCharge,
	},
	Winter: {
		fridge,
		{Name: "Lights", Power: 10, Hours: 9},
		{Name: "Laptop", Power: 60, Hours: 3},
		waterPump,
		extractor,
		microwave,
		kettle,
		phoneCharge,
		{Name: "Diesel Heating Controller", Power: 40, Hours: 10},
	},
}

// Names lists the scenarios in a stable order, Default first.
func Names() []string {
	return []string{Default, Base, Moderate, Peak, Summer, Winter}
}

// Canonical returns the catalogue spelling of name, matched case-insensitively.
func Canonical(name string) (string, error) {
	for _, n := range Names() {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return n, nil
		}
	}
	return "", pkgerrors.Wrapf(ErrUnknownScenario, "%q (available: %s)", name, strings.Join(Names(), ", "))
}

// Get returns a copy of the appliance profile of the named scenario.
func Get(name string) ([]kpi.Appliance, error) {
	n, err := Canonical(name)
	if err != nil {
		return nil, err
	}
	p := profiles[n]
	out := make([]kpi.Appliance, len(p))
	copy(out, p)
	return out, nil
}

// Tank is a methanol cartridge setup.
type Tank struct {
	Name   string  `json:"name"`
	Liters float64 `json:"liters"`
}

// DefaultTank is two M10 cartridges.
var DefaultTank = Tank{Name: "2xM10", Liters: 20}

var tanks = []Tank{
	{Name: "M5", Liters: 5},
	{Name: "M10", Liters: 10},
	DefaultTank,
}

// Tanks lists the tank options by size.
func Tanks() []Tank {
	out := make([]Tank, len(tanks))
	copy(out, tanks)
	sort.Slice(out, func(i, j int) bool { return out[i].Liters < out[j].Liters })
	return out
}

// ParseTank accepts a tank option name such as "M10" or a plain number of
// litres.
func ParseTank(s string) (float64, error) {
	s = strings.TrimSpace(s)
	for _, t := range tanks {
		if strings.EqualFold(t.Name, s) {
			return t.Liters, nil
		}
	}
	l, err := strconv.ParseFloat(strings.TrimSuffix(strings.ToLower(s), "l"), 64)
	if err != nil {
		return 0, pkgerrors.Errorf("invalid tank %q: expected M5, M10, 2xM10 or a number of litres", s)
	}
	if !kpi.Finite(l) {
		return 0, pkgerrors.Errorf("invalid tank %q: litres must be a finite number", s)
	}
	if l < 0 {
		return 0, pkgerrors.Errorf("invalid tank %q: litres must not be negative", s)
	}
	return l, nil
}

// Summary describes one catalogue entry.
type Summary struct {
	Name          string          `json:"name"`
	Appliances    []kpi.Appliance `json:"appliances"`
	DailyDemandWh float64         `json:"dailyDemandWh"`
}

// Catalogue summarises every scenario in Names order.
func Catalogue() []Summary {
	out := make([]Summary, 0, len(profiles))
	for _, n := range Names() {
		apps, _ := Get(n)
		out = append(out, Summary{Name: n, Appliances: apps, DailyDemandWh: kpi.DailyEnergyDemand(apps)})
	}
	return out
}
