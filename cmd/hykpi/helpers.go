package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/offgrid-tools/hykpi/pkg/kpi"
)

// inGroup reports whether cmd or one of its parents belongs to group.
func inGroup(cmd *cobra.Command, group string) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.GroupID == group {
			return true
		}
	}
	return false
}

func parseFloatArg(args []string, valueName string) (float64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("invalid number of arguments")
	}

	value, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", valueName, err)
	}
	if !kpi.Finite(value) {
		return 0, fmt.Errorf("invalid %s: must be a finite number", valueName)
	}
	if value < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", valueName)
	}

	return value, nil
}

// parseApplianceFlag parses "name=W:h", e.g. "Fridge=45:24".
func parseApplianceFlag(s string) (kpi.Appliance, error) {
	name, load, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return kpi.Appliance{}, fmt.Errorf("invalid appliance %q: expected name=W:h", s)
	}

	w, h, ok := strings.Cut(load, ":")
	if !ok {
		return kpi.Appliance{}, fmt.Errorf("invalid appliance %q: expected name=W:h", s)
	}

	power, err := strconv.ParseFloat(strings.TrimSpace(w), 64)
	if err != nil {
		return kpi.Appliance{}, fmt.Errorf("invalid power in appliance %q: %v", s, err)
	}
	hours, err := strconv.ParseFloat(strings.TrimSpace(h), 64)
	if err != nil {
		return kpi.Appliance{}, fmt.Errorf("invalid hours in appliance %q: %v", s, err)
	}

	a := kpi.Appliance{Name: name, Power: power, Hours: hours}
	if err := a.Validate(); err != nil {
		return kpi.Appliance{}, err
	}
	return a, nil
}

func parseApplianceFlags(specs []string) ([]kpi.Appliance, error) {
	apps := make([]kpi.Appliance, 0, len(specs))
	for _, s := range specs {
		a, err := parseApplianceFlag(s)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, kpi.ValidateAppliances(apps)
}
