package config

import (
	"github.com/sirupsen/logrus"

	"github.com/offgrid-tools/hykpi/pkg/kpi"
)

type Config interface {
	Constants() kpi.Constants
	Scenario() string
	// Appliances returns the custom appliance list if one is configured,
	// otherwise the profile of Scenario.
	Appliances() []kpi.Appliance
	TankLiters() float64
	PeakLoadW() float64
	AllowNonRootAccess() bool
	// Inputs assembles the session inputs the config describes.
	Inputs() kpi.Inputs

	SetScenario(string) error
	SetAppliances([]kpi.Appliance) error
	SetTankLiters(float64) error
	SetPeakLoadW(float64) error
	SetAllowNonRootAccess(bool)

	LogrusFields() logrus.Fields

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
