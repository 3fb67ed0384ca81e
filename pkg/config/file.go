package config

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/offgrid-tools/hykpi/pkg/kpi"
	"github.com/offgrid-tools/hykpi/pkg/scenario"
	"github.com/offgrid-tools/hykpi/pkg/utils/ptr"
)

var (
	defaultFileConfig = &RawFileConfig{
		Scenario:           ptr.To(scenario.Default),
		TankLiters:         ptr.To(scenario.DefaultTank.Liters),
		PeakLoadW:          ptr.To(997.0),
		AllowNonRootAccess: ptr.To(false),
	}
)

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	f := &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}

	return f
}

// RawConstants overrides individual system constants. Nil fields keep the
// reference value.
type RawConstants struct {
	MethanolLitersPerKWh  *float64 `json:"methanolLitersPerKWh,omitempty" yaml:"methanolLitersPerKWh,omitempty"`
	BatteryCapacityAh     *float64 `json:"batteryCapacityAh,omitempty" yaml:"batteryCapacityAh,omitempty"`
	BatteryVoltage        *float64 `json:"batteryVoltage,omitempty" yaml:"batteryVoltage,omitempty"`
	FuelCellOutputW       *float64 `json:"fuelCellOutputW,omitempty" yaml:"fuelCellOutputW,omitempty"`
	MethanolEnergyKWhPerL *float64 `json:"methanolEnergyKWhPerL,omitempty" yaml:"methanolEnergyKWhPerL,omitempty"`
	MaxDischargeCurrentA  *float64 `json:"maxDischargeCurrentA,omitempty" yaml:"maxDischargeCurrentA,omitempty"`
	FuelCellRatedEff      *float64 `json:"fuelCellRatedEfficiency,omitempty" yaml:"fuelCellRatedEfficiency,omitempty"`
}

type RawFileConfig struct {
	Constants          *RawConstants   `json:"constants,omitempty" yaml:"constants,omitempty"`
	Scenario           *string         `json:"scenario,omitempty" yaml:"scenario,omitempty"`
	Appliances         []kpi.Appliance `json:"appliances,omitempty" yaml:"appliances,omitempty"`
	TankLiters         *float64        `json:"tankLiters,omitempty" yaml:"tankLiters,omitempty"`
	PeakLoadW          *float64        `json:"peakLoadW,omitempty" yaml:"peakLoadW,omitempty"`
	AllowNonRootAccess *bool           `json:"allowNonRootAccess,omitempty" yaml:"allowNonRootAccess,omitempty"`
}

func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	k := c.Constants()
	rawConfig := &RawFileConfig{
		Constants: &RawConstants{
			MethanolLitersPerKWh:  ptr.To(k.MethanolLitersPerKWh),
			BatteryCapacityAh:     ptr.To(k.BatteryCapacityAh),
			BatteryVoltage:        ptr.To(k.BatteryVoltage),
			FuelCellOutputW:       ptr.To(k.FuelCellOutputW),
			MethanolEnergyKWhPerL: ptr.To(k.MethanolEnergyKWhPerL),
			MaxDischargeCurrentA:  ptr.To(k.MaxDischargeCurrentA),
			FuelCellRatedEff:      ptr.To(k.FuelCellRatedEff),
		},
		Scenario:           ptr.To(c.Scenario()),
		TankLiters:         ptr.To(c.TankLiters()),
		PeakLoadW:          ptr.To(c.PeakLoadW()),
		AllowNonRootAccess: ptr.To(c.AllowNonRootAccess()),
	}

	// A scenario session is fully described by its name.
	if c.Inputs().Scenario == "" {
		rawConfig.Appliances = c.Appliances()
	}

	return rawConfig, nil
}

func (f *File) Constants() kpi.Constants {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	k := kpi.DefaultConstants()
	rc := f.c.Constants
	if rc == nil {
		return k
	}
	k.MethanolLitersPerKWh = ptr.Deref(rc.MethanolLitersPerKWh, k.MethanolLitersPerKWh)
	k.BatteryCapacityAh = ptr.Deref(rc.BatteryCapacityAh, k.BatteryCapacityAh)
	k.BatteryVoltage = ptr.Deref(rc.BatteryVoltage, k.BatteryVoltage)
	k.FuelCellOutputW = ptr.Deref(rc.FuelCellOutputW, k.FuelCellOutputW)
	k.MethanolEnergyKWhPerL = ptr.Deref(rc.MethanolEnergyKWhPerL, k.MethanolEnergyKWhPerL)
	k.MaxDischargeCurrentA = ptr.Deref(rc.MaxDischargeCurrentA, k.MaxDischargeCurrentA)
	k.FuelCellRatedEff = ptr.Deref(rc.FuelCellRatedEff, k.FuelCellRatedEff)

	return k
}

func (f *File) Scenario() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.Scenario != nil {
		return *f.c.Scenario
	}
	return *defaultFileConfig.Scenario
}

func (f *File) Appliances() []kpi.Appliance {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	custom := f.c.Appliances
	f.mu.RUnlock()

	if len(custom) > 0 {
		out := make([]kpi.Appliance, len(custom))
		copy(out, custom)
		return out
	}

	apps, err := scenario.Get(f.Scenario())
	if err != nil {
		// Load rejects unknown scenarios, so only a hand-built RawFileConfig
		// gets here.
		logrus.WithError(err).Warn("falling back to default scenario")
		apps, _ = scenario.Get(scenario.Default)
	}
	return apps
}

func (f *File) TankLiters() float64 {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.TankLiters, *defaultFileConfig.TankLiters)
}

func (f *File) PeakLoadW() float64 {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.PeakLoadW, *defaultFileConfig.PeakLoadW)
}

func (f *File) AllowNonRootAccess() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.AllowNonRootAccess, *defaultFileConfig.AllowNonRootAccess)
}

func (f *File) Inputs() kpi.Inputs {
	in := kpi.Inputs{
		Appliances: f.Appliances(),
		TankLiters: f.TankLiters(),
		PeakLoadW:  f.PeakLoadW(),
	}

	f.mu.RLock()
	custom := len(f.c.Appliances) > 0
	f.mu.RUnlock()
	if !custom {
		in.Scenario = f.Scenario()
	}

	return in
}

func (f *File) SetScenario(name string) error {
	if f.c == nil {
		panic("config is nil")
	}

	n, err := scenario.Canonical(name)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.Scenario = &n
	f.c.Appliances = nil

	return nil
}

func (f *File) SetAppliances(apps []kpi.Appliance) error {
	if f.c == nil {
		panic("config is nil")
	}

	// An empty list would read back as "no custom list" and fall through to
	// the scenario. Use SetScenario for that.
	if len(apps) == 0 {
		return pkgerrors.New("appliance list must not be empty")
	}
	if err := kpi.ValidateAppliances(apps); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.Appliances = append([]kpi.Appliance(nil), apps...)
	f.c.Scenario = nil

	return nil
}

func (f *File) SetTankLiters(l float64) error {
	if f.c == nil {
		panic("config is nil")
	}

	if !kpi.Finite(l) || l < 0 {
		return pkgerrors.Errorf("tank litres must be a finite non-negative number, got %g", l)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.TankLiters = &l

	return nil
}

func (f *File) SetPeakLoadW(w float64) error {
	if f.c == nil {
		panic("config is nil")
	}

	if !kpi.Finite(w) || w < 0 {
		return pkgerrors.Errorf("peak load must be a finite non-negative number, got %g W", w)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.PeakLoadW = &w

	return nil
}

func (f *File) SetAllowNonRootAccess(b bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.c.AllowNonRootAccess = &b
}

func (f *File) isYAML() bool {
	switch strings.ToLower(filepath.Ext(f.filepath)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	if f.isYAML() {
		err = yaml.Unmarshal(b, &conf)
	} else {
		err = json.Unmarshal(b, &conf)
	}
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}

	if err := validate(&conf); err != nil {
		return pkgerrors.Wrapf(err, "invalid config in file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func validate(c *RawFileConfig) error {
	if c.Scenario != nil {
		n, err := scenario.Canonical(*c.Scenario)
		if err != nil {
			return err
		}
		c.Scenario = &n
	}
	if err := kpi.ValidateAppliances(c.Appliances); err != nil {
		return err
	}
	if err := checkNonNegative("tankLiters", c.TankLiters); err != nil {
		return err
	}
	if err := checkNonNegative("peakLoadW", c.PeakLoadW); err != nil {
		return err
	}
	if c.Constants != nil {
		return validateConstants(c.Constants)
	}
	return nil
}

// validateConstants rejects overrides that make the KPIs meaningless. Voltage
// and energy density are divisors and must be positive.
func validateConstants(k *RawConstants) error {
	positive := []struct {
		name string
		v    *float64
	}{
		{"constants.batteryVoltage", k.BatteryVoltage},
		{"constants.methanolEnergyKWhPerL", k.MethanolEnergyKWhPerL},
	}
	for _, p := range positive {
		if err := checkNonNegative(p.name, p.v); err != nil {
			return err
		}
		if p.v != nil && *p.v == 0 {
			return pkgerrors.Errorf("%s must be positive, got 0", p.name)
		}
	}

	nonNegative := []struct {
		name string
		v    *float64
	}{
		{"constants.methanolLitersPerKWh", k.MethanolLitersPerKWh},
		{"constants.batteryCapacityAh", k.BatteryCapacityAh},
		{"constants.fuelCellOutputW", k.FuelCellOutputW},
		{"constants.maxDischargeCurrentA", k.MaxDischargeCurrentA},
		{"constants.fuelCellRatedEfficiency", k.FuelCellRatedEff},
	}
	for _, n := range nonNegative {
		if err := checkNonNegative(n.name, n.v); err != nil {
			return err
		}
	}
	return nil
}

func checkNonNegative(name string, v *float64) error {
	if v == nil {
		return nil
	}
	if !kpi.Finite(*v) {
		return pkgerrors.Errorf("%s must be a finite number, got %g", name, *v)
	}
	if *v < 0 {
		return pkgerrors.Errorf("%s must not be negative, got %g", name, *v)
	}
	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	if dir := filepath.Dir(f.filepath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return pkgerrors.Wrapf(err, "failed to create directory %s", dir)
		}
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	if f.isYAML() {
		enc := yaml.NewEncoder(fp)
		enc.SetIndent(2)
		err = enc.Encode(f.c)
		if err == nil {
			err = enc.Close()
		}
	} else {
		enc := json.NewEncoder(fp)
		enc.SetIndent("", "  ")
		err = enc.Encode(f.c)
	}
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	fields := f.Constants().LogrusFields()
	fields["scenario"] = f.Scenario()
	fields["appliances"] = len(f.Appliances())
	fields["tankLiters"] = f.TankLiters()
	fields["peakLoadW"] = f.PeakLoadW()
	fields["allowNonRootAccess"] = f.AllowNonRootAccess()

	return fields
}
