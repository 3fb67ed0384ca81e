package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/offgrid-tools/hykpi/pkg/config"
	"github.com/offgrid-tools/hykpi/pkg/kpi"
	"github.com/offgrid-tools/hykpi/pkg/report"
	"github.com/offgrid-tools/hykpi/pkg/scenario"
)

// inputFlags override the config file for offline commands.
type inputFlags struct {
	scenario   string
	tank       string
	peakLoad   float64
	appliances []string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.scenario, "scenario", "s", "", "appliance scenario ("+joinNames()+")")
	fl.StringVarP(&f.tank, "tank", "t", "", "methanol available: M5, M10, 2xM10 or litres")
	fl.Float64VarP(&f.peakLoad, "peak-load", "p", -1, "peak simultaneous load in W")
	fl.StringArrayVarP(&f.appliances, "appliance", "a", nil, "custom appliance as name=W:h, repeatable; replaces the scenario")
}

// apply writes the flags that were given into conf.
func (f *inputFlags) apply(cmd *cobra.Command, conf config.Config) error {
	if f.scenario != "" && len(f.appliances) > 0 {
		return fmt.Errorf("--scenario and --appliance are mutually exclusive")
	}

	if f.scenario != "" {
		if err := conf.SetScenario(f.scenario); err != nil {
			return err
		}
	}

	if len(f.appliances) > 0 {
		apps, err := parseApplianceFlags(f.appliances)
		if err != nil {
			return err
		}
		if err := conf.SetAppliances(apps); err != nil {
			return err
		}
	}

	if f.tank != "" {
		l, err := scenario.ParseTank(f.tank)
		if err != nil {
			return err
		}
		if err := conf.SetTankLiters(l); err != nil {
			return err
		}
	}

	if cmd.Flags().Changed("peak-load") {
		if err := conf.SetPeakLoadW(f.peakLoad); err != nil {
			return fmt.Errorf("invalid peak load: %w", err)
		}
	}

	return nil
}

// resolve merges the config file at configPath with the flags. The file on
// disk is left untouched.
func (f *inputFlags) resolve(cmd *cobra.Command) (kpi.Inputs, kpi.Constants, error) {
	conf, err := config.NewFile(configPath)
	if err != nil {
		return kpi.Inputs{}, kpi.Constants{}, err
	}
	logrus.WithFields(conf.LogrusFields()).Debug("config loaded")

	if err := f.apply(cmd, conf); err != nil {
		return kpi.Inputs{}, kpi.Constants{}, err
	}

	return conf.Inputs(), conf.Constants(), nil
}

func NewCalcCommand() *cobra.Command {
	var flags inputFlags
	asJSON := false

	cmd := &cobra.Command{
		Use:     "calc",
		Short:   "Compute KPIs locally",
		GroupID: gOffline,
		Long: `Compute the KPIs of one configuration without the daemon.

Inputs come from the config file and can be overridden with flags, e.g.

  hykpi calc --scenario winter --tank M10
  hykpi calc -a Fridge=45:24 -a Lights=10:6 --peak-load 1500`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, k, err := flags.resolve(cmd)
			if err != nil {
				return err
			}

			r := kpi.NewCalculator(k).Compute(in)

			if asJSON {
				return printJSON(cmd, newStatusJSON(in, r, k))
			}
			printKPIs(cmd, in, r)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}

func NewReportCommand() *cobra.Command {
	var flags inputFlags
	output := ""

	cmd := &cobra.Command{
		Use:     "report",
		Short:   "Write a text report",
		GroupID: gOffline,
		Long: `Write a plain-text report of the KPIs, appliance energy and system constants.

Takes the same input flags as calc. The report goes to stdout unless -o is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, k, err := flags.resolve(cmd)
			if err != nil {
				return err
			}

			rep := report.New(in, kpi.NewCalculator(k).Compute(in), k, time.Now())

			if output == "" {
				return rep.Write(cmd.OutOrStdout())
			}

			fp, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create report: %w", err)
			}
			if err := rep.Write(fp); err != nil {
				_ = fp.Close()
				return fmt.Errorf("failed to write report: %w", err)
			}
			if err := fp.Close(); err != nil {
				return err
			}

			logrus.Infof("report written to %s", output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to this file")

	return cmd
}
