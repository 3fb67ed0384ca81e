package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/offgrid-tools/hykpi/pkg/config"
)

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage the config file",
		GroupID: gOffline,
	}

	force := false
	flags := &inputFlags{}
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with every default spelled out",
		Long: `Write a config file with the default scenario, tank, peak load and system constants.

--scenario, --tank, --peak-load and --appliance replace the matching defaults
before the file is written. The format follows the extension of --config: .yaml or .yml for YAML, JSON otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", configPath)
			}

			defaults := config.NewFileFromConfig(nil, "")
			raw, err := config.NewRawFileConfigFromConfig(defaults)
			if err != nil {
				return err
			}

			conf := config.NewFileFromConfig(raw, configPath)
			if err := flags.apply(cmd, conf); err != nil {
				return err
			}
			if err := conf.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			logrus.WithFields(conf.LogrusFields()).Infof("config written to %s", configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")
	flags.register(initCmd)

	cmd.AddCommand(initCmd)

	return cmd
}
