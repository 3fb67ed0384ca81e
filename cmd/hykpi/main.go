package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/offgrid-tools/hykpi/pkg/client"
	"github.com/offgrid-tools/hykpi/pkg/version"
)

var (
	logLevel       = "info"
	unixSocketPath = "/var/run/hykpi.sock"
	configPath     = "/etc/hykpi.json"
)

var (
	gOffline      = "Offline:"
	gSession      = "Dashboard session:"
	gInstallation = "Installation:"
	commandGroups = []string{
		gOffline,
		gSession,
		gInstallation,
	}
)

// apiClient is rebuilt once flags are parsed so --daemon-socket applies.
var apiClient = client.NewClient(unixSocketPath)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	if errors.Is(err, client.ErrDaemonNotRunning) {
		fmt.Fprintln(os.Stderr, "\nError: hykpi daemon is not running")
		fmt.Fprintln(os.Stderr, "Is the daemon running? Have you installed it with 'hykpi install'?")
		fmt.Fprintln(os.Stderr, "Offline commands such as 'hykpi calc' work without it.")
	} else if errors.Is(err, client.ErrPermissionDenied) {
		fmt.Fprintln(os.Stderr, "\nError: Permission Denied")
		fmt.Fprintln(os.Stderr, "  - Try running the command again with 'sudo'")
		fmt.Fprintln(os.Stderr, "  - Or reinstall the daemon with the '--allow-non-root-access' flag to grant permissions to your user")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hykpi",
		Short: "hykpi estimates KPIs of an EFOY fuel cell and LiFePO4 battery system",
		Long: `hykpi estimates key performance indicators of an off-grid hybrid power system
made of an EFOY direct methanol fuel cell and a 12.8 V LiFePO4 battery.

Offline commands compute from the config file and flags. Dashboard session
commands talk to the hykpi daemon, which keeps a live session and streams
updates to every watcher.

All values are estimates for educational and academic purposes only.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			err := setupLogger()
			if err != nil {
				return err
			}

			apiClient = client.NewClient(unixSocketPath)

			if !inGroup(cmd, gSession) {
				return nil
			}

			daemonVersion, err := apiClient.GetVersion()
			if err == nil && daemonVersion != version.Version {
				logrus.WithFields(logrus.Fields{
					"clientVersion": version.Version,
					"daemonVersion": daemonVersion,
				}).Warn("Version mismatch between client and daemon. Reinstall the daemon with this binary to keep them in sync.")
			}

			return nil
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path (.json, .yaml or .yml)")
	globalFlags.StringVar(&unixSocketPath, "daemon-socket", unixSocketPath, "hykpi daemon unix socket path")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewVersionCommand(),
		NewCalcCommand(),
		NewReportCommand(),
		NewScenariosCommand(),
		NewFormulasCommand(),
		NewConfigCommand(),
		NewStatusCommand(),
		NewTankCommand(),
		NewPeakLoadCommand(),
		NewScenarioCommand(),
		NewApplianceCommand(),
		NewWatchCommand(),
		NewDaemonCommand(),
		NewInstallCommand(),
		NewUninstallCommand(),
	)

	return cmd
}
