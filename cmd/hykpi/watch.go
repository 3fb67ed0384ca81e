package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/offgrid-tools/hykpi/pkg/events"
)

func NewWatchCommand() *cobra.Command {
	asJSON := false

	cmd := &cobra.Command{
		Use:     "watch",
		Short:   "Follow KPI updates of the dashboard session",
		GroupID: gSession,
		Long: `Print the KPIs every time the dashboard session changes, until interrupted.

The current KPIs are printed first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Fail fast with a helpful message if the daemon is down.
			if _, err := apiClient.GetVersion(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			for ev := range apiClient.SubscribeEvents(ctx) {
				if ev.Name != events.KPIUpdated {
					logrus.WithField("event", ev.Name).Debug("ignoring event")
					continue
				}

				payload, err := events.DecodeAs[events.KPIUpdatedEvent](ev)
				if err != nil {
					logrus.WithError(err).Error("failed to decode kpi.updated event")
					continue
				}

				if asJSON {
					if err := printJSON(cmd, payload); err != nil {
						return err
					}
					continue
				}

				cmd.Printf("%s %s\n\n", bold("[%s]", time.Unix(payload.Ts, 0).Format(time.Kitchen)), payload.Reason)
				printKPIs(cmd, payload.Inputs, payload.Result)
				cmd.Println()
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print each update as JSON")

	return cmd
}
