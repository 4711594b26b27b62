package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/app"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/service/schedule"
)

func (c *cli) generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate notification events or surveys for every active user",
	}

	var forceEvents bool
	notifications := &cobra.Command{
		Use:   "notifications",
		Short: "Create the notification events whose window contains now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.generate(cmd, domain.RecordKindNotification, forceEvents)
		},
	}
	notifications.Flags().BoolVar(&forceEvents, "force-create-events", false,
		"create every notification event regardless of its time window")

	var forceSurveys bool
	surveys := &cobra.Command{
		Use:   "surveys",
		Short: "Create the surveys whose window contains now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.generate(cmd, domain.RecordKindSurvey, forceSurveys)
		},
	}
	surveys.Flags().BoolVar(&forceSurveys, "force-create-surveys", false,
		"create every survey regardless of its time window")

	cmd.AddCommand(notifications, surveys)
	return cmd
}

func (c *cli) generate(cmd *cobra.Command, kind domain.RecordKind, force bool) error {
	return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
		stats, err := a.Schedule.GenerateForAllActiveUsers(ctx, kind, force)
		if err != nil {
			return fmt.Errorf("generate %s: %w", kind, err)
		}

		c.log.InfoContext(ctx, "generate completed",
			slog.String("kind", kind.String()),
			slog.Int("users", stats.Users),
			slog.Int("created", stats.Created),
			slog.Int("skipped", stats.Skipped),
		)

		if c.jsonOut {
			return c.printJSON(statsView(kind, stats))
		}
		_, err = fmt.Fprintf(c.out, "%s: %d users, %d created, %d already present\n",
			kind, stats.Users, stats.Created, stats.Skipped)
		return err
	})
}

type runStatsJSON struct {
	Kind    string `json:"kind"`
	Users   int    `json:"users"`
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
}

func statsView(kind domain.RecordKind, s schedule.RunStats) runStatsJSON {
	return runStatsJSON{Kind: kind.String(), Users: s.Users, Created: s.Created, Skipped: s.Skipped}
}
