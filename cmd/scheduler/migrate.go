package main

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	postgres "github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/adapter/postgres"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/app"
)

func (c *cli) migrateCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "migrate", Short: "Apply or inspect database migrations"}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				applied, err := postgres.Migrate(ctx, a.Pool)
				if err != nil {
					return err
				}
				c.log.InfoContext(ctx, "migrations applied", "count", len(applied))
				if c.jsonOut {
					return c.printJSON(map[string][]int64{"applied": applied})
				}
				_, err = fmt.Fprintf(c.out, "applied %d migration(s)\n", len(applied))
				return err
			})
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the state of every migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				states, err := postgres.Migrations(ctx, a.Pool)
				if err != nil {
					return err
				}
				if c.jsonOut {
					return c.printJSON(states)
				}

				tw := table.NewWriter()
				tw.SetOutputMirror(c.out)
				tw.AppendHeader(table.Row{"Version", "Source", "Applied"})
				for _, s := range states {
					tw.AppendRow(table.Row{s.Version, s.Source, s.Applied})
				}
				tw.Render()
				return nil
			})
		},
	}

	cmd.AddCommand(up, status)
	return cmd
}
