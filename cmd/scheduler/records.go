package main

import (
	"context"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/app"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
)

type recordJSON struct {
	ID          string            `json:"id"`
	Kind        string            `json:"kind"`
	EventKey    string            `json:"event_key"`
	ScheduleID  string            `json:"schedule_id"`
	TemplateID  string            `json:"template_id"`
	Context     map[string]string `json:"context"`
	AvailableAt time.Time         `json:"available_at"`
	ExpiresAt   time.Time         `json:"expires_at"`
}

func recordView(r domain.GeneratedRecord) recordJSON {
	return recordJSON{
		ID:          r.ID.String(),
		Kind:        r.Kind.String(),
		EventKey:    r.EventKey,
		ScheduleID:  r.ScheduleID.String(),
		TemplateID:  r.TemplateID.String(),
		Context:     r.Context,
		AvailableAt: r.AvailableAt,
		ExpiresAt:   r.ExpiresAt,
	}
}

func (c *cli) recordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "records <notifications|surveys> <user-id>",
		Short: "List the generated records of a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			userID, err := parseID("user-id", args[1])
			if err != nil {
				return err
			}
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				records, err := a.Repos.Records.ListByUser(ctx, kind, userID)
				if err != nil {
					return err
				}

				views := make([]recordJSON, len(records))
				for i, r := range records {
					views[i] = recordView(r)
				}
				if c.jsonOut {
					return c.printJSON(views)
				}

				tw := table.NewWriter()
				tw.SetOutputMirror(c.out)
				tw.AppendHeader(table.Row{"ID", "Available", "Expires", "Event key"})
				for _, v := range views {
					tw.AppendRow(table.Row{v.ID, v.AvailableAt.Format(time.RFC3339), v.ExpiresAt.Format(time.RFC3339), v.EventKey})
				}
				tw.Render()
				return nil
			})
		},
	}
}
