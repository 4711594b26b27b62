package main

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/app"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
)

type eventJSON struct {
	Type     string            `json:"type"`
	Date     string            `json:"date"`
	EventKey string            `json:"event_key"`
	Context  map[string]string `json:"context"`
}

func eventView(e domain.CalendarEvent) eventJSON {
	return eventJSON{
		Type:     e.Type().String(),
		Date:     e.Date().Format(domain.DateLayout),
		EventKey: e.EventKey(),
		Context:  e.Context(),
	}
}

func (c *cli) calendarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calendar <user-id>",
		Short: "Print the derived calendar of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID("user-id", args[0])
			if err != nil {
				return err
			}
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				events, err := a.Calendar.DeriveCalendarEvents(ctx, userID)
				if err != nil {
					return err
				}

				var views []eventJSON
				for e := range events {
					views = append(views, eventView(e))
				}
				if c.jsonOut {
					return c.printJSON(views)
				}
				c.renderEvents(views)
				return nil
			})
		},
	}
}

func (c *cli) renderEvents(views []eventJSON) {
	tw := table.NewWriter()
	tw.SetOutputMirror(c.out)
	tw.AppendHeader(table.Row{"Date", "Type", "Event key", "Details"})
	for _, v := range views {
		tw.AppendRow(table.Row{v.Date, v.Type, v.EventKey, describeContext(v.Context)})
	}
	tw.AppendFooter(table.Row{"", "", "Events", len(views)})
	tw.Render()
}

// describeContext renders the context keys that are not already columns.
func describeContext(ctx map[string]string) string {
	var parts []string
	for _, k := range slices.Sorted(maps.Keys(ctx)) {
		switch k {
		case domain.ContextKeyDate, domain.ContextKeyEventType, domain.ContextKeyEventKey:
			continue
		}
		parts = append(parts, k+"="+ctx[k])
	}
	return strings.Join(parts, " ")
}

func parseID(name, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s %q: %w", name, raw, domain.NewValidationError(name, "must be a UUID"))
	}
	return id, nil
}

func parseKind(raw string) (domain.RecordKind, error) {
	kind := domain.RecordKind(strings.TrimSuffix(strings.ToLower(raw), "s"))
	if !kind.IsValid() {
		return "", domain.NewValidationError("kind", fmt.Sprintf("%q is not notification or survey", raw))
	}
	return kind, nil
}
