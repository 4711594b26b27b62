package main

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/app"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
)

type ruleJSON struct {
	ID                string `json:"id"`
	Kind              string `json:"kind"`
	TemplateID        string `json:"template_id"`
	CalendarEventType string `json:"calendar_event_type"`
	OffsetDays        int    `json:"offset_days"`
	TimeOfDay         string `json:"time_of_day"`
	TimeToLive        string `json:"time_to_live"`
	Description       string `json:"description"`
}

func ruleView(r domain.ScheduleRule) ruleJSON {
	return ruleJSON{
		ID:                r.ID.String(),
		Kind:              r.Kind.String(),
		TemplateID:        r.TemplateID.String(),
		CalendarEventType: r.CalendarEventType.String(),
		OffsetDays:        r.OffsetDays,
		TimeOfDay:         r.TimeOfDay.String(),
		TimeToLive:        r.TimeToLive.String(),
		Description:       r.Describe(),
	}
}

func (c *cli) ruleCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "rule", Short: "Manage notification and survey schedules"}

	list := &cobra.Command{
		Use:   "list <notifications|surveys>",
		Short: "List the schedule rules of a kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				rules, err := a.Repos.Rules.ListByKind(ctx, kind)
				if err != nil {
					return err
				}

				views := make([]ruleJSON, len(rules))
				for i, r := range rules {
					views[i] = ruleView(r)
				}
				if c.jsonOut {
					return c.printJSON(views)
				}

				tw := table.NewWriter()
				tw.SetOutputMirror(c.out)
				tw.AppendHeader(table.Row{"ID", "Rule", "TTL"})
				for _, v := range views {
					tw.AppendRow(table.Row{v.ID, v.Description, v.TimeToLive})
				}
				tw.Render()
				return nil
			})
		},
	}

	var (
		templateCode string
		eventType    string
		offsetDays   int
		timeOfDay    string
		ttl          time.Duration
	)
	add := &cobra.Command{
		Use:   "add <notifications|surveys>",
		Short: "Add a schedule rule referencing a template by code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			tod, err := domain.ParseTimeOfDay(timeOfDay)
			if err != nil {
				return domain.NewValidationError("time", err.Error())
			}

			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				tmpl, err := a.Repos.Rules.GetTemplateByCode(ctx, kind, templateCode)
				if err != nil {
					return err
				}

				now := time.Now().UTC()
				rule := domain.ScheduleRule{
					ID:                uuid.New(),
					Kind:              kind,
					TemplateID:        tmpl.ID,
					CalendarEventType: domain.CalendarEventType(strings.ToLower(eventType)),
					OffsetDays:        offsetDays,
					TimeOfDay:         tod,
					TimeToLive:        ttl,
					CreatedAt:         now,
					UpdatedAt:         now,
				}
				if err := a.Repos.Rules.Create(ctx, &rule); err != nil {
					return err
				}
				if c.jsonOut {
					return c.printJSON(ruleView(rule))
				}
				return c.printID("rule", rule.ID)
			})
		},
	}
	add.Flags().StringVar(&templateCode, "template", "", "notification type or survey template code")
	add.Flags().StringVar(&eventType, "event", "", "calendar event type (prenatal_checkup, vaccination)")
	add.Flags().IntVar(&offsetDays, "offset", 0, "days from the event, negative for before")
	add.Flags().StringVar(&timeOfDay, "time", "", "time of day in the user's timezone (HH:MM[:SS])")
	add.Flags().DurationVar(&ttl, "ttl", 0, "time to live, defaults per kind")
	_ = add.MarkFlagRequired("template")
	_ = add.MarkFlagRequired("event")
	_ = add.MarkFlagRequired("time")

	cmd.AddCommand(list, add)
	return cmd
}

func (c *cli) templateCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "template", Short: "Manage notification types and survey templates"}

	var description, surveyType string
	add := &cobra.Command{
		Use:   "add <notifications|surveys> <code>",
		Short: "Add a notification type or survey template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			tmpl := domain.Template{
				ID:          uuid.New(),
				Kind:        kind,
				Code:        args[1],
				Description: description,
			}
			if kind == domain.RecordKindSurvey {
				tmpl.SurveyType = domain.SurveyType(strings.ToUpper(surveyType))
			}

			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Repos.Rules.CreateTemplate(ctx, &tmpl); err != nil {
					return err
				}
				return c.printID(kind.String()+" template", tmpl.ID)
			})
		},
	}
	add.Flags().StringVar(&description, "description", "", "admin-facing description")
	add.Flags().StringVar(&surveyType, "survey-type", string(domain.SurveyTypeMultipleChoice), "MULTIPLE_CHOICE or TEXT (surveys only)")

	cmd.AddCommand(add)
	return cmd
}
