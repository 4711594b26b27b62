package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/app"
)

func (c *cli) surveyCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "survey", Short: "Answer surveys"}

	respond := &cobra.Command{
		Use:   "respond <user-id> <survey-id> <response>",
		Short: "Store a survey response and apply its follow-up",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID("user-id", args[0])
			if err != nil {
				return err
			}
			surveyID, err := parseID("survey-id", args[1])
			if err != nil {
				return err
			}

			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				sv, err := a.Surveys.Respond(ctx, userID, surveyID, args[2])
				if err != nil {
					return err
				}
				if c.jsonOut {
					return c.printJSON(map[string]string{
						"id":       sv.ID.String(),
						"template": sv.TemplateCode,
						"response": *sv.Response,
					})
				}
				_, err = fmt.Fprintf(c.out, "survey %s (%s) answered %q\n", sv.ID, sv.TemplateCode, *sv.Response)
				return err
			})
		},
	}

	cmd.AddCommand(respond)
	return cmd
}
