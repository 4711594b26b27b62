// Command scheduler runs the calendar and notification/survey generation
// jobs and the small set of admin operations around them. Generation is
// meant to be invoked periodically by an external cron.
//
// Usage:
//
//	scheduler generate notifications [--force-create-events]
//	scheduler generate surveys [--force-create-surveys]
//	scheduler calendar <user-id> [--json]
//	scheduler migrate up|status
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/app"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/config"
)

// cli carries state shared by every subcommand.
type cli struct {
	configPath string
	jsonOut    bool

	cfg *config.Config
	log *slog.Logger
	out io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	c := &cli{out: os.Stdout}
	err := c.rootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if c.log != nil {
			c.log.Error("command failed", slog.String("error", err.Error()))
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "scheduler",
		Short:         "Calendar, notification and survey scheduling jobs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			cfg, err := config.LoadFrom(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			c.log = app.NewLogger(cfg.Log)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", os.Getenv("CONFIG_PATH"), "path to YAML config")
	root.PersistentFlags().BoolVar(&c.jsonOut, "json", false, "output JSON")

	root.AddCommand(
		c.generateCmd(),
		c.calendarCmd(),
		c.recordsCmd(),
		c.pregnancyCmd(),
		c.childCmd(),
		c.userCmd(),
		c.vaccineCmd(),
		c.surveyCmd(),
		c.ruleCmd(),
		c.templateCmd(),
		c.migrateCmd(),
		c.versionCmd(),
	)
	return root
}

// withApp connects to the database, bounds the run with the configured
// timeout and hands the wired application to fn.
func (c *cli) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), c.cfg.Scheduler.RunTimeout)
	defer cancel()

	a, err := app.New(ctx, c.cfg, c.log)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(c.out, app.BuildVersion())
			return err
		},
	}
}
