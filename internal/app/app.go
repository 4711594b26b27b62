// Package app wires configuration, the database pool, repositories and
// services into one process-wide container.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/adapter/postgres"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/adapter/postgres/child"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/adapter/postgres/pregnancy"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/adapter/postgres/record"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/adapter/postgres/rule"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/adapter/postgres/user"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/adapter/postgres/vaccine"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/config"
	calendarsvc "github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/service/calendar"
	pregnancysvc "github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/service/pregnancy"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/service/schedule"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/service/survey"
)

// Repos groups the PostgreSQL repositories.
type Repos struct {
	Users       *user.Repo
	Pregnancies *pregnancy.Repo
	Children    *child.Repo
	Vaccines    *vaccine.Repo
	Rules       *rule.Repo
	Records     *record.Repo
}

// App is the wired application.
type App struct {
	Config *config.Config
	Log    *slog.Logger
	Pool   *pgxpool.Pool
	Tx     *postgres.TxManager
	Repos  Repos

	Calendar    *calendarsvc.Service
	Schedule    *schedule.Service
	Pregnancies *pregnancysvc.Service
	Surveys     *survey.Service
}

// New connects to the database and builds every repository and service.
// Close releases the pool.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return Wire(cfg, logger, pool), nil
}

// Wire builds repositories and services on top of an open pool.
func Wire(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool) *App {
	repos := Repos{
		Users:       user.New(pool),
		Pregnancies: pregnancy.New(pool),
		Children:    child.New(pool),
		Vaccines:    vaccine.New(pool),
		Rules:       rule.New(pool),
		Records:     record.New(pool),
	}

	tx := postgres.NewTxManager(pool)
	calendar := calendarsvc.NewService(logger, repos.Pregnancies, repos.Children, repos.Vaccines)

	return &App{
		Config: cfg,
		Log:    logger,
		Pool:   pool,
		Tx:     tx,
		Repos:  repos,

		Calendar: calendar,
		Schedule: schedule.NewService(logger, repos.Users, repos.Rules, repos.Records, calendar,
			schedule.WithWorkers(cfg.Scheduler.Workers),
			schedule.WithDefaultLocation(schedule.ParseTimezone(cfg.Scheduler.DefaultTimezone)),
		),
		Pregnancies: pregnancysvc.NewService(logger, repos.Pregnancies),
		Surveys: survey.NewService(logger, repos.Records, repos.Vaccines,
			postgres.NewTxManager(pool, postgres.WithIsoLevel(pgx.RepeatableRead)),
		),
	}
}

// Close releases the database pool.
func (a *App) Close() {
	if a.Pool != nil {
		a.Pool.Close()
	}
}

// RunContext returns a context bounded by the configured run timeout.
func (a *App) RunContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, a.Config.Scheduler.RunTimeout)
}
