package schedule

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/pkg/ctxutil"
)

type userRepo interface {
	ListActive(ctx context.Context) ([]domain.User, error)
}

type ruleRepo interface {
	ListByKind(ctx context.Context, kind domain.RecordKind) ([]domain.ScheduleRule, error)
}

type recordRepo interface {
	Insert(ctx context.Context, rec *domain.GeneratedRecord) error
}

type calendarDeriver interface {
	DeriveCalendarEvents(ctx context.Context, userID uuid.UUID) (iter.Seq[domain.CalendarEvent], error)
}

// RunStats summarises one batch run.
type RunStats struct {
	Users   int
	Created int
	Skipped int
}

// Service turns user calendars into notification events and surveys.
type Service struct {
	users    userRepo
	rules    ruleRepo
	records  recordRepo
	calendar calendarDeriver
	log      *slog.Logger
	workers  int
	now      func() time.Time

	defaultLoc *time.Location
}

// Option configures a Service.
type Option func(*Service)

// WithWorkers sets how many users are processed concurrently.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithClock replaces the wall clock used for window checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithDefaultLocation sets the timezone of users without a profile or with a
// timezone that does not load.
func WithDefaultLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.defaultLoc = loc
		}
	}
}

// NewService creates a new schedule service.
func NewService(
	log *slog.Logger,
	users userRepo,
	rules ruleRepo,
	records recordRepo,
	calendar calendarDeriver,
	opts ...Option,
) *Service {
	s := &Service{
		users:    users,
		rules:    rules,
		records:  records,
		calendar: calendar,
		log:      log.With("service", "schedule"),
		workers:  1,
		now:      time.Now,

		defaultLoc: time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateRecordsForUser derives the user's calendar and yields the records
// the rules produce for it, ordered by (AvailableAt, ExpiresAt).
func (s *Service) GenerateRecordsForUser(
	ctx context.Context,
	user domain.User,
	rules []domain.ScheduleRule,
	forceCreate bool,
) (iter.Seq[domain.GeneratedRecord], error) {
	events, err := s.calendar.DeriveCalendarEvents(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("derive calendar: %w", err)
	}

	loc := s.location(user)
	now := s.now()

	var streams []iter.Seq[domain.GeneratedRecord]
	for event := range events {
		streams = append(streams, recordsForEvent(user, loc, rules, event, now, forceCreate))
	}

	return MergeRecords(streams...), nil
}

// GenerateForAllActiveUsers generates and stores records of the given kind
// for every active user. Records that already exist are skipped. The first
// failure cancels the remaining users and is returned together with the
// counts reached so far.
func (s *Service) GenerateForAllActiveUsers(ctx context.Context, kind domain.RecordKind, forceCreate bool) (RunStats, error) {
	if !kind.IsValid() {
		return RunStats{}, domain.NewValidationError("kind", "unknown record kind")
	}

	ctx = ctxutil.WithRunID(ctx, uuid.New())
	log := s.log.With(ctxutil.LogAttrs(ctx)...).With(slog.String("kind", kind.String()))

	rules, err := s.rules.ListByKind(ctx, kind)
	if err != nil {
		return RunStats{}, fmt.Errorf("list %s rules: %w", kind, err)
	}

	users, err := s.users.ListActive(ctx)
	if err != nil {
		return RunStats{}, fmt.Errorf("list active users: %w", err)
	}

	log.InfoContext(ctx, "generation started",
		slog.Int("users", len(users)),
		slog.Int("rules", len(rules)),
		slog.Bool("force_create", forceCreate),
	)

	if len(rules) == 0 {
		log.InfoContext(ctx, "no rules configured, nothing to generate")
		return RunStats{Users: len(users)}, nil
	}

	var created, skipped atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, user := range users {
		g.Go(func() error {
			c, sk, err := s.generateForUser(gctx, user, rules, forceCreate)
			created.Add(int64(c))
			skipped.Add(int64(sk))
			if err != nil {
				return fmt.Errorf("user %s: %w", user.ID, err)
			}
			return nil
		})
	}

	err = g.Wait()
	stats := RunStats{
		Users:   len(users),
		Created: int(created.Load()),
		Skipped: int(skipped.Load()),
	}

	if err != nil {
		log.ErrorContext(ctx, "generation failed",
			slog.Int("created", stats.Created),
			slog.Int("skipped", stats.Skipped),
			slog.String("error", err.Error()),
		)
		return stats, err
	}

	log.InfoContext(ctx, "generation finished",
		slog.Int("users", stats.Users),
		slog.Int("created", stats.Created),
		slog.Int("skipped", stats.Skipped),
	)
	return stats, nil
}

func (s *Service) generateForUser(
	ctx context.Context,
	user domain.User,
	rules []domain.ScheduleRule,
	forceCreate bool,
) (created, skipped int, err error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	ctx = ctxutil.WithUserID(ctx, user.ID)

	records, err := s.GenerateRecordsForUser(ctx, user, rules, forceCreate)
	if err != nil {
		return 0, 0, err
	}

	for rec := range records {
		rec.ID = uuid.New()
		rec.CreatedAt = s.now()

		err := s.records.Insert(ctx, &rec)
		if errors.Is(err, domain.ErrAlreadyExists) {
			skipped++
			continue
		}
		if err != nil {
			return created, skipped, fmt.Errorf("insert %s %s/%s: %w", rec.Kind, rec.EventKey, rec.ScheduleID, err)
		}
		created++
	}

	s.log.DebugContext(ctx, "user generated",
		append(ctxutil.LogAttrs(ctx), slog.Int("created", created), slog.Int("skipped", skipped))...,
	)
	return created, skipped, nil
}
