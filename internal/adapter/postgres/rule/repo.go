// Package rule implements the notification and survey schedule catalogs using
// PostgreSQL.
package rule

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	postgres "github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/adapter/postgres"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
)

// Both kinds share the rule shape; only table and column names differ.
type catalog struct {
	schedules   string
	templates   string
	templateCol string
	ttlCol      string
}

var catalogs = map[domain.RecordKind]catalog{
	domain.RecordKindNotification: {
		schedules:   "notification_schedules",
		templates:   "notification_types",
		templateCol: "notification_type_id",
		ttlCol:      "push_time_to_live",
	},
	domain.RecordKindSurvey: {
		schedules:   "survey_schedules",
		templates:   "survey_templates",
		templateCol: "survey_template_id",
		ttlCol:      "time_to_live",
	},
}

func catalogFor(kind domain.RecordKind) (catalog, error) {
	c, ok := catalogs[kind]
	if !ok {
		return catalog{}, domain.NewValidationError("kind", fmt.Sprintf("unknown rule kind %q", kind))
	}
	return c, nil
}

// Repo provides schedule rule persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new rule repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type ruleRow struct {
	ID                uuid.UUID       `db:"id"`
	TemplateID        uuid.UUID       `db:"template_id"`
	CalendarEventType string          `db:"calendar_event_type"`
	OffsetDays        int             `db:"offset_days"`
	TimeOfDay         pgtype.Time     `db:"time_of_day"`
	TimeToLive        pgtype.Interval `db:"time_to_live"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}

// ---------------------------------------------------------------------------
// Rules
// ---------------------------------------------------------------------------

// ListByKind returns every rule of a kind ordered by event type, offset and
// time of day.
func (r *Repo) ListByKind(ctx context.Context, kind domain.RecordKind) ([]domain.ScheduleRule, error) {
	c, err := catalogFor(kind)
	if err != nil {
		return nil, err
	}

	query := postgres.Builder().
		Select(
			"id",
			c.templateCol+" AS template_id",
			"calendar_event_type", "offset_days", "time_of_day",
			c.ttlCol+" AS time_to_live",
			"created_at", "updated_at",
		).
		From(c.schedules).
		OrderBy("calendar_event_type", "offset_days", "time_of_day")

	var rows []ruleRow
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query); err != nil {
		return nil, postgres.MapError(err, "schedule rules", kind)
	}

	rules := make([]domain.ScheduleRule, len(rows))
	for i, row := range rows {
		rules[i] = domain.ScheduleRule{
			ID:                row.ID,
			Kind:              kind,
			TemplateID:        row.TemplateID,
			CalendarEventType: domain.CalendarEventType(row.CalendarEventType),
			OffsetDays:        row.OffsetDays,
			TimeOfDay:         domain.TimeOfDayFromDuration(time.Duration(row.TimeOfDay.Microseconds) * time.Microsecond),
			TimeToLive:        intervalDuration(row.TimeToLive),
			CreatedAt:         row.CreatedAt,
			UpdatedAt:         row.UpdatedAt,
		}
	}
	return rules, nil
}

// Create validates and inserts a rule. A zero TimeToLive takes the default
// of the rule kind.
func (r *Repo) Create(ctx context.Context, rule *domain.ScheduleRule) error {
	if rule.TimeToLive == 0 {
		rule.TimeToLive = domain.DefaultTimeToLive(rule.Kind)
	}
	if err := rule.Validate(); err != nil {
		return err
	}
	c, err := catalogFor(rule.Kind)
	if err != nil {
		return err
	}

	stmt := postgres.Builder().
		Insert(c.schedules).
		Columns("id", c.templateCol, "calendar_event_type", "offset_days", "time_of_day", c.ttlCol, "created_at", "updated_at").
		Values(
			rule.ID, rule.TemplateID, string(rule.CalendarEventType), rule.OffsetDays,
			pgtype.Time{Microseconds: rule.TimeOfDay.SinceMidnight().Microseconds(), Valid: true},
			pgtype.Interval{Microseconds: rule.TimeToLive.Microseconds(), Valid: true},
			rule.CreatedAt, rule.UpdatedAt,
		)

	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), stmt); err != nil {
		return postgres.MapError(err, "schedule rule", rule.Describe())
	}
	return nil
}

// ---------------------------------------------------------------------------
// Templates
// ---------------------------------------------------------------------------

// CreateTemplate inserts a notification type or survey template.
func (r *Repo) CreateTemplate(ctx context.Context, t *domain.Template) error {
	if err := t.Validate(); err != nil {
		return err
	}
	c, err := catalogFor(t.Kind)
	if err != nil {
		return err
	}

	stmt := postgres.Builder().Insert(c.templates)
	if t.Kind == domain.RecordKindSurvey {
		stmt = stmt.Columns("id", "code", "description", "survey_type").
			Values(t.ID, t.Code, t.Description, string(t.SurveyType))
	} else {
		stmt = stmt.Columns("id", "code", "description").
			Values(t.ID, t.Code, t.Description)
	}

	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), stmt); err != nil {
		return postgres.MapError(err, t.Kind.String()+" template", t.Code)
	}
	return nil
}

// GetTemplateByCode returns the template of a kind with the given code.
func (r *Repo) GetTemplateByCode(ctx context.Context, kind domain.RecordKind, code string) (*domain.Template, error) {
	c, err := catalogFor(kind)
	if err != nil {
		return nil, err
	}

	surveyType := "'' AS survey_type"
	if kind == domain.RecordKindSurvey {
		surveyType = "survey_type"
	}
	query := postgres.Builder().
		Select("id", "code", "description", surveyType).
		From(c.templates).
		Where(squirrel.Eq{"code": code})

	var row struct {
		ID          uuid.UUID `db:"id"`
		Code        string    `db:"code"`
		Description string    `db:"description"`
		SurveyType  string    `db:"survey_type"`
	}
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query); err != nil {
		return nil, postgres.MapError(err, kind.String()+" template", code)
	}

	return &domain.Template{
		ID:          row.ID,
		Kind:        kind,
		Code:        row.Code,
		Description: row.Description,
		SurveyType:  domain.SurveyType(row.SurveyType),
	}, nil
}

// intervalDuration flattens an INTERVAL, counting a month as 30 days.
func intervalDuration(iv pgtype.Interval) time.Duration {
	days := int64(iv.Days) + int64(iv.Months)*30
	return time.Duration(iv.Microseconds)*time.Microsecond + time.Duration(days)*24*time.Hour
}
