// Package record implements the generated notification and survey stores
// using PostgreSQL.
package record

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/adapter/postgres"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
)

type table struct {
	name        string
	templateCol string
}

var tables = map[domain.RecordKind]table{
	domain.RecordKindNotification: {name: "notification_events", templateCol: "notification_type_id"},
	domain.RecordKindSurvey:       {name: "surveys", templateCol: "survey_template_id"},
}

func tableFor(kind domain.RecordKind) (table, error) {
	t, ok := tables[kind]
	if !ok {
		return table{}, domain.NewValidationError("kind", fmt.Sprintf("unknown record kind %q", kind))
	}
	return t, nil
}

// Repo provides generated record persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new record repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type recordRow struct {
	ID          uuid.UUID         `db:"id"`
	UserID      uuid.UUID         `db:"user_id"`
	EventKey    string            `db:"event_key"`
	ScheduleID  *uuid.UUID        `db:"schedule_id"`
	TemplateID  uuid.UUID         `db:"template_id"`
	Context     map[string]string `db:"context"`
	AvailableAt time.Time         `db:"available_at"`
	ExpiresAt   time.Time         `db:"expires_at"`
	CreatedAt   time.Time         `db:"created_at"`
}

func (row recordRow) toDomain(kind domain.RecordKind) domain.GeneratedRecord {
	rec := domain.GeneratedRecord{
		ID:          row.ID,
		Kind:        kind,
		UserID:      row.UserID,
		EventKey:    row.EventKey,
		TemplateID:  row.TemplateID,
		Context:     row.Context,
		AvailableAt: row.AvailableAt,
		ExpiresAt:   row.ExpiresAt,
		CreatedAt:   row.CreatedAt,
	}
	if row.ScheduleID != nil {
		rec.ScheduleID = *row.ScheduleID
	}
	return rec
}

// ---------------------------------------------------------------------------
// Generated records
// ---------------------------------------------------------------------------

// Insert stores a generated record. A record with the same (event key,
// schedule) already stored yields ErrAlreadyExists and leaves the table
// unchanged.
func (r *Repo) Insert(ctx context.Context, rec *domain.GeneratedRecord) error {
	t, err := tableFor(rec.Kind)
	if err != nil {
		return err
	}

	recContext := rec.Context
	if recContext == nil {
		recContext = map[string]string{}
	}

	stmt := postgres.Builder().
		Insert(t.name).
		Columns("id", "user_id", "event_key", "schedule_id", t.templateCol, "context", "available_at", "expires_at", "created_at").
		Values(rec.ID, rec.UserID, rec.EventKey, rec.ScheduleID, rec.TemplateID, recContext, rec.AvailableAt, rec.ExpiresAt, rec.CreatedAt).
		Suffix("ON CONFLICT (event_key, schedule_id) DO NOTHING")

	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), stmt)
	if err != nil {
		return postgres.MapError(err, rec.Kind.String(), rec.EventKey)
	}
	if n == 0 {
		return fmt.Errorf("%s %s/%s: %w", rec.Kind, rec.EventKey, rec.ScheduleID, domain.ErrAlreadyExists)
	}
	return nil
}

// ListByUser returns the records of a user ordered by window.
func (r *Repo) ListByUser(ctx context.Context, kind domain.RecordKind, userID uuid.UUID) ([]domain.GeneratedRecord, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := postgres.Builder().
		Select(
			"id", "user_id", "event_key", "schedule_id",
			t.templateCol+" AS template_id",
			"context", "available_at", "expires_at", "created_at",
		).
		From(t.name).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("available_at", "expires_at", "id")

	var rows []recordRow
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query); err != nil {
		return nil, postgres.MapError(err, kind.String()+" records of user", userID)
	}

	records := make([]domain.GeneratedRecord, len(rows))
	for i, row := range rows {
		records[i] = row.toDomain(kind)
	}
	return records, nil
}

// CountByUser returns how many records of a kind the user has.
func (r *Repo) CountByUser(ctx context.Context, kind domain.RecordKind, userID uuid.UUID) (int, error) {
	t, err := tableFor(kind)
	if err != nil {
		return 0, err
	}

	query := postgres.Builder().
		Select("count(*)").
		From(t.name).
		Where(squirrel.Eq{"user_id": userID})

	var n int
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &n, query); err != nil {
		return 0, postgres.MapError(err, kind.String()+" records of user", userID)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Surveys
// ---------------------------------------------------------------------------

type surveyRow struct {
	recordRow
	TemplateCode string     `db:"template_code"`
	SurveyType   string     `db:"survey_type"`
	Response     *string    `db:"response"`
	RespondedAt  *time.Time `db:"responded_at"`
}

// GetSurvey returns a survey of the user with its template and response.
func (r *Repo) GetSurvey(ctx context.Context, userID, surveyID uuid.UUID) (*domain.Survey, error) {
	query := postgres.Builder().
		Select(
			"s.id", "s.user_id", "s.event_key", "s.schedule_id",
			"s.survey_template_id AS template_id",
			"s.context", "s.available_at", "s.expires_at", "s.created_at",
			"t.code AS template_code", "t.survey_type",
			"s.response", "s.responded_at",
		).
		From("surveys s").
		Join("survey_templates t ON t.id = s.survey_template_id").
		Where(squirrel.Eq{"s.id": surveyID, "s.user_id": userID})

	var row surveyRow
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query); err != nil {
		return nil, postgres.MapError(err, "survey", surveyID)
	}

	return &domain.Survey{
		GeneratedRecord: row.toDomain(domain.RecordKindSurvey),
		TemplateCode:    row.TemplateCode,
		SurveyType:      domain.SurveyType(row.SurveyType),
		Response:        row.Response,
		RespondedAt:     row.RespondedAt,
	}, nil
}

// SetSurveyResponse stores the response of a survey of the user.
func (r *Repo) SetSurveyResponse(ctx context.Context, userID, surveyID uuid.UUID, response string, at time.Time) error {
	stmt := postgres.Builder().
		Update("surveys").
		Set("response", response).
		Set("responded_at", at).
		Where(squirrel.Eq{"id": surveyID, "user_id": userID})

	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), stmt)
	if err != nil {
		return postgres.MapError(err, "survey", surveyID)
	}
	if n == 0 {
		return fmt.Errorf("survey %s: %w", surveyID, domain.ErrNotFound)
	}
	return nil
}
