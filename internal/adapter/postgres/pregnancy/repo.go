// Package pregnancy implements the pregnancy declaration store using PostgreSQL.
package pregnancy

import (
	"context"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/adapter/postgres"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
)

var columns = []string{
	"id", "user_id",
	"declared_pregnancy_week", "declared_date_of_last_menstrual_period", "declared_number_of_prenatal_visits",
	"estimated_start_date", "estimated_delivery_date",
	"created_at", "updated_at",
}

// Repo provides pregnancy persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new pregnancy repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type pregnancyRow struct {
	ID                                uuid.UUID  `db:"id"`
	UserID                            uuid.UUID  `db:"user_id"`
	DeclaredPregnancyWeek             *int       `db:"declared_pregnancy_week"`
	DeclaredDateOfLastMenstrualPeriod *time.Time `db:"declared_date_of_last_menstrual_period"`
	DeclaredNumberOfPrenatalVisits    *int       `db:"declared_number_of_prenatal_visits"`
	EstimatedStartDate                time.Time  `db:"estimated_start_date"`
	EstimatedDeliveryDate             time.Time  `db:"estimated_delivery_date"`
	CreatedAt                         time.Time  `db:"created_at"`
	UpdatedAt                         time.Time  `db:"updated_at"`
}

// Create inserts a pregnancy whose estimates are already filled and returns
// the stored row.
func (r *Repo) Create(ctx context.Context, p *domain.Pregnancy) (*domain.Pregnancy, error) {
	stmt := postgres.Builder().
		Insert("pregnancies").
		Columns(columns...).
		Values(
			p.ID, p.UserID,
			p.DeclaredPregnancyWeek, p.DeclaredDateOfLastMenstrualPeriod, p.DeclaredNumberOfPrenatalVisits,
			p.EstimatedStartDate, p.EstimatedDeliveryDate,
			p.CreatedAt, p.UpdatedAt,
		).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	var row pregnancyRow
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, stmt); err != nil {
		return nil, postgres.MapError(err, "pregnancy", p.ID)
	}

	created := toDomain(row)
	return &created, nil
}

// ListByUser returns every pregnancy of the user in declaration order.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Pregnancy, error) {
	query := postgres.Builder().
		Select(columns...).
		From("pregnancies").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at", "id")

	var rows []pregnancyRow
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query); err != nil {
		return nil, postgres.MapError(err, "pregnancies of user", userID)
	}

	out := make([]domain.Pregnancy, len(rows))
	for i, row := range rows {
		out[i] = toDomain(row)
	}
	return out, nil
}

// GetActive returns the latest pregnancy of the user due on today or later.
func (r *Repo) GetActive(ctx context.Context, userID uuid.UUID, today time.Time) (*domain.Pregnancy, error) {
	query := postgres.Builder().
		Select(columns...).
		From("pregnancies").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"estimated_delivery_date": domain.DateOf(today)}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1)

	var row pregnancyRow
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query); err != nil {
		return nil, postgres.MapError(err, "active pregnancy of user", userID)
	}

	p := toDomain(row)
	return &p, nil
}

func toDomain(row pregnancyRow) domain.Pregnancy {
	p := domain.Pregnancy{
		ID:                             row.ID,
		UserID:                         row.UserID,
		DeclaredPregnancyWeek:          row.DeclaredPregnancyWeek,
		DeclaredNumberOfPrenatalVisits: row.DeclaredNumberOfPrenatalVisits,
		EstimatedStartDate:             domain.DateOf(row.EstimatedStartDate),
		EstimatedDeliveryDate:          domain.DateOf(row.EstimatedDeliveryDate),
		CreatedAt:                      row.CreatedAt,
		UpdatedAt:                      row.UpdatedAt,
	}
	if row.DeclaredDateOfLastMenstrualPeriod != nil {
		lmp := domain.DateOf(*row.DeclaredDateOfLastMenstrualPeriod)
		p.DeclaredDateOfLastMenstrualPeriod = &lmp
	}
	return p
}
