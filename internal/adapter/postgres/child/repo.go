// Package child implements the child registry using PostgreSQL.
package child

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/adapter/postgres"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
)

var columns = []string{"id", "user_id", "name", "date_of_birth", "gender", "created_at"}

// Repo provides child persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new child repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type childRow struct {
	ID          uuid.UUID `db:"id"`
	UserID      uuid.UUID `db:"user_id"`
	Name        string    `db:"name"`
	DateOfBirth time.Time `db:"date_of_birth"`
	Gender      string    `db:"gender"`
	CreatedAt   time.Time `db:"created_at"`
}

// Create inserts a child.
func (r *Repo) Create(ctx context.Context, c *domain.Child) error {
	if !c.Gender.IsValid() {
		return domain.NewValidationError("gender", "must be MALE or FEMALE")
	}

	stmt := postgres.Builder().
		Insert("children").
		Columns(columns...).
		Values(c.ID, c.UserID, c.Name, domain.DateOf(c.DateOfBirth), string(c.Gender), c.CreatedAt)

	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), stmt); err != nil {
		return postgres.MapError(err, "child", c.ID)
	}
	return nil
}

// ListByUser returns the children of a user in registration order.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Child, error) {
	query := postgres.Builder().
		Select(columns...).
		From("children").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at", "id")

	var rows []childRow
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query); err != nil {
		return nil, postgres.MapError(err, "children of user", userID)
	}

	children := make([]domain.Child, len(rows))
	for i, row := range rows {
		children[i] = domain.Child{
			ID:          row.ID,
			UserID:      row.UserID,
			Name:        row.Name,
			DateOfBirth: domain.DateOf(row.DateOfBirth),
			Gender:      domain.Gender(row.Gender),
			CreatedAt:   row.CreatedAt,
		}
	}
	return children, nil
}
