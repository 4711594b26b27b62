// Package user implements the user directory using PostgreSQL.
package user

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/adapter/postgres"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
)

// Repo provides user and profile persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type userRow struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	HasProfile   bool      `db:"has_profile"`
	Name         *string   `db:"name"`
	LanguageCode *string   `db:"language_code"`
	Timezone     *string   `db:"timezone"`
}

func selectUsers() squirrel.SelectBuilder {
	return postgres.Builder().
		Select(
			"u.id", "u.username", "u.is_active", "u.created_at",
			"p.user_id IS NOT NULL AS has_profile",
			"p.name", "p.language_code", "p.timezone",
		).
		From("users u").
		LeftJoin("user_profiles p ON p.user_id = u.id")
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// ListActive returns every active user with its profile, ordered by id.
func (r *Repo) ListActive(ctx context.Context) ([]domain.User, error) {
	query := selectUsers().
		Where(squirrel.Eq{"u.is_active": true}).
		OrderBy("u.id")

	var rows []userRow
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query); err != nil {
		return nil, postgres.MapError(err, "users", "active")
	}

	users := make([]domain.User, len(rows))
	for i, row := range rows {
		users[i] = toDomain(row)
	}
	return users, nil
}

// GetByID returns a user with its profile.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := selectUsers().Where(squirrel.Eq{"u.id": id})

	var row userRow
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query); err != nil {
		return nil, postgres.MapError(err, "user", id)
	}

	u := toDomain(row)
	return &u, nil
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

// Create inserts a user without a profile.
func (r *Repo) Create(ctx context.Context, u *domain.User) error {
	stmt := postgres.Builder().
		Insert("users").
		Columns("id", "username", "is_active", "created_at").
		Values(u.ID, u.Username, u.IsActive, u.CreatedAt)

	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), stmt); err != nil {
		return postgres.MapError(err, "user", u.ID)
	}
	return nil
}

// SaveProfile creates or replaces the profile of a user.
func (r *Repo) SaveProfile(ctx context.Context, p domain.UserProfile) error {
	stmt := postgres.Builder().
		Insert("user_profiles").
		Columns("user_id", "name", "language_code", "timezone").
		Values(p.UserID, p.Name, string(p.LanguageCode), p.Timezone).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET name = EXCLUDED.name, " +
			"language_code = EXCLUDED.language_code, timezone = EXCLUDED.timezone")

	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), stmt); err != nil {
		return postgres.MapError(err, "user_profile", p.UserID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mapping
// ---------------------------------------------------------------------------

func toDomain(row userRow) domain.User {
	u := domain.User{
		ID:        row.ID,
		Username:  row.Username,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt,
	}
	if !row.HasProfile {
		return u
	}

	p := domain.DefaultUserProfile(row.ID)
	if row.Name != nil {
		p.Name = *row.Name
	}
	if row.LanguageCode != nil {
		p.LanguageCode = domain.LanguageCode(*row.LanguageCode)
	}
	if row.Timezone != nil {
		p.Timezone = *row.Timezone
	}
	u.Profile = &p
	return u
}
