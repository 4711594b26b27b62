// Package vaccine implements the vaccine catalog and vaccination history
// using PostgreSQL.
package vaccine

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/adapter/postgres"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
)

// Repo provides vaccine persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new vaccine repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// doseRow is a dose joined with its vaccine.
type doseRow struct {
	ID                         uuid.UUID `db:"id"`
	VaccineID                  uuid.UUID `db:"vaccine_id"`
	Name                       string    `db:"name"`
	WeekAge                    int       `db:"week_age"`
	NotesForParent             *string   `db:"notes_for_parent"`
	CreatedAt                  time.Time `db:"created_at"`
	VaccineName                string    `db:"vaccine_name"`
	VaccineNickname            *string   `db:"vaccine_nickname"`
	VaccineApplicableForMale   bool      `db:"vaccine_applicable_for_male"`
	VaccineApplicableForFemale bool      `db:"vaccine_applicable_for_female"`
	VaccineIsActive            bool      `db:"vaccine_is_active"`
	VaccineCreatedAt           time.Time `db:"vaccine_created_at"`
}

func selectDoses() squirrel.SelectBuilder {
	return postgres.Builder().
		Select(
			"d.id", "d.vaccine_id", "d.name", "d.week_age", "d.notes_for_parent", "d.created_at",
			"v.name AS vaccine_name",
			"v.nickname AS vaccine_nickname",
			"v.applicable_for_male AS vaccine_applicable_for_male",
			"v.applicable_for_female AS vaccine_applicable_for_female",
			"v.is_active AS vaccine_is_active",
			"v.created_at AS vaccine_created_at",
		).
		From("vaccine_doses d").
		Join("vaccines v ON v.id = d.vaccine_id")
}

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

// CreateVaccine inserts a vaccine catalog entry.
func (r *Repo) CreateVaccine(ctx context.Context, v *domain.Vaccine) error {
	stmt := postgres.Builder().
		Insert("vaccines").
		Columns("id", "name", "nickname", "applicable_for_male", "applicable_for_female", "is_active", "created_at").
		Values(v.ID, v.Name, v.Nickname, v.ApplicableForMale, v.ApplicableForFemale, v.IsActive, v.CreatedAt)

	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), stmt); err != nil {
		return postgres.MapError(err, "vaccine", v.Name)
	}
	return nil
}

// CreateDose inserts a dose of an existing vaccine.
func (r *Repo) CreateDose(ctx context.Context, d *domain.VaccineDose) error {
	if d.WeekAge < 0 {
		return domain.NewValidationError("week_age", "must not be negative")
	}

	stmt := postgres.Builder().
		Insert("vaccine_doses").
		Columns("id", "vaccine_id", "name", "week_age", "notes_for_parent", "created_at").
		Values(d.ID, d.VaccineID, d.Name, d.WeekAge, d.NotesForParent, d.CreatedAt)

	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), stmt); err != nil {
		return postgres.MapError(err, "vaccine dose", d.Name)
	}
	return nil
}

// ListActiveDoses returns the doses of every active vaccine, ordered by week
// age, then vaccine and dose id.
func (r *Repo) ListActiveDoses(ctx context.Context) ([]domain.VaccineDose, error) {
	query := selectDoses().
		Where(squirrel.Eq{"v.is_active": true}).
		OrderBy("d.week_age", "d.vaccine_id", "d.id")

	var rows []doseRow
	if err := postgres.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query); err != nil {
		return nil, postgres.MapError(err, "vaccine doses", "active")
	}

	doses := make([]domain.VaccineDose, len(rows))
	for i, row := range rows {
		doses[i] = toDomain(row)
	}
	return doses, nil
}

// GetDose returns a dose with its vaccine.
func (r *Repo) GetDose(ctx context.Context, doseID uuid.UUID) (*domain.VaccineDose, error) {
	query := selectDoses().Where(squirrel.Eq{"d.id": doseID})

	var row doseRow
	if err := postgres.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query); err != nil {
		return nil, postgres.MapError(err, "vaccine dose", doseID)
	}

	d := toDomain(row)
	return &d, nil
}

// ---------------------------------------------------------------------------
// History
// ---------------------------------------------------------------------------

// CreatePastVaccination records that a vaccine was given to a child.
// A second record for the same (child, vaccine) returns ErrAlreadyExists.
func (r *Repo) CreatePastVaccination(ctx context.Context, pv *domain.PastVaccination) error {
	stmt := postgres.Builder().
		Insert("past_vaccinations").
		Columns("id", "child_id", "vaccine_id", "created_at").
		Values(pv.ID, pv.ChildID, pv.VaccineID, pv.CreatedAt).
		Suffix("ON CONFLICT (child_id, vaccine_id) DO NOTHING")

	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), stmt)
	if err != nil {
		return postgres.MapError(err, "past vaccination", pv.ChildID)
	}
	if n == 0 {
		return fmt.Errorf("past vaccination %s/%s: %w", pv.ChildID, pv.VaccineID, domain.ErrAlreadyExists)
	}
	return nil
}

func toDomain(row doseRow) domain.VaccineDose {
	return domain.VaccineDose{
		ID:             row.ID,
		VaccineID:      row.VaccineID,
		Name:           row.Name,
		WeekAge:        row.WeekAge,
		NotesForParent: row.NotesForParent,
		CreatedAt:      row.CreatedAt,
		Vaccine: domain.Vaccine{
			ID:                  row.VaccineID,
			Name:                row.VaccineName,
			Nickname:            row.VaccineNickname,
			ApplicableForMale:   row.VaccineApplicableForMale,
			ApplicableForFemale: row.VaccineApplicableForFemale,
			IsActive:            row.VaccineIsActive,
			CreatedAt:           row.VaccineCreatedAt,
		},
	}
}
