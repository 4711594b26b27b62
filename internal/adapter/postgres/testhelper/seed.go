package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// SeedUser creates an active user with a profile in the given timezone.
// An empty timezone seeds a user without a profile.
func SeedUser(t *testing.T, pool *pgxpool.Pool, timezone string) domain.User {
	t.Helper()
	ctx := context.Background()

	user := domain.User{
		ID:        uuid.New(),
		Username:  "mother-" + uniqueSuffix(),
		IsActive:  true,
		CreatedAt: now(),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, username, is_active, created_at) VALUES ($1, $2, $3, $4)`,
		user.ID, user.Username, user.IsActive, user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	if timezone == "" {
		return user
	}

	profile := domain.DefaultUserProfile(user.ID)
	profile.Name = "Mother " + user.Username
	profile.Timezone = timezone

	_, err = pool.Exec(ctx,
		`INSERT INTO user_profiles (user_id, name, language_code, timezone) VALUES ($1, $2, $3, $4)`,
		profile.UserID, profile.Name, string(profile.LanguageCode), profile.Timezone,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user_profile: %v", err)
	}

	user.Profile = &profile
	return user
}

// SeedChild creates a child of the user.
func SeedChild(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, dateOfBirth time.Time, gender domain.Gender) domain.Child {
	t.Helper()

	child := domain.Child{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        "Child " + uniqueSuffix(),
		DateOfBirth: domain.DateOf(dateOfBirth),
		Gender:      gender,
		CreatedAt:   now(),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO children (id, user_id, name, date_of_birth, gender, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		child.ID, child.UserID, child.Name, child.DateOfBirth, string(child.Gender), child.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedChild: %v", err)
	}
	return child
}

// SeedVaccine creates an active vaccine applicable to both genders, with one
// dose per week age.
func SeedVaccine(t *testing.T, pool *pgxpool.Pool, weekAges ...int) (domain.Vaccine, []domain.VaccineDose) {
	t.Helper()
	ctx := context.Background()

	vaccine := domain.Vaccine{
		ID:                  uuid.New(),
		Name:                "Vaccine " + uniqueSuffix(),
		ApplicableForMale:   true,
		ApplicableForFemale: true,
		IsActive:            true,
		CreatedAt:           now(),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO vaccines (id, name, applicable_for_male, applicable_for_female, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		vaccine.ID, vaccine.Name, vaccine.ApplicableForMale, vaccine.ApplicableForFemale, vaccine.IsActive, vaccine.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedVaccine insert vaccine: %v", err)
	}

	doses := make([]domain.VaccineDose, len(weekAges))
	for i, week := range weekAges {
		doses[i] = domain.VaccineDose{
			ID:        uuid.New(),
			VaccineID: vaccine.ID,
			Name:      vaccine.Name + " dose",
			WeekAge:   week,
			CreatedAt: now(),
			Vaccine:   vaccine,
		}
		_, err := pool.Exec(ctx,
			`INSERT INTO vaccine_doses (id, vaccine_id, name, week_age, created_at) VALUES ($1, $2, $3, $4, $5)`,
			doses[i].ID, doses[i].VaccineID, doses[i].Name, doses[i].WeekAge, doses[i].CreatedAt,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedVaccine insert dose[%d]: %v", i, err)
		}
	}

	return vaccine, doses
}

// SeedTemplate returns the notification type or survey template with the
// given code, creating it on first use.
func SeedTemplate(t *testing.T, pool *pgxpool.Pool, kind domain.RecordKind, code string) domain.Template {
	t.Helper()

	tmpl := domain.Template{ID: uuid.New(), Kind: kind, Code: code}

	var err error
	if kind == domain.RecordKindSurvey {
		tmpl.SurveyType = domain.SurveyTypeMultipleChoice
		err = pool.QueryRow(context.Background(),
			`INSERT INTO survey_templates (id, code, survey_type) VALUES ($1, $2, $3)
			 ON CONFLICT (code) DO UPDATE SET code = EXCLUDED.code
			 RETURNING id`,
			tmpl.ID, tmpl.Code, string(tmpl.SurveyType),
		).Scan(&tmpl.ID)
	} else {
		err = pool.QueryRow(context.Background(),
			`INSERT INTO notification_types (id, code) VALUES ($1, $2)
			 ON CONFLICT (code) DO UPDATE SET code = EXCLUDED.code
			 RETURNING id`,
			tmpl.ID, tmpl.Code,
		).Scan(&tmpl.ID)
	}
	if err != nil {
		t.Fatalf("testhelper: SeedTemplate: %v", err)
	}
	return tmpl
}
