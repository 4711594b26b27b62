package rule_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/adapter/postgres/rule"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/adapter/postgres/testhelper"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
)

func TestRepo_Integration_RoundTrip(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	ctx := context.Background()
	repo := rule.New(pool)

	tmpl := domain.Template{ID: uuid.New(), Kind: domain.RecordKindNotification, Code: "roundtrip-" + uuid.NewString()}
	require.NoError(t, repo.CreateTemplate(ctx, &tmpl))

	got, err := repo.GetTemplateByCode(ctx, domain.RecordKindNotification, tmpl.Code)
	require.NoError(t, err)
	assert.Equal(t, tmpl.ID, got.ID)

	offset := 2000 + int(uuid.New().ID()%1000)
	want := domain.ScheduleRule{
		ID:                uuid.New(),
		Kind:              domain.RecordKindNotification,
		TemplateID:        tmpl.ID,
		CalendarEventType: domain.CalendarEventTypeVaccination,
		OffsetDays:        offset,
		TimeOfDay:         domain.NewTimeOfDay(7, 45, 30),
		TimeToLive:        36*time.Hour + 15*time.Minute,
		CreatedAt:         time.Now().UTC().Truncate(time.Microsecond),
	}
	want.UpdatedAt = want.CreatedAt
	require.NoError(t, repo.Create(ctx, &want))

	dup := want
	dup.ID = uuid.New()
	assert.ErrorIs(t, repo.Create(ctx, &dup), domain.ErrAlreadyExists)

	rules, err := repo.ListByKind(ctx, domain.RecordKindNotification)
	require.NoError(t, err)

	var found *domain.ScheduleRule
	for i := range rules {
		if rules[i].ID == want.ID {
			found = &rules[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, want.TimeOfDay, found.TimeOfDay)
	assert.Equal(t, want.TimeToLive, found.TimeToLive)
	assert.Equal(t, offset, found.OffsetDays)
	assert.Equal(t, tmpl.ID, found.TemplateID)
}
