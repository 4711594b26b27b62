package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
)

func TestMapError_Nil(t *testing.T) {
	t.Parallel()

	assert.NoError(t, MapError(nil, "pregnancy", uuid.New()))
}

func TestMapError_NoRows(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	got := MapError(pgx.ErrNoRows, "pregnancy", id)

	require.ErrorIs(t, got, domain.ErrNotFound)
	assert.Equal(t, fmt.Sprintf("pregnancy %s: not found", id), got.Error())
}

func TestMapError_WrappedNoRows(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("scan row: %w", pgx.ErrNoRows)
	assert.ErrorIs(t, MapError(wrapped, "child", uuid.New()), domain.ErrNotFound)
}

func TestMapError_PgCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		code    string
		wantErr error
	}{
		{"unique_violation", "23505", domain.ErrAlreadyExists},
		{"foreign_key_violation", "23503", domain.ErrNotFound},
		{"check_violation", "23514", domain.ErrValidation},
		{"not_null_violation", "23502", domain.ErrValidation},
		{"serialization_failure", "40001", domain.ErrConflict},
		{"deadlock_detected", "40P01", domain.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := MapError(&pgconn.PgError{Code: tt.code}, "notification_event", uuid.New())
			assert.ErrorIs(t, got, tt.wantErr)

			wrapped := MapError(fmt.Errorf("insert row: %w", &pgconn.PgError{Code: tt.code}), "survey", uuid.New())
			assert.ErrorIs(t, wrapped, tt.wantErr)
		})
	}
}

func TestMapError_ContextErrorsPassThrough(t *testing.T) {
	t.Parallel()

	for _, ctxErr := range []error{context.DeadlineExceeded, context.Canceled} {
		got := MapError(ctxErr, "user", uuid.New())
		assert.ErrorIs(t, got, ctxErr)
		assert.NotErrorIs(t, got, domain.ErrNotFound)
	}
}

func TestMapError_UnknownError(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	original := errors.New("something unexpected")
	got := MapError(original, "vaccine", id)

	assert.ErrorIs(t, got, original)
	assert.Equal(t, fmt.Sprintf("vaccine %s: something unexpected", id), got.Error())
}

func TestMapError_UnknownPgError(t *testing.T) {
	t.Parallel()

	got := MapError(&pgconn.PgError{Code: "42P01", Message: "relation does not exist"}, "rule", uuid.New())

	var pgErr *pgconn.PgError
	assert.ErrorAs(t, got, &pgErr)
	assert.NotErrorIs(t, got, domain.ErrNotFound)
	assert.NotErrorIs(t, got, domain.ErrAlreadyExists)
	assert.NotErrorIs(t, got, domain.ErrValidation)
}

func TestMapError_NonUUIDKey(t *testing.T) {
	t.Parallel()

	got := MapError(pgx.ErrNoRows, "survey_template", "vaccination.have_you_visited")
	assert.Equal(t, "survey_template vaccination.have_you_visited: not found", got.Error())
}
