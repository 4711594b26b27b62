package calendar

import (
	"context"
	"fmt"
	"iter"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
)

type pregnancyRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Pregnancy, error)
}

type childRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Child, error)
}

type vaccineRepo interface {
	ListActiveDoses(ctx context.Context) ([]domain.VaccineDose, error)
}

// Service derives user calendars from pregnancy, child and vaccine state.
type Service struct {
	pregnancies pregnancyRepo
	children    childRepo
	vaccines    vaccineRepo
	log         *slog.Logger
}

// NewService creates a new calendar service.
func NewService(
	log *slog.Logger,
	pregnancies pregnancyRepo,
	children childRepo,
	vaccines vaccineRepo,
) *Service {
	return &Service{
		pregnancies: pregnancies,
		children:    children,
		vaccines:    vaccines,
		log:         log.With("service", "calendar"),
	}
}

// DeriveCalendarEvents returns every calendar event of the user in ascending
// date order: prenatal checkups for each pregnancy and vaccinations for each
// child. Declarations are read once per call; the returned sequence can be
// ranged over repeatedly and recomputes the events each time.
func (s *Service) DeriveCalendarEvents(ctx context.Context, userID uuid.UUID) (iter.Seq[domain.CalendarEvent], error) {
	pregnancies, err := s.pregnancies.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list pregnancies: %w", err)
	}

	children, err := s.children.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}

	var doses []domain.VaccineDose
	if len(children) > 0 {
		doses, err = s.vaccines.ListActiveDoses(ctx)
		if err != nil {
			return nil, fmt.Errorf("list vaccine doses: %w", err)
		}
	}

	streams := make([]iter.Seq[domain.CalendarEvent], 0, len(pregnancies)+len(children))
	for _, p := range pregnancies {
		streams = append(streams, PrenatalCheckupEvents(p))
	}
	for _, c := range children {
		events, err := VaccinationEvents(c, doses)
		if err != nil {
			return nil, err
		}
		streams = append(streams, events)
	}

	s.log.DebugContext(ctx, "calendar derived",
		slog.String("user_id", userID.String()),
		slog.Int("pregnancies", len(pregnancies)),
		slog.Int("children", len(children)),
		slog.Int("doses", len(doses)),
	)

	return MergeEvents(streams...), nil
}
