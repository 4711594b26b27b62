package pregnancy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
)

type pregnancyRepo interface {
	Create(ctx context.Context, p *domain.Pregnancy) (*domain.Pregnancy, error)
	GetActive(ctx context.Context, userID uuid.UUID, today time.Time) (*domain.Pregnancy, error)
}

// Service manages pregnancy declarations.
type Service struct {
	pregnancies pregnancyRepo
	log         *slog.Logger
	now         func() time.Time
}

// NewService creates a new pregnancy service.
func NewService(log *slog.Logger, pregnancies pregnancyRepo) *Service {
	return &Service{
		pregnancies: pregnancies,
		log:         log.With("service", "pregnancy"),
		now:         time.Now,
	}
}

// Declare validates and stores a new pregnancy declaration. The estimated
// start and delivery dates are computed once, from the declaration instant.
func (s *Service) Declare(ctx context.Context, userID uuid.UUID, input DeclareInput) (*domain.Pregnancy, error) {
	now := s.now().UTC()

	if err := input.Validate(now); err != nil {
		return nil, err
	}

	p := &domain.Pregnancy{
		ID:                                uuid.New(),
		UserID:                            userID,
		DeclaredPregnancyWeek:             input.Week,
		DeclaredDateOfLastMenstrualPeriod: input.LastMenstrualPeriod,
		DeclaredNumberOfPrenatalVisits:    input.PrenatalVisits,
		CreatedAt:                         now,
		UpdatedAt:                         now,
	}
	if p.DeclaredDateOfLastMenstrualPeriod != nil {
		lmp := domain.DateOf(*p.DeclaredDateOfLastMenstrualPeriod)
		p.DeclaredDateOfLastMenstrualPeriod = &lmp
	}

	if err := p.FillEstimates(now); err != nil {
		return nil, err
	}

	created, err := s.pregnancies.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create pregnancy: %w", err)
	}

	s.log.InfoContext(ctx, "pregnancy declared",
		slog.String("user_id", userID.String()),
		slog.String("pregnancy_id", created.ID.String()),
		slog.String("estimated_delivery_date", created.EstimatedDeliveryDate.Format(domain.DateLayout)),
	)

	return created, nil
}

// Active returns the user's latest pregnancy that is due today or later.
// Returns domain.ErrNotFound when there is none.
func (s *Service) Active(ctx context.Context, userID uuid.UUID) (*domain.Pregnancy, error) {
	p, err := s.pregnancies.GetActive(ctx, userID, domain.DateOf(s.now()))
	if err != nil {
		return nil, fmt.Errorf("get active pregnancy: %w", err)
	}
	return p, nil
}
