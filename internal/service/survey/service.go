package survey

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
)

type surveyRepo interface {
	GetSurvey(ctx context.Context, userID, surveyID uuid.UUID) (*domain.Survey, error)
	SetSurveyResponse(ctx context.Context, userID, surveyID uuid.UUID, response string, at time.Time) error
}

type vaccineRepo interface {
	GetDose(ctx context.Context, doseID uuid.UUID) (*domain.VaccineDose, error)
	CreatePastVaccination(ctx context.Context, pv *domain.PastVaccination) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service records survey responses and applies their follow-up effects.
type Service struct {
	surveys  surveyRepo
	vaccines vaccineRepo
	tx       txManager
	log      *slog.Logger
	now      func() time.Time
}

// NewService creates a new survey service.
func NewService(log *slog.Logger, surveys surveyRepo, vaccines vaccineRepo, tx txManager) *Service {
	return &Service{
		surveys:  surveys,
		vaccines: vaccines,
		tx:       tx,
		log:      log.With("service", "survey"),
		now:      time.Now,
	}
}

// Respond stores the user's response to a survey. A "yes" to the
// vaccination visit survey marks every vaccine of the surveyed doses as
// given to the child. Both happen in one transaction.
func (s *Service) Respond(ctx context.Context, userID, surveyID uuid.UUID, response string) (*domain.Survey, error) {
	response = strings.TrimSpace(response)
	if response == "" {
		return nil, domain.NewValidationError("response", "required")
	}

	var answered *domain.Survey
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		sv, err := s.surveys.GetSurvey(txCtx, userID, surveyID)
		if err != nil {
			return fmt.Errorf("get survey: %w", err)
		}
		if sv.IsAnswered() {
			return fmt.Errorf("survey %s: %w", surveyID, domain.ErrConflict)
		}

		now := s.now().UTC()
		if err := s.surveys.SetSurveyResponse(txCtx, userID, surveyID, response, now); err != nil {
			return fmt.Errorf("set survey response: %w", err)
		}
		sv.Response = &response
		sv.RespondedAt = &now

		if sv.TemplateCode == domain.SurveyCodeVaccinationHaveYouVisited && response == domain.SurveyResponseYes {
			if err := s.recordVaccinations(txCtx, sv, now); err != nil {
				return err
			}
		}

		answered = sv
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "survey answered",
		slog.String("user_id", userID.String()),
		slog.String("survey_id", surveyID.String()),
		slog.String("template", answered.TemplateCode),
	)
	return answered, nil
}

func (s *Service) recordVaccinations(ctx context.Context, sv *domain.Survey, now time.Time) error {
	childID, doseIDs, err := vaccinationSubject(sv.Context)
	if err != nil {
		return err
	}

	for _, doseID := range doseIDs {
		dose, err := s.vaccines.GetDose(ctx, doseID)
		if err != nil {
			return fmt.Errorf("get dose %s: %w", doseID, err)
		}

		err = s.vaccines.CreatePastVaccination(ctx, &domain.PastVaccination{
			ID:        uuid.New(),
			ChildID:   childID,
			VaccineID: dose.VaccineID,
			CreatedAt: now,
		})
		if err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
			return fmt.Errorf("create past vaccination: %w", err)
		}
	}
	return nil
}

// vaccinationSubject reads the child and dose ids from a vaccination event context.
func vaccinationSubject(ctx map[string]string) (uuid.UUID, []uuid.UUID, error) {
	childID, err := uuid.Parse(ctx[domain.ContextKeyChildID])
	if err != nil {
		return uuid.Nil, nil, domain.NewValidationError("context."+domain.ContextKeyChildID, "invalid id")
	}

	raw := strings.TrimSpace(ctx[domain.ContextKeyDoseIDs])
	if raw == "" {
		return uuid.Nil, nil, domain.NewValidationError("context."+domain.ContextKeyDoseIDs, "required")
	}

	parts := strings.Split(raw, ",")
	doseIDs := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		id, err := uuid.Parse(strings.TrimSpace(p))
		if err != nil {
			return uuid.Nil, nil, domain.NewValidationError("context."+domain.ContextKeyDoseIDs, "invalid id")
		}
		doseIDs = append(doseIDs, id)
	}
	return childID, doseIDs, nil
}
