package pregnancy

import (
	"fmt"
	"time"

	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
)

// DeclareInput holds the parameters for declaring a pregnancy. Exactly one of
// Week and LastMenstrualPeriod must be set.
type DeclareInput struct {
	Week                *int
	LastMenstrualPeriod *time.Time
	PrenatalVisits      *int
}

// Validate checks all fields against now and collects all errors.
func (i *DeclareInput) Validate(now time.Time) error {
	var errs []domain.FieldError

	switch {
	case i.Week == nil && i.LastMenstrualPeriod == nil:
		errs = append(errs, domain.FieldError{
			Field:   "declared_pregnancy_week",
			Message: "either declared_date_of_last_menstrual_period or declared_pregnancy_week is required",
		})
	case i.Week != nil && i.LastMenstrualPeriod != nil:
		errs = append(errs, domain.FieldError{
			Field:   "declared_pregnancy_week",
			Message: "only one of declared_date_of_last_menstrual_period and declared_pregnancy_week may be set",
		})
	}

	if i.Week != nil && (*i.Week < 0 || *i.Week > domain.MaxDeclaredPregnancyWeek) {
		errs = append(errs, domain.FieldError{
			Field:   "declared_pregnancy_week",
			Message: fmt.Sprintf("must be between 0 and %d", domain.MaxDeclaredPregnancyWeek),
		})
	}
	if i.LastMenstrualPeriod != nil && domain.DateOf(*i.LastMenstrualPeriod).After(domain.DateOf(now)) {
		errs = append(errs, domain.FieldError{
			Field:   "declared_date_of_last_menstrual_period",
			Message: "must not be in the future",
		})
	}
	if i.PrenatalVisits != nil && (*i.PrenatalVisits < 0 || *i.PrenatalVisits > domain.MaxDeclaredPrenatalVisits) {
		errs = append(errs, domain.FieldError{
			Field:   "declared_number_of_prenatal_visits",
			Message: fmt.Sprintf("must be between 0 and %d", domain.MaxDeclaredPrenatalVisits),
		})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
