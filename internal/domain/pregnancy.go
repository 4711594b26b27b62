package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxDeclaredPregnancyWeek is the highest gestational week a user may declare.
	MaxDeclaredPregnancyWeek = 42
	// MaxDeclaredPrenatalVisits is the highest number of completed visits a user may declare.
	MaxDeclaredPrenatalVisits = 4
	// PregnancyTermWeeks is the nominal length of a pregnancy.
	PregnancyTermWeeks = 40
)

// Pregnancy is a user's pregnancy declaration. Exactly one of
// DeclaredPregnancyWeek and DeclaredDateOfLastMenstrualPeriod is set.
// The estimated dates are computed once, at declaration time.
type Pregnancy struct {
	ID                                uuid.UUID
	UserID                            uuid.UUID
	DeclaredPregnancyWeek             *int
	DeclaredDateOfLastMenstrualPeriod *time.Time
	DeclaredNumberOfPrenatalVisits    *int
	EstimatedStartDate                time.Time
	EstimatedDeliveryDate             time.Time
	CreatedAt                         time.Time
	UpdatedAt                         time.Time
}

// PrenatalVisits returns the declared number of completed visits, 0 when undeclared.
func (p Pregnancy) PrenatalVisits() int {
	if p.DeclaredNumberOfPrenatalVisits == nil {
		return 0
	}
	return *p.DeclaredNumberOfPrenatalVisits
}

// HasEstimates reports whether both estimated dates are already stored.
func (p Pregnancy) HasEstimates() bool {
	return !p.EstimatedStartDate.IsZero() && !p.EstimatedDeliveryDate.IsZero()
}

// FillEstimates computes EstimatedStartDate and EstimatedDeliveryDate from the
// declaration. now is the declaration instant. Stored estimates are kept as is.
func (p *Pregnancy) FillEstimates(now time.Time) error {
	if p.DeclaredPregnancyWeek == nil && p.DeclaredDateOfLastMenstrualPeriod == nil {
		return NewValidationError("declared_pregnancy_week",
			"either declared_date_of_last_menstrual_period or declared_pregnancy_week is required")
	}
	if p.HasEstimates() {
		return nil
	}

	var start time.Time
	if p.DeclaredPregnancyWeek != nil {
		s, err := StartDateFromWeek(*p.DeclaredPregnancyWeek, now)
		if err != nil {
			return err
		}
		start = s
	} else {
		start = StartDateFromLMP(*p.DeclaredDateOfLastMenstrualPeriod)
	}

	p.EstimatedStartDate = start
	p.EstimatedDeliveryDate = DeliveryDateFromStart(start, now)
	return nil
}

// IsActive reports whether the pregnancy is due today or later.
func (p Pregnancy) IsActive(now time.Time) bool {
	return !p.EstimatedDeliveryDate.Before(DateOf(now))
}

// ---------------------------------------------------------------------------
// Date math
// ---------------------------------------------------------------------------

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddWeeks shifts a calendar date by n weeks.
func AddWeeks(date time.Time, n int) time.Time {
	return date.AddDate(0, 0, 7*n)
}

// StartDateFromWeek returns the pregnancy start date for a user who is week
// weeks pregnant at now. Weeks outside [0, 43) are rejected.
func StartDateFromWeek(week int, now time.Time) (time.Time, error) {
	if week < 0 || week > MaxDeclaredPregnancyWeek {
		return time.Time{}, fmt.Errorf("%w: %d", ErrInvalidPregnancyWeek, week)
	}
	return AddWeeks(DateOf(now), -week), nil
}

// StartDateFromLMP returns the pregnancy start date for a declared date of
// last menstrual period, which is that date itself.
func StartDateFromLMP(lmp time.Time) time.Time {
	return DateOf(lmp)
}

// DeliveryDateFromStart returns start + 40 weeks. When that date is today or
// earlier, the due date is unknown and projected one week past now.
func DeliveryDateFromStart(start, now time.Time) time.Time {
	due := AddWeeks(DateOf(start), PregnancyTermWeeks)
	today := DateOf(now)
	if !due.After(today) {
		return AddWeeks(today, 1)
	}
	return due
}
