package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// AverageWeeksPerMonth converts dose week ages into month ages.
const AverageWeeksPerMonth = 4.34524

// Vaccine is a vaccine catalog entry. Draft vaccines (IsActive=false) never
// reach a calendar.
type Vaccine struct {
	ID                  uuid.UUID
	Name                string
	Nickname            *string
	ApplicableForMale   bool
	ApplicableForFemale bool
	IsActive            bool
	CreatedAt           time.Time
}

// FriendlyName returns the nickname when set, the name otherwise.
func (v Vaccine) FriendlyName() string {
	if v.Nickname != nil {
		return *v.Nickname
	}
	return v.Name
}

// AppliesTo reports whether the vaccine is given to children of gender g.
func (v Vaccine) AppliesTo(g Gender) (bool, error) {
	switch g {
	case GenderMale:
		return v.ApplicableForMale, nil
	case GenderFemale:
		return v.ApplicableForFemale, nil
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownGender, g)
}

// VaccineDose is one dose of a vaccine, given WeekAge weeks after birth.
type VaccineDose struct {
	ID             uuid.UUID
	VaccineID      uuid.UUID
	Name           string
	WeekAge        int
	NotesForParent *string
	CreatedAt      time.Time
	Vaccine        Vaccine
}

// MonthAge returns the dose age in whole months.
func (d VaccineDose) MonthAge() int {
	return int(math.RoundToEven(float64(d.WeekAge) / AverageWeeksPerMonth))
}

// PastVaccination marks a vaccine as already given to a child.
type PastVaccination struct {
	ID        uuid.UUID
	ChildID   uuid.UUID
	VaccineID uuid.UUID
	CreatedAt time.Time
}
