package calendar

import (
	"bytes"
	"cmp"
	"fmt"
	"iter"
	"slices"

	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
)

// VaccinationEvents groups the doses due for child into one event per date.
//
// Only doses of active vaccines applicable to the child's gender are used.
// Doses are ordered by (week age, vaccine id, dose id) and consecutive doses
// falling on the same date share one event. A child whose gender is neither
// MALE nor FEMALE is rejected with domain.ErrUnknownGender.
func VaccinationEvents(child domain.Child, doses []domain.VaccineDose) (iter.Seq[domain.CalendarEvent], error) {
	if !child.Gender.IsValid() {
		return nil, fmt.Errorf("child %s: %w: %q", child.ID, domain.ErrUnknownGender, child.Gender)
	}

	due := make([]domain.VaccineDose, 0, len(doses))
	for _, d := range doses {
		if !d.Vaccine.IsActive {
			continue
		}
		ok, err := d.Vaccine.AppliesTo(child.Gender)
		if err != nil {
			return nil, fmt.Errorf("child %s: %w", child.ID, err)
		}
		if ok {
			due = append(due, d)
		}
	}
	slices.SortStableFunc(due, compareDoses)

	return func(yield func(domain.CalendarEvent) bool) {
		birth := domain.DateOf(child.DateOfBirth)

		var current []domain.VaccineDose
		currentDate := birth
		for _, d := range due {
			date := domain.AddWeeks(birth, d.WeekAge)
			if len(current) > 0 && !date.Equal(currentDate) {
				if !yield(domain.VaccinationEvent{Child: child, VaccinationDate: currentDate, Doses: current}) {
					return
				}
				current = nil
			}
			current = append(current, d)
			currentDate = date
		}
		if len(current) > 0 {
			yield(domain.VaccinationEvent{Child: child, VaccinationDate: currentDate, Doses: current})
		}
	}, nil
}

func compareDoses(a, b domain.VaccineDose) int {
	if c := cmp.Compare(a.WeekAge, b.WeekAge); c != 0 {
		return c
	}
	if c := bytes.Compare(a.VaccineID[:], b.VaccineID[:]); c != 0 {
		return c
	}
	return bytes.Compare(a.ID[:], b.ID[:])
}
