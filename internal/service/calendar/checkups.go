package calendar

import (
	"iter"
	"math"
	"slices"
	"time"

	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
)

// MaxPregnancyWeeks closes the checkup timeline.
const MaxPregnancyWeeks = 42

// standardCheckupWeeks are the gestational weeks of recommended prenatal visits.
var standardCheckupWeeks = []int{10, 24, 34, 38}

// StandardCheckupWeeks returns a copy of the recommended checkup weeks.
func StandardCheckupWeeks() []int {
	return slices.Clone(standardCheckupWeeks)
}

// CheckupWeeks returns the ascending gestational weeks at which the pregnancy
// should have a prenatal checkup. Weeks are measured at declaration time
// (CreatedAt), not at the current time.
//
// A pregnancy declared at or after the last standard checkup gets a single
// visit the following week. Otherwise the remaining standard checkups are
// kept, and for every visit the user missed one catch-up visit is inserted
// halfway between consecutive points of [current week, remaining..., 42].
func CheckupWeeks(p domain.Pregnancy) []int {
	pregWeeks := weeksPregnantAt(p.EstimatedStartDate, p.CreatedAt)

	last := standardCheckupWeeks[len(standardCheckupWeeks)-1]
	if pregWeeks >= last {
		return []int{pregWeeks + 1}
	}

	// Index of the first standard week strictly after pregWeeks.
	completed := len(standardCheckupWeeks)
	for i, w := range standardCheckupWeeks {
		if w > pregWeeks {
			completed = i
			break
		}
	}

	result := slices.Clone(standardCheckupWeeks[completed:])
	deficit := completed - p.PrenatalVisits()

	timeline := make([]int, 0, len(result)+2)
	timeline = append(timeline, pregWeeks)
	timeline = append(timeline, result...)
	timeline = append(timeline, MaxPregnancyWeeks)

	for i := 0; i < deficit; i++ {
		if i+1 >= len(timeline) {
			break
		}
		result = append(result, floorDiv(timeline[i]+timeline[i+1], 2))
	}

	slices.Sort(result)
	return result
}

// PrenatalCheckupEvents yields one checkup event per checkup week, dated on
// the Monday of the week the checkup falls in.
func PrenatalCheckupEvents(p domain.Pregnancy) iter.Seq[domain.CalendarEvent] {
	return func(yield func(domain.CalendarEvent) bool) {
		start := domain.DateOf(p.EstimatedStartDate)
		for _, weeks := range CheckupWeeks(p) {
			event := domain.PrenatalCheckupEvent{
				PregnancyID:   p.ID,
				CheckupDate:   mondayOf(domain.AddWeeks(start, weeks)),
				WeeksPregnant: weeks,
			}
			if !yield(event) {
				return
			}
		}
	}
}

// weeksPregnantAt returns the number of started weeks between start and at.
func weeksPregnantAt(start, at time.Time) int {
	days := domain.DateOf(at).Sub(domain.DateOf(start)).Hours() / 24
	return int(math.Ceil(days / 7))
}

func mondayOf(d time.Time) time.Time {
	sinceMonday := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -sinceMonday)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
