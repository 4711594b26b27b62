package schedule

import (
	"iter"
	"maps"
	"slices"
	"time"

	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
)

// GenerateRecordsForEvent applies rules to a single calendar event of the
// user. A record is yielded for every rule of the event's type whose window
// contains now, or for every such rule when forceCreate is set. Rules for
// other event types are skipped. Windows are anchored to the user's timezone,
// or to the service default location when the user has none. Records are
// yielded ordered by (AvailableAt, ExpiresAt).
func (s *Service) GenerateRecordsForEvent(
	user domain.User,
	rules []domain.ScheduleRule,
	event domain.CalendarEvent,
	now time.Time,
	forceCreate bool,
) iter.Seq[domain.GeneratedRecord] {
	return recordsForEvent(user, s.location(user), rules, event, now, forceCreate)
}

func recordsForEvent(
	user domain.User,
	loc *time.Location,
	rules []domain.ScheduleRule,
	event domain.CalendarEvent,
	now time.Time,
	forceCreate bool,
) iter.Seq[domain.GeneratedRecord] {
	return func(yield func(domain.GeneratedRecord) bool) {
		var (
			records  []domain.GeneratedRecord
			snapshot map[string]string
		)
		key := event.EventKey()

		for _, rule := range rules {
			if !rule.Matches(event.Type()) {
				continue
			}

			availableAt, expiresAt := rule.Window(event.Date(), loc)
			if !forceCreate && (now.Before(availableAt) || now.After(expiresAt)) {
				continue
			}

			if snapshot == nil {
				snapshot = event.Context()
			}

			records = append(records, domain.GeneratedRecord{
				Kind:        rule.Kind,
				UserID:      user.ID,
				EventKey:    key,
				ScheduleID:  rule.ID,
				TemplateID:  rule.TemplateID,
				Context:     maps.Clone(snapshot),
				AvailableAt: availableAt,
				ExpiresAt:   expiresAt,
			})
		}

		slices.SortStableFunc(records, compareWindows)

		for _, rec := range records {
			if !yield(rec) {
				return
			}
		}
	}
}
