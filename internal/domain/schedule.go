package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Time-to-live bounds per rule kind.
const (
	DefaultNotificationTTL = 24 * time.Hour
	MinNotificationTTL     = 5 * time.Minute
	DefaultSurveyTTL       = 7 * 24 * time.Hour
	MinSurveyTTL           = time.Hour
)

// DefaultTimeToLive returns the TTL applied when a rule does not set one.
func DefaultTimeToLive(kind RecordKind) time.Duration {
	if kind == RecordKindSurvey {
		return DefaultSurveyTTL
	}
	return DefaultNotificationTTL
}

// MinTimeToLive returns the smallest TTL accepted for a rule kind.
func MinTimeToLive(kind RecordKind) time.Duration {
	if kind == RecordKindSurvey {
		return MinSurveyTTL
	}
	return MinNotificationTTL
}

// ---------------------------------------------------------------------------
// TimeOfDay
// ---------------------------------------------------------------------------

// TimeOfDay is a wall-clock time without date or zone.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// NewTimeOfDay builds a TimeOfDay; callers pass in-range values.
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay{Hour: hour, Minute: minute, Second: second}
}

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return TimeOfDay{}, fmt.Errorf("time of day %q: want HH:MM[:SS]", s)
	}

	vals := [3]int{}
	limits := [3]int{24, 60, 60}
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return TimeOfDay{}, fmt.Errorf("time of day %q: %w", s, err)
		}
		if v < 0 || v >= limits[i] {
			return TimeOfDay{}, fmt.Errorf("time of day %q: component %d out of range", s, v)
		}
		vals[i] = v
	}

	return NewTimeOfDay(vals[0], vals[1], vals[2]), nil
}

// TimeOfDayFromDuration converts an offset since midnight into a TimeOfDay.
func TimeOfDayFromDuration(d time.Duration) TimeOfDay {
	total := int(d / time.Second)
	return NewTimeOfDay(total/3600, total%3600/60, total%60)
}

// SinceMidnight returns the offset of t from midnight.
func (t TimeOfDay) SinceMidnight() time.Duration {
	return time.Duration(t.Hour)*time.Hour + time.Duration(t.Minute)*time.Minute + time.Duration(t.Second)*time.Second
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// ---------------------------------------------------------------------------
// ScheduleRule
// ---------------------------------------------------------------------------

// ScheduleRule is an admin-defined rule that turns a calendar event into a
// notification or survey, OffsetDays days from the event at TimeOfDay in the
// user's timezone. (CalendarEventType, OffsetDays, TimeOfDay) is unique per kind.
type ScheduleRule struct {
	ID   uuid.UUID
	Kind RecordKind
	// TemplateID references the notification type or survey template.
	TemplateID        uuid.UUID
	CalendarEventType CalendarEventType
	OffsetDays        int
	TimeOfDay         TimeOfDay
	TimeToLive        time.Duration
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Window returns the [availableAt, expiresAt] interval of the rule for an
// event on eventDate, anchored to loc.
func (r ScheduleRule) Window(eventDate time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := eventDate.Date()
	availableAt := time.Date(y, m, d+r.OffsetDays, r.TimeOfDay.Hour, r.TimeOfDay.Minute, r.TimeOfDay.Second, 0, loc)
	return availableAt, availableAt.Add(r.TimeToLive)
}

// Matches reports whether the rule applies to events of type t.
func (r ScheduleRule) Matches(t CalendarEventType) bool {
	return r.CalendarEventType == t
}

// Validate checks the rule against the constraints of its kind.
func (r ScheduleRule) Validate() error {
	var errs []FieldError

	if !r.Kind.IsValid() {
		errs = append(errs, FieldError{Field: "kind", Message: "unknown rule kind"})
	}
	if !r.CalendarEventType.IsValid() {
		errs = append(errs, FieldError{Field: "calendar_event_type", Message: "unknown calendar event type"})
	}
	if r.TemplateID == uuid.Nil {
		errs = append(errs, FieldError{Field: "template_id", Message: "required"})
	}
	if r.TimeOfDay.Hour < 0 || r.TimeOfDay.Hour > 23 || r.TimeOfDay.Minute < 0 || r.TimeOfDay.Minute > 59 ||
		r.TimeOfDay.Second < 0 || r.TimeOfDay.Second > 59 {
		errs = append(errs, FieldError{Field: "time_of_day", Message: "out of range"})
	}
	if r.Kind.IsValid() && r.TimeToLive < MinTimeToLive(r.Kind) {
		errs = append(errs, FieldError{
			Field:   "time_to_live",
			Message: fmt.Sprintf("must be at least %s", MinTimeToLive(r.Kind)),
		})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// Describe renders the rule for logs and admin listings.
func (r ScheduleRule) Describe() string {
	switch {
	case r.OffsetDays < 0:
		return fmt.Sprintf("%d day before %s at %s", -r.OffsetDays, r.CalendarEventType, r.TimeOfDay)
	case r.OffsetDays > 0:
		return fmt.Sprintf("%d day after %s at %s", r.OffsetDays, r.CalendarEventType, r.TimeOfDay)
	default:
		return fmt.Sprintf("On the day of %s at %s", r.CalendarEventType, r.TimeOfDay)
	}
}

// ---------------------------------------------------------------------------
// Template
// ---------------------------------------------------------------------------

// Template is a notification type or survey template. Rules of the same kind
// reference it and generated records copy its id.
type Template struct {
	ID          uuid.UUID
	Kind        RecordKind
	Code        string
	Description string
	// SurveyType is set for survey templates only.
	SurveyType SurveyType
}

// Validate checks the template against its kind.
func (t Template) Validate() error {
	var errs []FieldError

	if !t.Kind.IsValid() {
		errs = append(errs, FieldError{Field: "kind", Message: "unknown template kind"})
	}
	if strings.TrimSpace(t.Code) == "" {
		errs = append(errs, FieldError{Field: "code", Message: "required"})
	}
	if t.Kind == RecordKindSurvey && !t.SurveyType.IsValid() {
		errs = append(errs, FieldError{Field: "survey_type", Message: "must be MULTIPLE_CHOICE or TEXT"})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}
