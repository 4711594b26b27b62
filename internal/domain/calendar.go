package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar date format used in event contexts.
const DateLayout = "2006-01-02"

// Context keys shared by all calendar events.
const (
	ContextKeyDate      = "date"
	ContextKeyEventType = "event_type"
	ContextKeyEventKey  = "event_key"
	ContextKeyChildID   = "child_id"
	ContextKeyDoseIDs   = "dose_ids"
)

// ContextListSeparator joins list values inside an event context.
const ContextListSeparator = ", "

// CalendarEvent is a derived, never persisted, medical event on a user's calendar.
type CalendarEvent interface {
	// Date is the calendar date of the event (UTC midnight).
	Date() time.Time
	Type() CalendarEventType
	// EventKey is the stable identity of the occurrence, used as the
	// idempotency anchor of generated records.
	EventKey() string
	// Context is a string-valued snapshot of the event for message templates.
	Context() map[string]string
}

// ---------------------------------------------------------------------------
// Prenatal checkup
// ---------------------------------------------------------------------------

// PrenatalCheckupEvent is a recommended prenatal visit.
type PrenatalCheckupEvent struct {
	PregnancyID   uuid.UUID
	CheckupDate   time.Time
	WeeksPregnant int
}

func (e PrenatalCheckupEvent) Date() time.Time         { return e.CheckupDate }
func (e PrenatalCheckupEvent) Type() CalendarEventType { return CalendarEventTypePrenatalCheckup }

func (e PrenatalCheckupEvent) EventKey() string {
	return fmt.Sprintf("prenatal-checkup/pregnancy-%s/week-%d", e.PregnancyID, e.WeeksPregnant)
}

func (e PrenatalCheckupEvent) Context() map[string]string {
	return map[string]string{
		"pregnancy_id":      e.PregnancyID.String(),
		ContextKeyDate:      e.CheckupDate.Format(DateLayout),
		"weeks_pregnant":    strconv.Itoa(e.WeeksPregnant),
		ContextKeyEventType: CalendarEventTypePrenatalCheckup.String(),
	}
}

// ---------------------------------------------------------------------------
// Vaccination
// ---------------------------------------------------------------------------

// VaccinationEvent groups every dose a child is due on the same date.
// Doses is never empty.
type VaccinationEvent struct {
	Child           Child
	VaccinationDate time.Time
	Doses           []VaccineDose
}

func (e VaccinationEvent) Date() time.Time         { return e.VaccinationDate }
func (e VaccinationEvent) Type() CalendarEventType { return CalendarEventTypeVaccination }

// WeekAge is the child's age in weeks at the event, taken from the first dose.
func (e VaccinationEvent) WeekAge() int {
	return e.Doses[0].WeekAge
}

// DoseIDs returns the dose ids in event order.
func (e VaccinationEvent) DoseIDs() []string {
	ids := make([]string, len(e.Doses))
	for i, d := range e.Doses {
		ids[i] = d.ID.String()
	}
	return ids
}

func (e VaccinationEvent) EventKey() string {
	return fmt.Sprintf("vaccination/child-%s/doses-%s", e.Child.ID, strings.Join(e.DoseIDs(), ","))
}

func (e VaccinationEvent) Context() map[string]string {
	names := make([]string, len(e.Doses))
	for i, d := range e.Doses {
		names[i] = d.Vaccine.FriendlyName()
	}

	return map[string]string{
		ContextKeyEventKey:  e.EventKey(),
		ContextKeyDate:      e.VaccinationDate.Format(DateLayout),
		"week_age":          strconv.Itoa(e.WeekAge()),
		"person_name":       e.Child.Name,
		"vaccine_names":     strings.Join(names, ContextListSeparator),
		ContextKeyEventType: CalendarEventTypeVaccination.String(),
		ContextKeyChildID:   e.Child.ID.String(),
		ContextKeyDoseIDs:   strings.Join(e.DoseIDs(), ContextListSeparator),
	}
}
