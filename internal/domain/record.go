package domain

import (
	"time"

	"github.com/google/uuid"
)

// Survey template codes with follow-up processing.
const (
	SurveyCodeVaccinationHaveYouVisited = "vaccination.have_you_visited"
	SurveyResponseYes                   = "yes"
)

// GeneratedRecord is a notification event or survey produced from a calendar
// event and a schedule rule. (EventKey, ScheduleID) is unique per kind.
type GeneratedRecord struct {
	ID          uuid.UUID
	Kind        RecordKind
	UserID      uuid.UUID
	EventKey    string
	ScheduleID  uuid.UUID
	TemplateID  uuid.UUID
	Context     map[string]string
	AvailableAt time.Time
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// IsAvailable reports whether now lies inside the record window, both ends inclusive.
func (r GeneratedRecord) IsAvailable(now time.Time) bool {
	return !now.Before(r.AvailableAt) && !now.After(r.ExpiresAt)
}

// Survey is a generated survey together with its response state.
type Survey struct {
	GeneratedRecord
	TemplateCode string
	SurveyType   SurveyType
	Response     *string
	RespondedAt  *time.Time
}

// IsAnswered reports whether the user has responded.
func (s Survey) IsAnswered() bool {
	return s.Response != nil
}
