package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTimezone is used for users without a profile.
const DefaultTimezone = "UTC"

// User is the projection of an application account the engine needs.
type User struct {
	ID        uuid.UUID
	Username  string
	IsActive  bool
	CreatedAt time.Time
	// Profile is nil when the user never completed onboarding.
	Profile *UserProfile
}

// UserProfile holds per-user presentation preferences.
type UserProfile struct {
	UserID       uuid.UUID
	Name         string
	LanguageCode LanguageCode
	Timezone     string
}

// DefaultUserProfile returns a UserProfile with default language and timezone.
func DefaultUserProfile(userID uuid.UUID) UserProfile {
	return UserProfile{
		UserID:       userID,
		LanguageCode: LanguageEnglish,
		Timezone:     DefaultTimezone,
	}
}

// TimezoneName returns the IANA timezone name on record, or DefaultTimezone.
func (u User) TimezoneName() string {
	if u.Profile == nil || u.Profile.Timezone == "" {
		return DefaultTimezone
	}
	return u.Profile.Timezone
}

// Language returns the preferred language, English when unknown.
func (u User) Language() LanguageCode {
	if u.Profile == nil || !u.Profile.LanguageCode.IsValid() {
		return LanguageEnglish
	}
	return u.Profile.LanguageCode
}
