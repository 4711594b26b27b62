package schedule

import (
	"time"

	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
)

// ParseTimezone parses a timezone string, returning UTC as fallback.
func ParseTimezone(tz string) *time.Location {
	return resolveLocation(tz, time.UTC)
}

func resolveLocation(tz string, fallback *time.Location) *time.Location {
	if tz == "" {
		return fallback
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fallback
	}
	return loc
}

// location resolves the timezone a user's schedule windows are anchored to.
func (s *Service) location(u domain.User) *time.Location {
	if u.Profile == nil {
		return s.defaultLoc
	}
	return resolveLocation(u.Profile.Timezone, s.defaultLoc)
}
