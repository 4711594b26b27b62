package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestUser_TimezoneName(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	tests := []struct {
		name    string
		profile *UserProfile
		want    string
	}{
		{"no profile", nil, "UTC"},
		{"empty timezone", &UserProfile{UserID: id}, "UTC"},
		{"explicit timezone", &UserProfile{UserID: id, Timezone: "Europe/Istanbul"}, "Europe/Istanbul"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			u := User{ID: id, Profile: tt.profile}
			if got := u.TimezoneName(); got != tt.want {
				t.Errorf("TimezoneName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUser_Language(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	if got := (User{ID: id}).Language(); got != LanguageEnglish {
		t.Errorf("no profile: got %q, want en", got)
	}

	p := DefaultUserProfile(id)
	p.LanguageCode = LanguageDari
	if got := (User{ID: id, Profile: &p}).Language(); got != LanguageDari {
		t.Errorf("got %q, want prs", got)
	}
}

func TestDefaultUserProfile(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	p := DefaultUserProfile(id)
	if p.UserID != id || p.Timezone != "UTC" || p.LanguageCode != LanguageEnglish {
		t.Errorf("unexpected defaults: %+v", p)
	}
}
