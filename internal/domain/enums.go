package domain

// CalendarEventType identifies the kind of calendar event a schedule rule targets.
type CalendarEventType string

const (
	CalendarEventTypePrenatalCheckup CalendarEventType = "prenatal_checkup"
	CalendarEventTypeVaccination     CalendarEventType = "vaccination"
)

func (t CalendarEventType) String() string { return string(t) }

func (t CalendarEventType) IsValid() bool {
	switch t {
	case CalendarEventTypePrenatalCheckup, CalendarEventTypeVaccination:
		return true
	}
	return false
}

// Gender of a declared child. Only MALE and FEMALE are accepted by the store.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

func (g Gender) String() string { return string(g) }

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale:
		return true
	}
	return false
}

// RecordKind selects which rule catalog and record table a generation run uses.
type RecordKind string

const (
	RecordKindNotification RecordKind = "notification"
	RecordKindSurvey       RecordKind = "survey"
)

func (k RecordKind) String() string { return string(k) }

func (k RecordKind) IsValid() bool {
	switch k {
	case RecordKindNotification, RecordKindSurvey:
		return true
	}
	return false
}

// SurveyType describes how a survey is answered.
type SurveyType string

const (
	SurveyTypeMultipleChoice SurveyType = "MULTIPLE_CHOICE"
	SurveyTypeText           SurveyType = "TEXT"
)

func (t SurveyType) String() string { return string(t) }

func (t SurveyType) IsValid() bool {
	switch t {
	case SurveyTypeMultipleChoice, SurveyTypeText:
		return true
	}
	return false
}

// LanguageCode is a user's preferred content language.
type LanguageCode string

const (
	LanguageEnglish LanguageCode = "en"
	LanguageTurkish LanguageCode = "tr"
	LanguageArabic  LanguageCode = "ar"
	LanguagePashto  LanguageCode = "ps"
	LanguageDari    LanguageCode = "prs"
)

func (c LanguageCode) String() string { return string(c) }

func (c LanguageCode) IsValid() bool {
	switch c {
	case LanguageEnglish, LanguageTurkish, LanguageArabic, LanguagePashto, LanguageDari:
		return true
	}
	return false
}
