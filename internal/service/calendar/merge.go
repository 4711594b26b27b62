package calendar

import (
	"iter"

	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/pkg/seqmerge"
)

// MergeEvents merges date-ordered event streams into one date-ordered stream.
// Events on the same date keep the order of the streams they come from.
func MergeEvents(streams ...iter.Seq[domain.CalendarEvent]) iter.Seq[domain.CalendarEvent] {
	return seqmerge.Merge(eventBefore, streams...)
}

func eventBefore(a, b domain.CalendarEvent) bool {
	return a.Date().Before(b.Date())
}
