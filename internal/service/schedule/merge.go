package schedule

import (
	"iter"

	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/internal/domain"
	"github.com/Hera-Digital-Health-Open-Source/webbackend-api/pkg/seqmerge"
)

// MergeRecords merges record streams, each already ordered by
// (AvailableAt, ExpiresAt), into one sequence with the same order. Equal
// windows keep stream order.
func MergeRecords(streams ...iter.Seq[domain.GeneratedRecord]) iter.Seq[domain.GeneratedRecord] {
	return seqmerge.Merge(recordBefore, streams...)
}

func recordBefore(a, b domain.GeneratedRecord) bool {
	return compareWindows(a, b) < 0
}

func compareWindows(a, b domain.GeneratedRecord) int {
	if c := a.AvailableAt.Compare(b.AvailableAt); c != 0 {
		return c
	}
	return a.ExpiresAt.Compare(b.ExpiresAt)
}
