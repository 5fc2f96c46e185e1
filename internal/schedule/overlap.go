package schedule

import (
	"time"

	"github.com/bahadricoz/shift/internal/dto"
)

// OverlapMessage is the single user-facing conflict message. One message
// is enough: any overlap blocks the write.
const OverlapMessage = "shift hours overlap with another segment for this member on the same day — check the times"

// CheckOverlap checks a proposed [start, end) interval against a member's
// existing segments for the same date. Intervals are half-open, so a
// segment ending 18:00 does not conflict with one starting 18:00.
//
// Segments missing either bound — on the proposal or on an existing row —
// are exempt from overlap checking entirely; all-day and leave entries
// never conflict with timed ones. Unlike the validator this check is
// fail-fast: the first conflict returns immediately.
//
// excludeID removes the segment being edited from the comparison set so a
// re-validated edit cannot conflict with itself; pass 0 on create.
func CheckOverlap(existing []dto.ShiftSegment, start, end *string, excludeID int64) ValidationResult {
	if strval(start) == "" || strval(end) == "" {
		return validationOK()
	}

	newStart, err := time.Parse(DateTimeLayout, *start)
	if err != nil {
		// Malformed proposals are the validator's problem, not a conflict.
		return validationOK()
	}
	newEnd, err := time.Parse(DateTimeLayout, *end)
	if err != nil {
		return validationOK()
	}

	for _, seg := range existing {
		if excludeID != 0 && seg.ID == excludeID {
			continue
		}
		if strval(seg.ShiftStart) == "" || strval(seg.ShiftEnd) == "" {
			continue
		}

		es, err := time.Parse(DateTimeLayout, *seg.ShiftStart)
		if err != nil {
			continue
		}
		ee, err := time.Parse(DateTimeLayout, *seg.ShiftEnd)
		if err != nil {
			continue
		}

		// [s1,e1) and [s2,e2) overlap iff not (e2 <= s1 or s2 >= e1).
		if !(isLTE(newEnd, es) || isGTE(newStart, ee)) {
			return validationFailed(OverlapMessage)
		}
	}

	return validationOK()
}

func isLTE(a, b time.Time) bool { return !a.After(b) }
func isGTE(a, b time.Time) bool { return !a.Before(b) }
