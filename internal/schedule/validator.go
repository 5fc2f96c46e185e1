package schedule

import (
	"time"
)

// ValidationResult is the structured outcome of the validator and the
// overlap checker. Valid iff Errors is empty.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func validationOK() ValidationResult {
	return ValidationResult{Valid: true, Errors: []string{}}
}

func validationFailed(errs ...string) ValidationResult {
	return ValidationResult{Valid: false, Errors: errs}
}

// SegmentPayload is a proposed segment as collected from the UI, with
// canonical "YYYY-MM-DD HH:MM" bounds. Nil or empty pointers mean absent.
type SegmentPayload struct {
	WorkType      string
	FoodPayment   string
	ShiftStart    *string
	ShiftEnd      *string
	OvertimeStart *string
	OvertimeEnd   *string
}

// ValidateSegment checks a single proposed segment for internal
// consistency. All rules are evaluated — every problem lands in the error
// list so the UI can show them at once. It never panics: malformed
// timestamps become format errors.
//
// Overlap against other segments is a separate check, see CheckOverlap.
func ValidateSegment(p SegmentPayload) ValidationResult {
	var errs []string

	wt, ok := ParseWorkType(p.WorkType)
	if !ok {
		errs = append(errs, "work_type is required")
	}

	if !validFoodPayment(p.FoodPayment) {
		errs = append(errs, "food_payment must be YES or NO")
	}

	shiftStart, shiftEnd := strval(p.ShiftStart), strval(p.ShiftEnd)
	overtimeStart, overtimeEnd := strval(p.OvertimeStart), strval(p.OvertimeEnd)

	var shiftEndAt *time.Time

	switch {
	case shiftStart != "" && shiftEnd != "":
		s, errS := time.Parse(DateTimeLayout, shiftStart)
		e, errE := time.Parse(DateTimeLayout, shiftEnd)
		if errS != nil || errE != nil {
			errs = append(errs, "shift_start/shift_end format is invalid (expected YYYY-MM-DD HH:MM)")
		} else {
			if !s.Before(e) {
				errs = append(errs, "shift_start must be before shift_end")
			}
			shiftEndAt = &e
		}
	case ok && wt.RequiresShiftTimes():
		errs = append(errs, "shift_start and shift_end are required for this work type")
	}

	switch {
	case overtimeStart != "" && overtimeEnd != "":
		os, errS := time.Parse(DateTimeLayout, overtimeStart)
		oe, errE := time.Parse(DateTimeLayout, overtimeEnd)
		if errS != nil || errE != nil {
			errs = append(errs, "overtime_start/overtime_end format is invalid (expected YYYY-MM-DD HH:MM)")
		} else {
			if !os.Before(oe) {
				errs = append(errs, "overtime_start must be before overtime_end")
			}
			// Overtime strictly follows the shift; starting exactly at
			// shift_end is allowed.
			if shiftEndAt != nil && os.Before(*shiftEndAt) {
				errs = append(errs, "overtime_start cannot be before shift_end (overtime begins after the shift)")
			}
		}
	case overtimeStart != "" || overtimeEnd != "":
		errs = append(errs, "overtime_start and overtime_end must be supplied together")
	}

	if len(errs) > 0 {
		return validationFailed(errs...)
	}
	return validationOK()
}

func strval(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
