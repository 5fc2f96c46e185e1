package schedule

import (
	"strings"
)

// Known work type enumeration values. Anything else entered by an admin is
// carried as a custom free-text label (e.g. "Paternity Leave").
const (
	WorkTypeOffice      = "Office"
	WorkTypeRemote      = "Remote"
	WorkTypeReport      = "Report"
	WorkTypeAnnualLeave = "Annual Leave"
	WorkTypeOff         = "OFF"
)

// KnownWorkTypes is the fixed enumeration, in UI order.
var KnownWorkTypes = []string{
	WorkTypeOffice,
	WorkTypeRemote,
	WorkTypeReport,
	WorkTypeAnnualLeave,
	WorkTypeOff,
}

// FoodPaymentValues — allowed food_payment values.
var FoodPaymentValues = []string{"YES", "NO"}

// WorkType is a tagged variant: either one of the known enumeration values
// or a custom label. The zero value is invalid (empty label).
type WorkType struct {
	known  string // one of KnownWorkTypes, empty when custom
	custom string
}

// ParseWorkType classifies a raw work-type string. ok is false for
// empty/blank input.
func ParseWorkType(raw string) (WorkType, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return WorkType{}, false
	}
	for _, k := range KnownWorkTypes {
		if s == k {
			return WorkType{known: k}, true
		}
	}
	return WorkType{custom: s}, true
}

func (w WorkType) IsKnown() bool {
	return w.known != ""
}

func (w WorkType) String() string {
	if w.known != "" {
		return w.known
	}
	return w.custom
}

// TimeExempt reports whether shift times may be omitted for this work type.
// OFF, Annual Leave and Report are all-day entries; custom labels are
// exempt as well so free-form leave categories need no hours.
func (w WorkType) TimeExempt() bool {
	switch w.known {
	case WorkTypeOff, WorkTypeAnnualLeave, WorkTypeReport:
		return true
	}
	return !w.IsKnown()
}

// RequiresShiftTimes reports whether the validator must insist on both
// shift bounds for this work type.
func (w WorkType) RequiresShiftTimes() bool {
	return w.IsKnown() && !w.TimeExempt()
}

// ShortCode is the compact grid-cell label.
func (w WorkType) ShortCode() string {
	switch w.known {
	case WorkTypeOffice:
		return "OF"
	case WorkTypeRemote:
		return "RM"
	case WorkTypeReport:
		return "RP"
	case WorkTypeAnnualLeave:
		return "AL"
	case WorkTypeOff:
		return "—"
	}
	return "CU"
}

// ColorHex is the badge color used by grid renderers.
func (w WorkType) ColorHex() string {
	switch w.known {
	case WorkTypeOffice:
		return "#3b82f6"
	case WorkTypeRemote:
		return "#10b981"
	case WorkTypeReport:
		return "#8b5cf6"
	case WorkTypeAnnualLeave:
		return "#f59e0b"
	case WorkTypeOff:
		return "#6b7280"
	}
	return "#ec4899" // custom
}

// DisplayLabel is the full badge text; custom labels display as entered.
func (w WorkType) DisplayLabel() string {
	if w.known != "" {
		return w.known
	}
	if w.custom != "" {
		return w.custom
	}
	return "Custom"
}

func validFoodPayment(v string) bool {
	for _, fp := range FoodPaymentValues {
		if v == fp {
			return true
		}
	}
	return false
}
