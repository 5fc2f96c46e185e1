package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Canonical formats at the service boundary. Every persisted timestamp
// round-trips through DateTimeLayout exactly.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04"
)

// Clock is a wall-clock time of day without a date.
type Clock struct {
	Hour   int
	Minute int
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ParseClock parses a single loosely formatted time of day: "9", "09:30",
// "9.15". Returns false when the input does not resolve to a valid time.
func ParseClock(raw string) (Clock, bool) {
	part := strings.ReplaceAll(strings.TrimSpace(raw), ".", ":")
	if part == "" {
		return Clock{}, false
	}
	if !strings.Contains(part, ":") {
		part += ":00"
	}

	t, err := time.Parse("15:04", part)
	if err != nil {
		return Clock{}, false
	}

	return Clock{Hour: t.Hour(), Minute: t.Minute()}, true
}

// ComposeDateTime combines a date with an optional time of day into the
// canonical "YYYY-MM-DD HH:MM" string. Nil clock means no timestamp.
func ComposeDateTime(day time.Time, c *Clock) *string {
	if c == nil {
		return nil
	}
	s := fmt.Sprintf("%s %s", day.Format(DateLayout), c)
	return &s
}

// ParseTimeRangeText parses free text such as "9-18", "09:30-18:15" or
// "9.00-18.00" into a (start, end) clock pair. It is a best-effort
// convenience parser: nil result on any malformed input, never an error.
// It does NOT enforce start < end — that is the validator's job.
func ParseTimeRangeText(text string) (*Clock, *Clock) {
	raw := strings.TrimSpace(text)
	if raw == "" || !strings.Contains(raw, "-") {
		return nil, nil
	}

	parts := strings.SplitN(raw, "-", 2)

	start, ok := ParseClock(parts[0])
	if !ok {
		return nil, nil
	}
	end, ok := ParseClock(parts[1])
	if !ok {
		return nil, nil
	}

	return &start, &end
}

// Reanchor keeps the wall-clock part of a canonical timestamp but moves it
// to another date. Used when copying segments across dates. Nil in, nil
// out; unparseable input also yields nil.
func Reanchor(value *string, day time.Time) *string {
	if value == nil || *value == "" {
		return nil
	}
	t, err := time.Parse(DateTimeLayout, *value)
	if err != nil {
		return nil
	}
	c := Clock{Hour: t.Hour(), Minute: t.Minute()}
	return ComposeDateTime(day, &c)
}

// WeekRange returns the Monday..Sunday range containing d.
func WeekRange(d time.Time) (time.Time, time.Time) {
	weekday := int(d.Weekday()+6) % 7 // Monday=0
	start := d.AddDate(0, 0, -weekday)
	return start, start.AddDate(0, 0, 6)
}

// FmtDate reformats a canonical date for exports: "2024-03-01" → "3/1/2024".
// Unparseable input passes through unchanged.
func FmtDate(value string) string {
	if value == "" {
		return ""
	}
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		return value
	}
	return fmt.Sprintf("%d/%d/%d", int(d.Month()), d.Day(), d.Year())
}

// FmtDateTime reformats a canonical timestamp for exports:
// "2024-03-01 09:05" → "3/1/2024 9:05". Unparseable input passes through.
func FmtDateTime(value string) string {
	if value == "" {
		return ""
	}
	t, err := time.Parse(DateTimeLayout, value)
	if err != nil {
		return value
	}
	return fmt.Sprintf("%d/%d/%d %d:%02d", int(t.Month()), t.Day(), t.Year(), t.Hour(), t.Minute())
}

// FormatTimeRange renders "HH:MM–HH:MM" for grid cells, empty when either
// bound is missing or malformed.
func FormatTimeRange(start, end *string) string {
	s, e, ok := parseBounds(start, end)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s–%s", s.Format("15:04"), e.Format("15:04"))
}

// FormatOvertimeRange renders "OT HH:MM–HH:MM" for grid cells.
func FormatOvertimeRange(start, end *string) string {
	s, e, ok := parseBounds(start, end)
	if !ok {
		return ""
	}
	return fmt.Sprintf("OT %s–%s", s.Format("15:04"), e.Format("15:04"))
}

func parseBounds(start, end *string) (time.Time, time.Time, bool) {
	if start == nil || end == nil || *start == "" || *end == "" {
		return time.Time{}, time.Time{}, false
	}
	s, err := time.Parse(DateTimeLayout, *start)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	e, err := time.Parse(DateTimeLayout, *end)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return s, e, true
}
