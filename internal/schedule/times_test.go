package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := map[string]Clock{
		"9":     {Hour: 9},
		"09":    {Hour: 9},
		"09:30": {Hour: 9, Minute: 30},
		"9.15":  {Hour: 9, Minute: 15},
		" 18 ":  {Hour: 18},
		"23:59": {Hour: 23, Minute: 59},
	}
	for raw, want := range cases {
		got, ok := ParseClock(raw)
		require.True(t, ok, "input %q", raw)
		assert.Equal(t, want, got, "input %q", raw)
	}

	for _, raw := range []string{"", "25", "9:75", "abc", "9:", ":30"} {
		_, ok := ParseClock(raw)
		assert.False(t, ok, "input %q should not parse", raw)
	}
}

func TestParseTimeRangeText(t *testing.T) {
	t.Run("plain hours", func(t *testing.T) {
		start, end := ParseTimeRangeText("9-18")

		require.NotNil(t, start)
		require.NotNil(t, end)
		assert.Equal(t, "09:00", start.String())
		assert.Equal(t, "18:00", end.String())
	})

	t.Run("minutes and dots", func(t *testing.T) {
		start, end := ParseTimeRangeText("09.30-18.15")

		require.NotNil(t, start)
		assert.Equal(t, "09:30", start.String())
		assert.Equal(t, "18:15", end.String())
	})

	t.Run("no dash means no range", func(t *testing.T) {
		start, end := ParseTimeRangeText("18:00")
		assert.Nil(t, start)
		assert.Nil(t, end)
	})

	t.Run("malformed half yields nothing", func(t *testing.T) {
		start, end := ParseTimeRangeText("9-banana")
		assert.Nil(t, start)
		assert.Nil(t, end)
	})

	t.Run("reversed range still parses — ordering is the validator's call", func(t *testing.T) {
		start, end := ParseTimeRangeText("18-9")

		require.NotNil(t, start)
		assert.Equal(t, "18:00", start.String())
		assert.Equal(t, "09:00", end.String())
	})
}

func TestComposeDateTime(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	got := ComposeDateTime(day, &Clock{Hour: 9, Minute: 5})
	require.NotNil(t, got)
	assert.Equal(t, "2024-03-01 09:05", *got)

	assert.Nil(t, ComposeDateTime(day, nil))
}

func TestReanchor(t *testing.T) {
	target := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	got := Reanchor(ptr("2024-03-04 09:30"), target)
	require.NotNil(t, got)
	assert.Equal(t, "2024-03-11 09:30", *got)

	assert.Nil(t, Reanchor(nil, target))
	assert.Nil(t, Reanchor(ptr(""), target))
	assert.Nil(t, Reanchor(ptr("garbage"), target))
}

func TestWeekRange(t *testing.T) {
	// 2024-03-06 is a Wednesday.
	from, to := WeekRange(time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-03-04", from.Format(DateLayout))
	assert.Equal(t, "2024-03-10", to.Format(DateLayout))

	// Monday maps to itself, Sunday to the preceding Monday.
	from, _ = WeekRange(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-03-04", from.Format(DateLayout))

	from, to = WeekRange(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-03-04", from.Format(DateLayout))
	assert.Equal(t, "2024-03-10", to.Format(DateLayout))
}

func TestExportFormats(t *testing.T) {
	assert.Equal(t, "3/1/2024", FmtDate("2024-03-01"))
	assert.Equal(t, "12/31/2024", FmtDate("2024-12-31"))
	assert.Equal(t, "", FmtDate(""))
	assert.Equal(t, "not-a-date", FmtDate("not-a-date"))

	assert.Equal(t, "3/1/2024 9:05", FmtDateTime("2024-03-01 09:05"))
	assert.Equal(t, "3/1/2024 18:00", FmtDateTime("2024-03-01 18:00"))
	assert.Equal(t, "bogus", FmtDateTime("bogus"))
}

func TestFormatTimeRange(t *testing.T) {
	assert.Equal(t, "09:00–18:00", FormatTimeRange(ptr("2024-03-01 09:00"), ptr("2024-03-01 18:00")))
	assert.Equal(t, "", FormatTimeRange(nil, ptr("2024-03-01 18:00")))
	assert.Equal(t, "", FormatTimeRange(ptr("bad"), ptr("2024-03-01 18:00")))

	assert.Equal(t, "OT 18:00–21:00", FormatOvertimeRange(ptr("2024-03-01 18:00"), ptr("2024-03-01 21:00")))
	assert.Equal(t, "", FormatOvertimeRange(nil, nil))
}
