package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bahadricoz/shift/internal/dto"
)

func seg(id int64, start, end string) dto.ShiftSegment {
	s := dto.ShiftSegment{ID: id}
	if start != "" {
		s.ShiftStart = ptr(start)
	}
	if end != "" {
		s.ShiftEnd = ptr(end)
	}
	return s
}

func TestCheckOverlap(t *testing.T) {
	existing := []dto.ShiftSegment{
		seg(1, "2024-03-01 09:00", "2024-03-01 18:00"),
	}

	t.Run("touching at the boundary is not a conflict", func(t *testing.T) {
		// Half-open intervals: 18:00 end meets 18:00 start.
		res := CheckOverlap(existing, ptr("2024-03-01 18:00"), ptr("2024-03-01 21:00"), 0)
		assert.True(t, res.Valid)

		res = CheckOverlap(existing, ptr("2024-03-01 06:00"), ptr("2024-03-01 09:00"), 0)
		assert.True(t, res.Valid)
	})

	t.Run("one minute of intersection is a conflict", func(t *testing.T) {
		res := CheckOverlap(existing, ptr("2024-03-01 17:59"), ptr("2024-03-01 21:00"), 0)

		require.False(t, res.Valid)
		assert.Equal(t, []string{OverlapMessage}, res.Errors)
	})

	t.Run("full containment is a conflict", func(t *testing.T) {
		res := CheckOverlap(existing, ptr("2024-03-01 10:00"), ptr("2024-03-01 11:00"), 0)
		assert.False(t, res.Valid)

		res = CheckOverlap(existing, ptr("2024-03-01 08:00"), ptr("2024-03-01 20:00"), 0)
		assert.False(t, res.Valid)
	})

	t.Run("proposal without bounds never conflicts", func(t *testing.T) {
		res := CheckOverlap(existing, nil, nil, 0)
		assert.True(t, res.Valid)

		res = CheckOverlap(existing, ptr("2024-03-01 10:00"), nil, 0)
		assert.True(t, res.Valid)
	})

	t.Run("existing rows without bounds are skipped", func(t *testing.T) {
		// A leave entry with no hours and a half-filled row: both skipped.
		allDay := []dto.ShiftSegment{
			seg(2, "", ""),
			seg(3, "2024-03-01 09:00", ""),
		}

		res := CheckOverlap(allDay, ptr("2024-03-01 09:00"), ptr("2024-03-01 18:00"), 0)
		assert.True(t, res.Valid)
	})

	t.Run("malformed proposal is the validator's problem", func(t *testing.T) {
		res := CheckOverlap(existing, ptr("garbage"), ptr("2024-03-01 18:00"), 0)
		assert.True(t, res.Valid)
	})

	t.Run("edit excludes itself from the comparison", func(t *testing.T) {
		// Re-saving segment 1 with the same hours must not self-conflict.
		res := CheckOverlap(existing, ptr("2024-03-01 09:00"), ptr("2024-03-01 18:00"), 1)
		assert.True(t, res.Valid)

		// But it still conflicts with other rows.
		two := append(existing, seg(5, "2024-03-01 19:00", "2024-03-01 22:00"))
		res = CheckOverlap(two, ptr("2024-03-01 09:00"), ptr("2024-03-01 20:00"), 1)
		assert.False(t, res.Valid)
	})

	t.Run("fail-fast: a single message even with several conflicts", func(t *testing.T) {
		many := []dto.ShiftSegment{
			seg(1, "2024-03-01 09:00", "2024-03-01 12:00"),
			seg(2, "2024-03-01 13:00", "2024-03-01 18:00"),
		}

		res := CheckOverlap(many, ptr("2024-03-01 08:00"), ptr("2024-03-01 20:00"), 0)

		require.False(t, res.Valid)
		assert.Len(t, res.Errors, 1)
	})
}
