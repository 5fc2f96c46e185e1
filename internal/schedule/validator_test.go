package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestValidateSegment_Office(t *testing.T) {
	t.Run("valid office segment", func(t *testing.T) {
		res := ValidateSegment(SegmentPayload{
			WorkType:    WorkTypeOffice,
			FoodPayment: "YES",
			ShiftStart:  ptr("2024-03-01 09:00"),
			ShiftEnd:    ptr("2024-03-01 18:00"),
		})

		assert.True(t, res.Valid)
		assert.Empty(t, res.Errors)
	})

	t.Run("office without times is rejected", func(t *testing.T) {
		res := ValidateSegment(SegmentPayload{
			WorkType:    WorkTypeOffice,
			FoodPayment: "NO",
		})

		require.False(t, res.Valid)
		assert.Contains(t, res.Errors, "shift_start and shift_end are required for this work type")
	})

	t.Run("remote also requires times", func(t *testing.T) {
		res := ValidateSegment(SegmentPayload{
			WorkType:    WorkTypeRemote,
			FoodPayment: "NO",
		})

		assert.False(t, res.Valid)
	})
}

func TestValidateSegment_TimeExemptWorkTypes(t *testing.T) {
	for _, wt := range []string{WorkTypeOff, WorkTypeAnnualLeave, WorkTypeReport} {
		t.Run(wt+" needs no times", func(t *testing.T) {
			res := ValidateSegment(SegmentPayload{
				WorkType:    wt,
				FoodPayment: "NO",
			})

			assert.True(t, res.Valid, "errors: %v", res.Errors)
		})
	}

	t.Run("custom label needs no times", func(t *testing.T) {
		res := ValidateSegment(SegmentPayload{
			WorkType:    "Paternity Leave",
			FoodPayment: "NO",
		})

		assert.True(t, res.Valid, "errors: %v", res.Errors)
	})
}

func TestValidateSegment_ShiftOrdering(t *testing.T) {
	t.Run("start equal to end is invalid", func(t *testing.T) {
		res := ValidateSegment(SegmentPayload{
			WorkType:    WorkTypeOffice,
			FoodPayment: "YES",
			ShiftStart:  ptr("2024-03-01 09:00"),
			ShiftEnd:    ptr("2024-03-01 09:00"),
		})

		require.False(t, res.Valid)
		assert.Contains(t, res.Errors, "shift_start must be before shift_end")
	})

	t.Run("start after end is invalid", func(t *testing.T) {
		res := ValidateSegment(SegmentPayload{
			WorkType:    WorkTypeOffice,
			FoodPayment: "YES",
			ShiftStart:  ptr("2024-03-01 18:00"),
			ShiftEnd:    ptr("2024-03-01 09:00"),
		})

		assert.False(t, res.Valid)
	})

	t.Run("garbage timestamps become a format error, not a panic", func(t *testing.T) {
		res := ValidateSegment(SegmentPayload{
			WorkType:    WorkTypeOffice,
			FoodPayment: "YES",
			ShiftStart:  ptr("not a time"),
			ShiftEnd:    ptr("also wrong"),
		})

		require.False(t, res.Valid)
		assert.Contains(t, res.Errors, "shift_start/shift_end format is invalid (expected YYYY-MM-DD HH:MM)")
	})
}

func TestValidateSegment_Overtime(t *testing.T) {
	base := SegmentPayload{
		WorkType:    WorkTypeOffice,
		FoodPayment: "YES",
		ShiftStart:  ptr("2024-03-01 09:00"),
		ShiftEnd:    ptr("2024-03-01 18:00"),
	}

	t.Run("overtime starting exactly at shift_end is valid", func(t *testing.T) {
		p := base
		p.OvertimeStart = ptr("2024-03-01 18:00")
		p.OvertimeEnd = ptr("2024-03-01 21:00")

		res := ValidateSegment(p)

		assert.True(t, res.Valid, "errors: %v", res.Errors)
	})

	t.Run("overtime starting before shift_end is invalid", func(t *testing.T) {
		p := base
		p.OvertimeStart = ptr("2024-03-01 17:00")
		p.OvertimeEnd = ptr("2024-03-01 21:00")

		res := ValidateSegment(p)

		require.False(t, res.Valid)
		assert.Contains(t, res.Errors, "overtime_start cannot be before shift_end (overtime begins after the shift)")
	})

	t.Run("only one overtime bound is invalid", func(t *testing.T) {
		p := base
		p.OvertimeStart = ptr("2024-03-01 18:00")

		res := ValidateSegment(p)

		require.False(t, res.Valid)
		assert.Contains(t, res.Errors, "overtime_start and overtime_end must be supplied together")
	})

	t.Run("overtime start equal to overtime end is invalid", func(t *testing.T) {
		p := base
		p.OvertimeStart = ptr("2024-03-01 18:00")
		p.OvertimeEnd = ptr("2024-03-01 18:00")

		res := ValidateSegment(p)

		require.False(t, res.Valid)
		assert.Contains(t, res.Errors, "overtime_start must be before overtime_end")
	})
}

func TestValidateSegment_CollectsAllErrors(t *testing.T) {
	res := ValidateSegment(SegmentPayload{
		WorkType:      "",
		FoodPayment:   "MAYBE",
		ShiftStart:    ptr("2024-03-01 18:00"),
		ShiftEnd:      ptr("2024-03-01 09:00"),
		OvertimeStart: ptr("2024-03-01 20:00"),
	})

	require.False(t, res.Valid)
	assert.Len(t, res.Errors, 4)
	assert.Contains(t, res.Errors, "work_type is required")
	assert.Contains(t, res.Errors, "food_payment must be YES or NO")
	assert.Contains(t, res.Errors, "shift_start must be before shift_end")
	assert.Contains(t, res.Errors, "overtime_start and overtime_end must be supplied together")
}

func TestValidateSegment_FoodPayment(t *testing.T) {
	for _, fp := range []string{"YES", "NO"} {
		res := ValidateSegment(SegmentPayload{WorkType: WorkTypeOff, FoodPayment: fp})
		assert.True(t, res.Valid, "food_payment %q should pass", fp)
	}

	for _, fp := range []string{"", "yes", "Y", "TRUE"} {
		res := ValidateSegment(SegmentPayload{WorkType: WorkTypeOff, FoodPayment: fp})
		assert.False(t, res.Valid, "food_payment %q should fail", fp)
	}
}
