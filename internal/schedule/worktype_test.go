package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWorkType(t *testing.T) {
	t.Run("known values", func(t *testing.T) {
		for _, v := range KnownWorkTypes {
			wt, ok := ParseWorkType(v)
			require.True(t, ok)
			assert.True(t, wt.IsKnown())
			assert.Equal(t, v, wt.String())
		}
	})

	t.Run("custom label", func(t *testing.T) {
		wt, ok := ParseWorkType("  Paternity Leave ")

		require.True(t, ok)
		assert.False(t, wt.IsKnown())
		assert.Equal(t, "Paternity Leave", wt.String())
	})

	t.Run("case sensitive: lowercase is custom, not known", func(t *testing.T) {
		wt, ok := ParseWorkType("office")

		require.True(t, ok)
		assert.False(t, wt.IsKnown())
	})

	t.Run("blank input is rejected", func(t *testing.T) {
		_, ok := ParseWorkType("   ")
		assert.False(t, ok)
	})
}

func TestWorkTypeTimeRules(t *testing.T) {
	exempt := []string{WorkTypeOff, WorkTypeAnnualLeave, WorkTypeReport, "Sabbatical"}
	for _, v := range exempt {
		wt, _ := ParseWorkType(v)
		assert.True(t, wt.TimeExempt(), "%s should be time-exempt", v)
		assert.False(t, wt.RequiresShiftTimes(), "%s should not require times", v)
	}

	for _, v := range []string{WorkTypeOffice, WorkTypeRemote} {
		wt, _ := ParseWorkType(v)
		assert.False(t, wt.TimeExempt(), "%s should not be time-exempt", v)
		assert.True(t, wt.RequiresShiftTimes(), "%s should require times", v)
	}
}

func TestWorkTypeDisplay(t *testing.T) {
	office, _ := ParseWorkType(WorkTypeOffice)
	assert.Equal(t, "OF", office.ShortCode())
	assert.Equal(t, "#3b82f6", office.ColorHex())
	assert.Equal(t, WorkTypeOffice, office.DisplayLabel())

	custom, _ := ParseWorkType("Night Audit")
	assert.Equal(t, "CU", custom.ShortCode())
	assert.Equal(t, "#ec4899", custom.ColorHex())
	assert.Equal(t, "Night Audit", custom.DisplayLabel())

	off, _ := ParseWorkType(WorkTypeOff)
	assert.Equal(t, "—", off.ShortCode())
}
