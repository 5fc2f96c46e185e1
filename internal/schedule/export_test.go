package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bahadricoz/shift/internal/dto"
)

func sampleEntries() []dto.ScheduleEntry {
	return []dto.ScheduleEntry{
		{
			ID:          1,
			Date:        "2024-03-01",
			ExternalID:  "1024",
			MemberName:  "Bahadir Coz",
			WorkType:    "Office",
			FoodPayment: "yes",
			ShiftStart:  ptr("2024-03-01 09:00"),
			ShiftEnd:    ptr("2024-03-01 18:00"),
		},
		{
			ID:          2,
			Date:        "2024-03-01",
			ExternalID:  "1025",
			MemberName:  "Deniz Kaya",
			WorkType:    "OFF",
			FoodPayment: "NO",
		},
		{
			ID:            3,
			Date:          "2024-03-02",
			ExternalID:    "1024",
			MemberName:    "Bahadir Coz",
			WorkType:      "Remote",
			FoodPayment:   "YES",
			ShiftStart:    ptr("2024-03-02 10:00"),
			ShiftEnd:      ptr("2024-03-02 19:00"),
			OvertimeStart: ptr("2024-03-02 19:00"),
			OvertimeEnd:   ptr("2024-03-02 21:30"),
		},
	}
}

func TestBuildExportRows_Formatting(t *testing.T) {
	rows := BuildExportRows(sampleEntries(), ExportFilter{})
	require.Len(t, rows, 3)

	first := rows[0]
	assert.Equal(t, "3/1/2024", first.Date)
	assert.Equal(t, "1024", first.TeamMemberID)
	assert.Equal(t, "BAHADIR COZ", first.TeamMember)
	assert.Equal(t, "OFFICE", first.WorkType)
	assert.Equal(t, "YES", first.FoodPayment)
	assert.Equal(t, "3/1/2024 9:00", first.ShiftStart)
	assert.Equal(t, "3/1/2024 18:00", first.ShiftEnd)
	assert.Equal(t, "", first.OvertimeStart)

	third := rows[2]
	assert.Equal(t, "3/2/2024 19:00", third.OvertimeStart)
	assert.Equal(t, "3/2/2024 21:30", third.OvertimeEnd)
}

func TestBuildExportRows_Filters(t *testing.T) {
	entries := sampleEntries()

	t.Run("by member", func(t *testing.T) {
		rows := BuildExportRows(entries, ExportFilter{MemberIDs: []string{"1025"}})

		require.Len(t, rows, 1)
		assert.Equal(t, "DENIZ KAYA", rows[0].TeamMember)
	})

	t.Run("by work type", func(t *testing.T) {
		rows := BuildExportRows(entries, ExportFilter{WorkTypes: []string{"Office", "Remote"}})
		assert.Len(t, rows, 2)
	})

	t.Run("by food payment", func(t *testing.T) {
		rows := BuildExportRows(entries, ExportFilter{FoodPayment: "NO"})

		require.Len(t, rows, 1)
		assert.Equal(t, "OFF", rows[0].WorkType)
	})

	t.Run("unknown food payment value passes everything", func(t *testing.T) {
		rows := BuildExportRows(entries, ExportFilter{FoodPayment: "ALL"})
		assert.Len(t, rows, 3)
	})

	t.Run("filters combine", func(t *testing.T) {
		rows := BuildExportRows(entries, ExportFilter{
			MemberIDs:   []string{"1024"},
			FoodPayment: "yes", // case-insensitive
		})
		assert.Len(t, rows, 2)
	})
}

func TestExportRowValues(t *testing.T) {
	rows := BuildExportRows(sampleEntries(), ExportFilter{})
	require.NotEmpty(t, rows)

	values := rows[0].Values()
	require.Len(t, values, len(ExportColumns))
	assert.Equal(t, rows[0].Date, values[0])
	assert.Equal(t, rows[0].OvertimeEnd, values[len(values)-1])
}
