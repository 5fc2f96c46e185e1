package schedule

import (
	"strings"

	"github.com/bahadricoz/shift/internal/dto"
)

// ExportColumns is the fixed export header. Order is part of the contract
// with downstream spreadsheets and must never change.
var ExportColumns = []string{
	"date",
	"team_member_id",
	"team_member",
	"work_type",
	"food_payment",
	"shift_start",
	"shift_end",
	"overtime_start",
	"overtime_end",
}

// ExportRow is one formatted output row. Field order mirrors ExportColumns.
type ExportRow struct {
	Date          string `json:"date"`
	TeamMemberID  string `json:"team_member_id"`
	TeamMember    string `json:"team_member"`
	WorkType      string `json:"work_type"`
	FoodPayment   string `json:"food_payment"`
	ShiftStart    string `json:"shift_start"`
	ShiftEnd      string `json:"shift_end"`
	OvertimeStart string `json:"overtime_start"`
	OvertimeEnd   string `json:"overtime_end"`
}

// Values returns the row cells in ExportColumns order.
func (r ExportRow) Values() []string {
	return []string{
		r.Date,
		r.TeamMemberID,
		r.TeamMember,
		r.WorkType,
		r.FoodPayment,
		r.ShiftStart,
		r.ShiftEnd,
		r.OvertimeStart,
		r.OvertimeEnd,
	}
}

// ExportFilter narrows export rows. Empty slices mean "no filter";
// FoodPayment accepts YES/NO, anything else (including "ALL") passes all.
type ExportFilter struct {
	MemberIDs   []string // external team_member_id values, not db ids
	WorkTypes   []string
	FoodPayment string
}

// BuildExportRows formats persisted schedule entries for tabular output:
// locale dates (M/D/YYYY), uppercased member/work-type/food-payment,
// optional filtering. It performs no validation — inputs are assumed to
// satisfy the invariants established at write time.
func BuildExportRows(entries []dto.ScheduleEntry, f ExportFilter) []ExportRow {
	memberSet := make(map[string]struct{}, len(f.MemberIDs))
	for _, id := range f.MemberIDs {
		if id = strings.TrimSpace(id); id != "" {
			memberSet[id] = struct{}{}
		}
	}
	workTypeSet := make(map[string]struct{}, len(f.WorkTypes))
	for _, wt := range f.WorkTypes {
		if wt = strings.TrimSpace(wt); wt != "" {
			workTypeSet[wt] = struct{}{}
		}
	}
	foodPayment := strings.ToUpper(strings.TrimSpace(f.FoodPayment))

	rows := make([]ExportRow, 0, len(entries))
	for _, e := range entries {
		wt := strings.TrimSpace(e.WorkType)
		fp := strings.TrimSpace(e.FoodPayment)

		if len(memberSet) > 0 {
			if _, ok := memberSet[e.ExternalID]; !ok {
				continue
			}
		}
		if len(workTypeSet) > 0 {
			if _, ok := workTypeSet[wt]; !ok {
				continue
			}
		}
		if (foodPayment == "YES" || foodPayment == "NO") && strings.ToUpper(fp) != foodPayment {
			continue
		}

		rows = append(rows, ExportRow{
			Date:          FmtDate(e.Date),
			TeamMemberID:  e.ExternalID,
			TeamMember:    strings.ToUpper(e.MemberName),
			WorkType:      strings.ToUpper(wt),
			FoodPayment:   strings.ToUpper(fp),
			ShiftStart:    fmtOptional(e.ShiftStart),
			ShiftEnd:      fmtOptional(e.ShiftEnd),
			OvertimeStart: fmtOptional(e.OvertimeStart),
			OvertimeEnd:   fmtOptional(e.OvertimeEnd),
		})
	}

	return rows
}

func fmtOptional(v *string) string {
	if v == nil || *v == "" {
		return ""
	}
	return FmtDateTime(*v)
}
