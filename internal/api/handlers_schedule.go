package api

import (
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/bahadricoz/shift/internal/schedule"
)

// segmentView is a grid-ready rendering of one segment: badge metadata and
// preformatted time ranges so the client does no date math.
type segmentView struct {
	ID            int64  `json:"id"`
	WorkType      string `json:"work_type"`
	Label         string `json:"label"`
	ShortCode     string `json:"short_code"`
	Color         string `json:"color"`
	TimeRange     string `json:"time_range,omitempty"`
	OvertimeRange string `json:"overtime_range,omitempty"`
	FoodPayment   string `json:"food_payment"`
}

type gridRow struct {
	MemberID    int64                    `json:"member_id"`
	ExternalID  string                   `json:"team_member_id"`
	DisplayName string                   `json:"team_member"`
	Cells       map[string][]segmentView `json:"cells"` // date → segments, chronological
}

type gridResponse struct {
	From string    `json:"from"`
	To   string    `json:"to"`
	Days []string  `json:"days"`
	Rows []gridRow `json:"rows"`
}

type workTypeView struct {
	Value     string `json:"value"`
	ShortCode string `json:"short_code"`
	Color     string `json:"color"`
	Custom    bool   `json:"custom"`
}

type workTypesResponse struct {
	Known  []workTypeView `json:"known"`
	InUse  []workTypeView `json:"in_use"`  // every distinct value stored for the department
	Custom []workTypeView `json:"custom"` // the in-use values outside the enumeration
}

// @Summary The department schedule grid for a date range
// @Tags    Schedule
// @Produce json
// @Param   from query string false "YYYY-MM-DD, inclusive"
// @Param   to query string false "YYYY-MM-DD, inclusive"
// @Param   date query string false "anchor: expands to the Monday–Sunday week containing it"
// @Success 200 {object} gridResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router  /schedule [get]
//
// With no parameters the current week is returned. Rows cover every member
// of the department, including those with no segments in the range.
func (s *Service) scheduleGrid(ctx *fasthttp.RequestCtx) {
	acc := accessFrom(ctx)

	from, to, err := gridRange(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return
	}

	members, err := s.members.ListByDepartment(ctx, acc.DepartmentID)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("memberRepository.ListByDepartment: %w", err))
		return
	}

	entries, err := s.shifts.ListForDepartmentAndRange(ctx, acc.DepartmentID, from.Format(schedule.DateLayout), to.Format(schedule.DateLayout))
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("shiftRepository.ListForDepartmentAndRange: %w", err))
		return
	}

	// date → external member id → segments
	cells := make(map[string]map[string][]segmentView)
	for _, e := range entries {
		wt, _ := schedule.ParseWorkType(e.WorkType)
		view := segmentView{
			ID:            e.ID,
			WorkType:      e.WorkType,
			Label:         wt.DisplayLabel(),
			ShortCode:     wt.ShortCode(),
			Color:         wt.ColorHex(),
			TimeRange:     schedule.FormatTimeRange(e.ShiftStart, e.ShiftEnd),
			OvertimeRange: schedule.FormatOvertimeRange(e.OvertimeStart, e.OvertimeEnd),
			FoodPayment:   e.FoodPayment,
		}

		byMember, exists := cells[e.ExternalID]
		if !exists {
			byMember = make(map[string][]segmentView)
			cells[e.ExternalID] = byMember
		}
		byMember[e.Date] = append(byMember[e.Date], view)
	}

	var days []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(schedule.DateLayout))
	}

	rows := make([]gridRow, 0, len(members))
	for _, m := range members {
		row := gridRow{
			MemberID:    m.ID,
			ExternalID:  m.ExternalID,
			DisplayName: m.DisplayName,
			Cells:       make(map[string][]segmentView),
		}
		for date, views := range cells[m.ExternalID] {
			row.Cells[date] = views
		}
		rows = append(rows, row)
	}

	writeJSON(ctx, fasthttp.StatusOK, gridResponse{
		From: from.Format(schedule.DateLayout),
		To:   to.Format(schedule.DateLayout),
		Days: days,
		Rows: rows,
	})
}

// @Summary Work types: the fixed enumeration plus the department's custom labels
// @Tags    Schedule
// @Produce json
// @Success 200 {object} workTypesResponse
// @Failure 500 {object} errorResponse
// @Router  /work-types [get]
func (s *Service) listWorkTypes(ctx *fasthttp.RequestCtx) {
	acc := accessFrom(ctx)

	inUse, err := s.shifts.ListDistinctWorkTypes(ctx, acc.DepartmentID)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("shiftRepository.ListDistinctWorkTypes: %w", err))
		return
	}

	resp := workTypesResponse{
		Known:  make([]workTypeView, 0, len(schedule.KnownWorkTypes)),
		InUse:  make([]workTypeView, 0, len(inUse)),
		Custom: []workTypeView{},
	}
	for _, v := range schedule.KnownWorkTypes {
		resp.Known = append(resp.Known, workTypeViewOf(v))
	}
	for _, v := range inUse {
		view := workTypeViewOf(v)
		resp.InUse = append(resp.InUse, view)
		if view.Custom {
			resp.Custom = append(resp.Custom, view)
		}
	}

	writeJSON(ctx, fasthttp.StatusOK, resp)
}

func workTypeViewOf(value string) workTypeView {
	wt, _ := schedule.ParseWorkType(value)
	return workTypeView{
		Value:     wt.DisplayLabel(),
		ShortCode: wt.ShortCode(),
		Color:     wt.ColorHex(),
		Custom:    !wt.IsKnown(),
	}
}

// gridRange resolves from/to or a week anchor; bare requests get the week
// containing today.
func gridRange(ctx *fasthttp.RequestCtx) (time.Time, time.Time, error) {
	fromRaw := string(ctx.QueryArgs().Peek("from"))
	toRaw := string(ctx.QueryArgs().Peek("to"))

	if fromRaw != "" || toRaw != "" {
		from, err := time.Parse(schedule.DateLayout, fromRaw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid 'from' (expected YYYY-MM-DD)")
		}
		to, err := time.Parse(schedule.DateLayout, toRaw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid 'to' (expected YYYY-MM-DD)")
		}
		if to.Before(from) {
			return time.Time{}, time.Time{}, fmt.Errorf("'to' precedes 'from'")
		}
		return from, to, nil
	}

	anchor := time.Now()
	if raw := string(ctx.QueryArgs().Peek("date")); raw != "" {
		d, err := time.Parse(schedule.DateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid 'date' (expected YYYY-MM-DD)")
		}
		anchor = d
	}

	from, to := schedule.WeekRange(anchor)
	return from, to, nil
}
