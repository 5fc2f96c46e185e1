package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/bahadricoz/shift/internal/dto"
	"github.com/bahadricoz/shift/internal/exchange/producer"
	"github.com/bahadricoz/shift/internal/schedule"
)

type bulkAssignRequest struct {
	MemberIDs       []int64 `json:"member_ids"`
	From            string  `json:"from" example:"2024-03-04"`
	To              string  `json:"to" example:"2024-03-08"`
	WorkType        string  `json:"work_type" example:"Office"`
	FoodPayment     string  `json:"food_payment" example:"YES"`
	TimeRange       string  `json:"time_range,omitempty" example:"9-18"`       // free text, e.g. "9-18" or "09:30-18:15"
	OvertimeRange   string  `json:"overtime_range,omitempty" example:"18-21"`
	IncludeWeekends bool    `json:"include_weekends,omitempty"`
}

type bulkCopyRequest struct {
	SourceMemberID int64   `json:"source_member_id" example:"7"`
	MemberIDs      []int64 `json:"member_ids"` // targets; may include the source itself
	SourceFrom     string  `json:"source_from" example:"2024-03-04"`
	SourceTo       string  `json:"source_to" example:"2024-03-10"`
	TargetFrom     string  `json:"target_from" example:"2024-03-11"`
	TargetTo       string  `json:"target_to" example:"2024-03-17"`
	Overwrite      bool    `json:"overwrite,omitempty"` // clear target cells before copying
}

type bulkDeleteRequest struct {
	MemberIDs []int64 `json:"member_ids"`
	From      string  `json:"from" example:"2024-03-04"`
	To        string  `json:"to" example:"2024-03-10"`
	WorkType  string  `json:"work_type,omitempty"` // restrict to one work type
}

// @Summary Assign the same segment to several members across a date range
// @Tags    Bulk
// @Accept  json
// @Produce json
// @Param   request body bulkAssignRequest true "assignment"
// @Success 200 {object} bulkResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router  /bulk/assign [post]
//
// Cells are independent: one overlap or scope failure is recorded in the
// error list and the rest of the range still applies.
func (s *Service) bulkAssign(ctx *fasthttp.RequestCtx) {
	acc := accessFrom(ctx)

	var req bulkAssignRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Errorf("json.Unmarshal: %w", err))
		return
	}
	if len(req.MemberIDs) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, errors.New("required field 'member_ids'"))
		return
	}

	from, to, err := dateRange(req.From, req.To)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return
	}

	shiftStart, shiftEnd := schedule.ParseTimeRangeText(req.TimeRange)
	if req.TimeRange != "" && shiftStart == nil {
		writeError(ctx, fasthttp.StatusBadRequest, errors.New("unparseable 'time_range' (expected e.g. \"9-18\")"))
		return
	}
	otStart, otEnd := schedule.ParseTimeRangeText(req.OvertimeRange)
	if req.OvertimeRange != "" && otStart == nil {
		writeError(ctx, fasthttp.StatusBadRequest, errors.New("unparseable 'overtime_range' (expected e.g. \"18-21\")"))
		return
	}

	resp := bulkResponse{Status: "ok"}
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if !req.IncludeWeekends && isWeekend(day) {
			continue
		}

		seg := dto.ShiftSegment{
			DepartmentID:  acc.DepartmentID,
			Date:          day.Format(schedule.DateLayout),
			WorkType:      req.WorkType,
			FoodPayment:   req.FoodPayment,
			ShiftStart:    schedule.ComposeDateTime(day, shiftStart),
			ShiftEnd:      schedule.ComposeDateTime(day, shiftEnd),
			OvertimeStart: schedule.ComposeDateTime(day, otStart),
			OvertimeEnd:   schedule.ComposeDateTime(day, otEnd),
		}

		res := schedule.ValidateSegment(schedule.SegmentPayload{
			WorkType:      seg.WorkType,
			FoodPayment:   seg.FoodPayment,
			ShiftStart:    seg.ShiftStart,
			ShiftEnd:      seg.ShiftEnd,
			OvertimeStart: seg.OvertimeStart,
			OvertimeEnd:   seg.OvertimeEnd,
		})
		if !res.Valid {
			// The payload is the same for every cell; report once and stop.
			validationFailed(ctx, res.Errors)
			return
		}

		for _, memberID := range req.MemberIDs {
			seg.TeamMemberID = memberID
			s.applyBulkCreate(ctx, seg, &resp)
		}
	}

	writeJSON(ctx, fasthttp.StatusOK, resp)
}

// @Summary Copy one member's segments onto target members over an equal-length range
// @Tags    Bulk
// @Accept  json
// @Produce json
// @Param   request body bulkCopyRequest true "copy"
// @Success 200 {object} bulkResponse
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router  /bulk/copy [post]
//
// Shift and overtime hours keep their wall-clock times, re-anchored to the
// shifted dates. Typical use: duplicate one member's week onto the whole
// team, or onto the member's own next week.
func (s *Service) bulkCopy(ctx *fasthttp.RequestCtx) {
	acc := accessFrom(ctx)

	var req bulkCopyRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Errorf("json.Unmarshal: %w", err))
		return
	}
	if req.SourceMemberID <= 0 {
		writeError(ctx, fasthttp.StatusBadRequest, errors.New("required field 'source_member_id'"))
		return
	}
	if len(req.MemberIDs) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, errors.New("required field 'member_ids'"))
		return
	}

	srcFrom, srcTo, err := dateRange(req.SourceFrom, req.SourceTo)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return
	}
	tgtFrom, tgtTo, err := dateRange(req.TargetFrom, req.TargetTo)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return
	}
	if srcTo.Sub(srcFrom) != tgtTo.Sub(tgtFrom) {
		writeError(ctx, fasthttp.StatusBadRequest, errors.New("source and target ranges must be the same length"))
		return
	}

	if !s.memberInScope(ctx, req.SourceMemberID, acc.DepartmentID) {
		return
	}

	resp := bulkResponse{Status: "ok"}
	days := int(srcTo.Sub(srcFrom).Hours()/24) + 1
	for i := 0; i < days; i++ {
		srcDay := srcFrom.AddDate(0, 0, i)
		tgtDay := tgtFrom.AddDate(0, 0, i)

		src, err := s.shifts.ListForMemberAndDate(ctx, req.SourceMemberID, srcDay.Format(schedule.DateLayout))
		if err != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("source %s: %v", srcDay.Format(schedule.DateLayout), err))
			continue
		}
		if len(src) == 0 {
			continue
		}

		for _, memberID := range req.MemberIDs {
			if req.Overwrite {
				if _, err := s.shifts.DeleteForMemberAndDate(ctx, memberID, acc.DepartmentID, tgtDay.Format(schedule.DateLayout)); err != nil {
					resp.Errors = append(resp.Errors, fmt.Sprintf("member %d %s: clear failed: %v", memberID, tgtDay.Format(schedule.DateLayout), err))
					continue
				}
			}

			for _, orig := range src {
				seg := dto.ShiftSegment{
					DepartmentID:  acc.DepartmentID,
					TeamMemberID:  memberID,
					Date:          tgtDay.Format(schedule.DateLayout),
					WorkType:      orig.WorkType,
					FoodPayment:   orig.FoodPayment,
					ShiftStart:    schedule.Reanchor(orig.ShiftStart, tgtDay),
					ShiftEnd:      schedule.Reanchor(orig.ShiftEnd, tgtDay),
					OvertimeStart: schedule.Reanchor(orig.OvertimeStart, tgtDay),
					OvertimeEnd:   schedule.Reanchor(orig.OvertimeEnd, tgtDay),
				}
				s.applyBulkCreate(ctx, seg, &resp)
			}
		}
	}

	writeJSON(ctx, fasthttp.StatusOK, resp)
}

// @Summary Delete segments across a date range
// @Tags    Bulk
// @Accept  json
// @Produce json
// @Param   request body bulkDeleteRequest true "deletion; work_type narrows it to one value"
// @Success 200 {object} bulkResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router  /bulk/delete [post]
func (s *Service) bulkDelete(ctx *fasthttp.RequestCtx) {
	acc := accessFrom(ctx)

	var req bulkDeleteRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Errorf("json.Unmarshal: %w", err))
		return
	}
	if len(req.MemberIDs) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, errors.New("required field 'member_ids'"))
		return
	}

	from, to, err := dateRange(req.From, req.To)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return
	}

	var workType *string
	if wt := strings.TrimSpace(req.WorkType); wt != "" {
		workType = &wt
	}

	resp := bulkResponse{Status: "ok"}
	for _, memberID := range req.MemberIDs {
		n, err := s.shifts.DeleteRange(ctx, memberID, acc.DepartmentID, from.Format(schedule.DateLayout), to.Format(schedule.DateLayout), workType)
		if err != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("member %d: %v", memberID, err))
			continue
		}
		resp.Applied += n
	}

	writeJSON(ctx, fasthttp.StatusOK, resp)
}

// applyBulkCreate inserts one segment, recording failures in the bulk
// response instead of aborting the batch.
func (s *Service) applyBulkCreate(ctx *fasthttp.RequestCtx, seg dto.ShiftSegment, resp *bulkResponse) {
	id, err := s.shifts.Create(ctx, seg)
	if err != nil {
		resp.Errors = append(resp.Errors, fmt.Sprintf("member %d %s: %s", seg.TeamMemberID, seg.Date, bulkErrorText(err)))
		return
	}

	seg.ID = id
	s.emitSegmentChange(ctx, producer.ActionCreated, seg)
	resp.Applied++
}

func bulkErrorText(err error) string {
	switch {
	case errors.Is(err, dto.ErrShiftOverlap):
		return schedule.OverlapMessage
	case errors.Is(err, dto.ErrForbidden):
		return ErrScopeViolation.Error()
	case errors.Is(err, dto.ErrNotFound):
		return ErrMemberNotFound.Error()
	}
	return err.Error()
}

func dateRange(fromRaw, toRaw string) (time.Time, time.Time, error) {
	from, err := time.Parse(schedule.DateLayout, fromRaw)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid 'from' (expected YYYY-MM-DD)")
	}
	to, err := time.Parse(schedule.DateLayout, toRaw)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid 'to' (expected YYYY-MM-DD)")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("'to' precedes 'from'")
	}

	return from, to, nil
}

func isWeekend(d time.Time) bool {
	return d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
}
