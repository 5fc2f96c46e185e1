package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"

	"github.com/bahadricoz/shift/internal/dto"
	"github.com/bahadricoz/shift/internal/exchange/producer"
	"github.com/bahadricoz/shift/internal/schedule"
)

type segmentRequest struct {
	TeamMemberID  int64   `json:"team_member_id" example:"7"`            // member db id
	Date          string  `json:"date" example:"2024-03-01"`             // YYYY-MM-DD
	WorkType      string  `json:"work_type" example:"Office"`            // enum value or custom label
	FoodPayment   string  `json:"food_payment" example:"YES"`            // YES | NO
	ShiftStart    *string `json:"shift_start" example:"2024-03-01 09:00"`
	ShiftEnd      *string `json:"shift_end" example:"2024-03-01 18:00"`
	OvertimeStart *string `json:"overtime_start" example:"2024-03-01 18:00"`
	OvertimeEnd   *string `json:"overtime_end" example:"2024-03-01 21:00"`
}

// @Summary A member's segments for one date
// @Tags    Segments
// @Produce json
// @Param   member_id query int true "member db id"
// @Param   date query string true "YYYY-MM-DD"
// @Success 200 {array} dto.ShiftSegment
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router  /segments [get]
func (s *Service) listSegments(ctx *fasthttp.RequestCtx) {
	acc := accessFrom(ctx)

	memberID, date, err := cellParams(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return
	}
	if !s.memberInScope(ctx, memberID, acc.DepartmentID) {
		return
	}

	rows, err := s.shifts.ListForMemberAndDate(ctx, memberID, date)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("shiftRepository.ListForMemberAndDate: %w", err))
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, rows)
}

// @Summary Create a shift segment
// @Tags    Segments
// @Accept  json
// @Produce json
// @Param   request body segmentRequest true "segment"
// @Success 200 {object} idResponse
// @Failure 400 {object} errorResponse "VALIDATION_ERROR with the full error list"
// @description 400 collects every structural problem at once: work type, food payment,
// @description time ordering, required times per work type, overtime pairing.
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse "member not found"
// @Failure 409 {object} errorResponse "OVERLAP_CONFLICT — shift hours intersect an existing segment"
// @Failure 500 {object} errorResponse
// @Router  /segments [post]
func (s *Service) createSegment(ctx *fasthttp.RequestCtx) {
	acc := accessFrom(ctx)

	seg, done := s.parseAndValidateSegment(ctx, 0)
	if done {
		return
	}
	seg.DepartmentID = acc.DepartmentID

	id, err := s.shifts.Create(ctx, *seg)
	if err != nil {
		s.writeSegmentWriteError(ctx, "shiftRepository.Create", err)
		return
	}

	seg.ID = id
	s.emitSegmentChange(ctx, producer.ActionCreated, *seg)

	created(ctx, id)
}

// @Summary Update a shift segment
// @Tags    Segments
// @Accept  json
// @Produce json
// @Param   id path int true "segment id"
// @Param   request body segmentRequest true "segment"
// @Success 200 {object} okResponse
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router  /segments/{id} [put]
//
// The overlap re-check excludes the segment itself, so an edit that keeps
// the same hours never self-conflicts.
func (s *Service) updateSegment(ctx *fasthttp.RequestCtx) {
	acc := accessFrom(ctx)

	id, err := pathID(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return
	}

	seg, done := s.parseAndValidateSegment(ctx, id)
	if done {
		return
	}
	seg.DepartmentID = acc.DepartmentID

	if err := s.shifts.Update(ctx, *seg); err != nil {
		s.writeSegmentWriteError(ctx, "shiftRepository.Update", err)
		return
	}

	s.emitSegmentChange(ctx, producer.ActionUpdated, *seg)

	ok(ctx, "segment updated")
}

// @Summary Delete a shift segment
// @Tags    Segments
// @Produce json
// @Param   id path int true "segment id"
// @Success 200 {object} okResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router  /segments/{id} [delete]
func (s *Service) deleteSegment(ctx *fasthttp.RequestCtx) {
	acc := accessFrom(ctx)

	id, err := pathID(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return
	}

	if err := s.shifts.Delete(ctx, id, acc.DepartmentID); err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			writeError(ctx, fasthttp.StatusNotFound, ErrSegmentNotFound)
			return
		}

		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("shiftRepository.Delete: %w", err))
		return
	}

	s.emitSegmentChange(ctx, producer.ActionDeleted, dto.ShiftSegment{ID: id, DepartmentID: acc.DepartmentID})

	ok(ctx, "segment deleted")
}

// @Summary Clear a grid cell (all of a member's segments for one date)
// @Tags    Segments
// @Produce json
// @Param   member_id query int true "member db id"
// @Param   date query string true "YYYY-MM-DD"
// @Success 200 {object} bulkResponse
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router  /segments [delete]
func (s *Service) clearCell(ctx *fasthttp.RequestCtx) {
	acc := accessFrom(ctx)

	memberID, date, err := cellParams(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return
	}
	if !s.memberInScope(ctx, memberID, acc.DepartmentID) {
		return
	}

	// Snapshot before deleting so the change feed can carry the removed ids.
	victims, err := s.shifts.ListForMemberAndDate(ctx, memberID, date)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("shiftRepository.ListForMemberAndDate: %w", err))
		return
	}

	deleted, err := s.shifts.DeleteForMemberAndDate(ctx, memberID, acc.DepartmentID, date)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("shiftRepository.DeleteForMemberAndDate: %w", err))
		return
	}

	for _, v := range victims {
		s.emitSegmentChange(ctx, producer.ActionDeleted, v)
	}

	writeJSON(ctx, fasthttp.StatusOK, bulkResponse{Status: "ok", Applied: deleted})
}

// parseAndValidateSegment runs the structural validator and writes the
// response itself on failure (done=true). Overlap is checked later, inside
// the repository transaction.
func (s *Service) parseAndValidateSegment(ctx *fasthttp.RequestCtx, excludeID int64) (*dto.ShiftSegment, bool) {
	var req segmentRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Errorf("json.Unmarshal: %w", err))
		return nil, true
	}

	if req.TeamMemberID <= 0 {
		writeError(ctx, fasthttp.StatusBadRequest, errors.New("required field 'team_member_id'"))
		return nil, true
	}
	if _, err := time.Parse(schedule.DateLayout, req.Date); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, errors.New("invalid value in field 'date' (expected YYYY-MM-DD)"))
		return nil, true
	}

	res := schedule.ValidateSegment(schedule.SegmentPayload{
		WorkType:      req.WorkType,
		FoodPayment:   req.FoodPayment,
		ShiftStart:    req.ShiftStart,
		ShiftEnd:      req.ShiftEnd,
		OvertimeStart: req.OvertimeStart,
		OvertimeEnd:   req.OvertimeEnd,
	})
	if !res.Valid {
		validationFailed(ctx, res.Errors)
		return nil, true
	}

	return &dto.ShiftSegment{
		ID:            excludeID,
		TeamMemberID:  req.TeamMemberID,
		Date:          req.Date,
		WorkType:      req.WorkType,
		FoodPayment:   req.FoodPayment,
		ShiftStart:    req.ShiftStart,
		ShiftEnd:      req.ShiftEnd,
		OvertimeStart: req.OvertimeStart,
		OvertimeEnd:   req.OvertimeEnd,
	}, false
}

func (s *Service) writeSegmentWriteError(ctx *fasthttp.RequestCtx, op string, err error) {
	switch {
	case errors.Is(err, dto.ErrShiftOverlap):
		overlapConflict(ctx, schedule.OverlapMessage)
	case errors.Is(err, dto.ErrForbidden):
		writeError(ctx, fasthttp.StatusForbidden, ErrScopeViolation)
	case errors.Is(err, dto.ErrNotFound):
		writeError(ctx, fasthttp.StatusNotFound, ErrMemberNotFound)
	default:
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("%s: %w", op, err))
	}
}

// emitSegmentChange publishes to the change feed when it is configured.
// Best-effort only: the mutation is already committed.
func (s *Service) emitSegmentChange(ctx *fasthttp.RequestCtx, action string, seg dto.ShiftSegment) {
	if s.producer == nil {
		return
	}

	if err := s.producer.ProduceSegmentChange(ctx, uuid.New(), action, seg); err != nil {
		log.Warn().Err(err).Str("action", action).Int64("segment_id", seg.ID).Msg("change feed publish failed")
	}
}

// memberInScope verifies the member exists in the caller's department;
// writes the response itself on failure.
func (s *Service) memberInScope(ctx *fasthttp.RequestCtx, memberID, departmentID int64) bool {
	m, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			writeError(ctx, fasthttp.StatusNotFound, ErrMemberNotFound)
			return false
		}

		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("memberRepository.GetByID: %w", err))
		return false
	}
	if m.DepartmentID != departmentID {
		writeError(ctx, fasthttp.StatusForbidden, ErrScopeViolation)
		return false
	}

	return true
}

func cellParams(ctx *fasthttp.RequestCtx) (int64, string, error) {
	memberID, err := strconv.ParseInt(string(ctx.QueryArgs().Peek("member_id")), 10, 64)
	if err != nil || memberID <= 0 {
		return 0, "", errors.New("invalid or missing 'member_id'")
	}

	date := string(ctx.QueryArgs().Peek("date"))
	if _, err := time.Parse(schedule.DateLayout, date); err != nil {
		return 0, "", errors.New("invalid or missing 'date' (expected YYYY-MM-DD)")
	}

	return memberID, date, nil
}
