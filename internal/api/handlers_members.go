package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/valyala/fasthttp"

	"github.com/bahadricoz/shift/internal/dto"
)

type memberRequest struct {
	ExternalID  string `json:"team_member_id" example:"1024"` // manually assigned id, unique within the department
	DisplayName string `json:"team_member" example:"Bahadir Coz"`
}

// @Summary List the department's team members
// @Tags    Members
// @Produce json
// @Success 200 {array} dto.TeamMember
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router  /members [get]
func (s *Service) listMembers(ctx *fasthttp.RequestCtx) {
	acc := accessFrom(ctx)

	rows, err := s.members.ListByDepartment(ctx, acc.DepartmentID)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("memberRepository.ListByDepartment: %w", err))
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, rows)
}

// @Summary Add a team member to the department
// @Tags    Members
// @Accept  json
// @Produce json
// @Param   request body memberRequest true "member"
// @Success 200 {object} idResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse "team_member_id already used in this department"
// @Failure 500 {object} errorResponse
// @Router  /members [post]
func (s *Service) createMember(ctx *fasthttp.RequestCtx) {
	acc := accessFrom(ctx)

	req, err := parseMemberRequest(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return
	}

	id, err := s.members.Create(ctx, dto.TeamMember{
		DepartmentID: acc.DepartmentID,
		ExternalID:   req.ExternalID,
		DisplayName:  req.DisplayName,
	})
	if err != nil {
		if errors.Is(err, dto.ErrAlreadyExists) {
			writeError(ctx, fasthttp.StatusConflict, errors.New("team member id already used in this department"))
			return
		}

		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("memberRepository.Create: %w", err))
		return
	}

	created(ctx, id)
}

// @Summary Update a team member
// @Tags    Members
// @Accept  json
// @Produce json
// @Param   id path int true "member db id"
// @Param   request body memberRequest true "member"
// @Success 200 {object} okResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router  /members/{id} [put]
func (s *Service) updateMember(ctx *fasthttp.RequestCtx) {
	acc := accessFrom(ctx)

	id, err := pathID(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return
	}

	req, err := parseMemberRequest(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return
	}

	err = s.members.Update(ctx, dto.TeamMember{
		ID:           id,
		DepartmentID: acc.DepartmentID,
		ExternalID:   req.ExternalID,
		DisplayName:  req.DisplayName,
	})
	if err != nil {
		switch {
		case errors.Is(err, dto.ErrNotFound):
			writeError(ctx, fasthttp.StatusNotFound, ErrMemberNotFound)
		case errors.Is(err, dto.ErrAlreadyExists):
			writeError(ctx, fasthttp.StatusConflict, errors.New("team member id already used in this department"))
		default:
			writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("memberRepository.Update: %w", err))
		}
		return
	}

	ok(ctx, "team member updated")
}

// @Summary Remove a team member (and their segments)
// @Tags    Members
// @Produce json
// @Param   id path int true "member db id"
// @Success 200 {object} okResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router  /members/{id} [delete]
func (s *Service) deleteMember(ctx *fasthttp.RequestCtx) {
	acc := accessFrom(ctx)

	id, err := pathID(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return
	}

	if err := s.members.Delete(ctx, id, acc.DepartmentID); err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			writeError(ctx, fasthttp.StatusNotFound, ErrMemberNotFound)
			return
		}

		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("memberRepository.Delete: %w", err))
		return
	}

	ok(ctx, "team member deleted")
}

func parseMemberRequest(ctx *fasthttp.RequestCtx) (*memberRequest, error) {
	var req memberRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	req.ExternalID = strings.TrimSpace(req.ExternalID)
	req.DisplayName = strings.TrimSpace(req.DisplayName)

	if req.ExternalID == "" {
		return nil, errors.New("required field 'team_member_id'")
	}
	if req.DisplayName == "" {
		return nil, errors.New("required field 'team_member'")
	}

	return &req, nil
}
