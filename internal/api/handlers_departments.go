package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/valyala/fasthttp"

	"github.com/bahadricoz/shift/internal/dto"
)

type departmentRequest struct {
	Name string `json:"name" example:"Operations"`
}

// @Summary List departments
// @Tags    Departments
// @Produce json
// @Success 200 {array} dto.Department
// @Failure 500 {object} errorResponse
// @Router  /departments [get]
func (s *Service) listDepartments(ctx *fasthttp.RequestCtx) {
	rows, err := s.departments.List(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("departmentRepository.List: %w", err))
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, rows)
}

// @Summary Create a department
// @Tags    Departments
// @Accept  json
// @Produce json
// @Param   request body departmentRequest true "department"
// @Success 200 {object} idResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse "name already taken"
// @Failure 500 {object} errorResponse
// @Router  /departments [post]
func (s *Service) createDepartment(ctx *fasthttp.RequestCtx) {
	var req departmentRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Errorf("json.Unmarshal: %w", err))
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(ctx, fasthttp.StatusBadRequest, errors.New("required field 'name'"))
		return
	}

	id, err := s.departments.Create(ctx, name)
	if err != nil {
		if errors.Is(err, dto.ErrAlreadyExists) {
			writeError(ctx, fasthttp.StatusConflict, errors.New("department already exists"))
			return
		}

		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("departmentRepository.Create: %w", err))
		return
	}

	created(ctx, id)
}

// @Summary Delete a department
// @Tags    Departments
// @Produce json
// @Param   id path int true "department id"
// @Success 200 {object} okResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router  /departments/{id} [delete]
func (s *Service) deleteDepartment(ctx *fasthttp.RequestCtx) {
	id, err := pathID(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return
	}

	if err := s.departments.Delete(ctx, id); err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			writeError(ctx, fasthttp.StatusNotFound, ErrDepartmentNotFound)
			return
		}

		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("departmentRepository.Delete: %w", err))
		return
	}

	ok(ctx, "department deleted")
}

func pathID(ctx *fasthttp.RequestCtx) (int64, error) {
	raw, _ := ctx.UserValue("id").(string)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id in path")
	}

	return id, nil
}
