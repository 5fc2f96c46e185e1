package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/valyala/fasthttp"

	"github.com/bahadricoz/shift/internal/access"
	"github.com/bahadricoz/shift/internal/dto"
)

type bootstrapRequest struct {
	DepartmentID   *int64 `json:"department_id,omitempty"`
	DepartmentName string `json:"department_name,omitempty"`
	SetupKey       string `json:"setup_key,omitempty"`
	Label          string `json:"label,omitempty"`
}

type linkView struct {
	Role  string `json:"role"`
	Token string `json:"token"`
	URL   string `json:"url"`
}

type bootstrapResponse struct {
	Status     string         `json:"status"`
	Department dto.Department `json:"department"`
	Admin      linkView       `json:"admin"`
	Viewer     linkView       `json:"viewer"`
}

// @Summary Provision the admin/viewer link pair for a department
// @Tags    Access
// @Accept  json
// @Produce json
// @Param   request body bootstrapRequest true "department by id or name; setup_key once links exist"
// @Success 200 {object} bootstrapResponse
// @Failure 400 {object} errorResponse
// @Failure 403 {object} errorResponse "setup key required or wrong"
// @Failure 500 {object} errorResponse
// @Router  /access/bootstrap [post]
//
// Open exactly once: while no links exist anywhere, anyone reaching the
// service may create the first pair. Afterwards the configured setup key
// is required (recovery mode). Links are generated once per
// (department, role) and never rotated — repeated calls return the same
// pair.
func (s *Service) bootstrapAccess(ctx *fasthttp.RequestCtx) {
	var req bootstrapRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Errorf("json.Unmarshal: %w", err))
		return
	}

	n, err := s.links.Count(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("linkRepository.Count: %w", err))
		return
	}
	if n > 0 {
		if s.setupKey == "" {
			writeError(ctx, fasthttp.StatusForbidden, errors.New("links already provisioned and no setup key is configured"))
			return
		}
		if req.SetupKey != s.setupKey {
			writeError(ctx, fasthttp.StatusForbidden, errors.New("invalid setup key"))
			return
		}
	}

	dept, err := s.resolveBootstrapDepartment(ctx, req)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return
	}

	adminLink, err := s.ensureLink(ctx, dept.ID, access.RoleAdmin, req.Label)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, err)
		return
	}
	viewerLink, err := s.ensureLink(ctx, dept.ID, access.RoleViewer, req.Label)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, bootstrapResponse{
		Status:     "ok",
		Department: *dept,
		Admin:      s.linkView(adminLink),
		Viewer:     s.linkView(viewerLink),
	})
}

// @Summary The department's share links (admin only)
// @Tags    Access
// @Produce json
// @Success 200 {array} linkView
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router  /access/links [get]
func (s *Service) listAccessLinks(ctx *fasthttp.RequestCtx) {
	acc := accessFrom(ctx)

	var out []linkView
	for _, role := range []string{access.RoleAdmin, access.RoleViewer} {
		link, err := s.links.GetByDepartmentAndRole(ctx, acc.DepartmentID, role)
		if err != nil {
			if errors.Is(err, dto.ErrNotFound) {
				continue
			}
			writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("linkRepository.GetByDepartmentAndRole: %w", err))
			return
		}
		out = append(out, s.linkView(link))
	}

	writeJSON(ctx, fasthttp.StatusOK, out)
}

func (s *Service) resolveBootstrapDepartment(ctx *fasthttp.RequestCtx, req bootstrapRequest) (*dto.Department, error) {
	if req.DepartmentID != nil {
		dept, err := s.departments.GetByID(ctx, *req.DepartmentID)
		if err != nil {
			if errors.Is(err, dto.ErrNotFound) {
				return nil, ErrDepartmentNotFound
			}
			return nil, fmt.Errorf("departmentRepository.GetByID: %w", err)
		}
		return dept, nil
	}

	name := strings.TrimSpace(req.DepartmentName)
	if name == "" {
		return nil, errors.New("department_id or department_name is required")
	}

	dept, err := s.departments.GetByName(ctx, name)
	if err == nil {
		return dept, nil
	}
	if !errors.Is(err, dto.ErrNotFound) {
		return nil, fmt.Errorf("departmentRepository.GetByName: %w", err)
	}

	id, err := s.departments.Create(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("departmentRepository.Create: %w", err)
	}

	return &dto.Department{ID: id, Name: name}, nil
}

// ensureLink returns the existing (department, role) link or creates it.
func (s *Service) ensureLink(ctx *fasthttp.RequestCtx, departmentID int64, role, label string) (*dto.AccessLink, error) {
	link, err := s.links.GetByDepartmentAndRole(ctx, departmentID, role)
	if err == nil {
		return link, nil
	}
	if !errors.Is(err, dto.ErrNotFound) {
		return nil, fmt.Errorf("linkRepository.GetByDepartmentAndRole: %w", err)
	}

	token, err := access.NewToken()
	if err != nil {
		return nil, fmt.Errorf("access.NewToken: %w", err)
	}

	newLink := dto.AccessLink{
		Token:        token,
		DepartmentID: departmentID,
		Role:         role,
	}
	if label = strings.TrimSpace(label); label != "" {
		newLink.Label = &label
	}

	stored, err := s.links.Create(ctx, newLink)
	if err != nil {
		// Lost a race with a concurrent bootstrap — the pair exists now.
		if errors.Is(err, dto.ErrAlreadyExists) {
			return s.links.GetByDepartmentAndRole(ctx, departmentID, role)
		}
		return nil, fmt.Errorf("linkRepository.Create: %w", err)
	}

	return stored, nil
}

func (s *Service) linkView(link *dto.AccessLink) linkView {
	return linkView{
		Role:  link.Role,
		Token: link.Token,
		URL:   access.BuildURL(s.baseURL, link.Token),
	}
}
