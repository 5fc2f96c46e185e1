package api

import (
	"encoding/json"
	"errors"

	"github.com/valyala/fasthttp"
)

var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrMemberNotFound     = errors.New("team member not found")
	ErrSegmentNotFound    = errors.New("shift segment not found")
	ErrScopeViolation     = errors.New("resource belongs to another department")
	ErrAdminRequired      = errors.New("this link is read-only; an admin link is required for changes")
)

type okResponse struct {
	Status string `json:"status" example:"ok"`
	Msg    string `json:"msg" example:"done"`
}

type errorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

type idResponse struct {
	Status string `json:"status" example:"ok"`
	ID     int64  `json:"id" example:"42"`
}

// bulkResponse reports the outcome of a bulk operation: items are
// independent, so partial success is normal.
type bulkResponse struct {
	Status  string   `json:"status" example:"ok"`
	Applied int64    `json:"applied"`
	Errors  []string `json:"errors,omitempty"`
}

func writeJSON(ctx *fasthttp.RequestCtx, statusCode int, body any) {
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.SetStatusCode(statusCode)

	_ = json.NewEncoder(ctx).Encode(body)
}

func ok(ctx *fasthttp.RequestCtx, msg string) {
	writeJSON(ctx, fasthttp.StatusOK, okResponse{Status: "ok", Msg: msg})
}

func created(ctx *fasthttp.RequestCtx, id int64) {
	writeJSON(ctx, fasthttp.StatusOK, idResponse{Status: "ok", ID: id})
}

func writeError(ctx *fasthttp.RequestCtx, httpStatus int, err error) {
	writeJSON(ctx, httpStatus, errorResponse{
		Code:    fasthttp.StatusMessage(httpStatus),
		Message: err.Error(),
	})
}

// validationFailed returns the full error list so the caller can show the
// user everything wrong at once.
func validationFailed(ctx *fasthttp.RequestCtx, errs []string) {
	writeJSON(ctx, fasthttp.StatusBadRequest, errorResponse{
		Code:    "VALIDATION_ERROR",
		Message: "segment is not valid",
		Errors:  errs,
	})
}

// overlapConflict is deliberately a single message: any one overlap blocks
// the write, more would be noise.
func overlapConflict(ctx *fasthttp.RequestCtx, msg string) {
	writeJSON(ctx, fasthttp.StatusConflict, errorResponse{
		Code:    "OVERLAP_CONFLICT",
		Message: msg,
	})
}
