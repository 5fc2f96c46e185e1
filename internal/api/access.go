package api

import (
	"errors"
	"fmt"

	"github.com/valyala/fasthttp"

	"github.com/bahadricoz/shift/internal/access"
)

const accessKey = "access"

// asViewer resolves the ?token= query parameter and stores the access
// context; any valid token (admin or viewer) passes.
func (s *Service) asViewer(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		acc, done := s.resolveAccess(ctx)
		if done {
			return
		}

		ctx.SetUserValue(accessKey, acc)
		next(ctx)
	}
}

// asAdmin additionally requires the admin role; viewer tokens get 403.
func (s *Service) asAdmin(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		acc, done := s.resolveAccess(ctx)
		if done {
			return
		}
		if !acc.CanWrite() {
			writeError(ctx, fasthttp.StatusForbidden, ErrAdminRequired)
			return
		}

		ctx.SetUserValue(accessKey, acc)
		next(ctx)
	}
}

// resolveAccess returns (nil, true) when it already wrote a response. The
// bootstrap condition gets its own code so a fresh deployment can be told
// apart from a denied token.
func (s *Service) resolveAccess(ctx *fasthttp.RequestCtx) (*access.Context, bool) {
	token := string(ctx.QueryArgs().Peek("token"))

	acc, err := s.resolver.Resolve(ctx, token)
	if err != nil {
		switch {
		case errors.Is(err, access.ErrNoLinks):
			writeJSON(ctx, fasthttp.StatusUnauthorized, errorResponse{
				Code:    "BOOTSTRAP_REQUIRED",
				Message: "no access links provisioned yet — call POST /access/bootstrap first",
			})
		case errors.Is(err, access.ErrTokenRequired):
			writeError(ctx, fasthttp.StatusUnauthorized, err)
		case errors.Is(err, access.ErrInvalidToken):
			writeError(ctx, fasthttp.StatusUnauthorized, err)
		default:
			writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("resolver.Resolve: %w", err))
		}
		return nil, true
	}

	return acc, false
}

func accessFrom(ctx *fasthttp.RequestCtx) *access.Context {
	acc, _ := ctx.UserValue(accessKey).(*access.Context)
	return acc
}
