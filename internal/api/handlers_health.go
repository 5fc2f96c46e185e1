package api

import (
	"github.com/valyala/fasthttp"
)

// @Summary Liveness probe
// @Tags    Service
// @Produce json
// @Success 200 {object} okResponse
// @Router  /health [get]
func (s *Service) healthHandler(ctx *fasthttp.RequestCtx) {
	ok(ctx, "alive")
}
