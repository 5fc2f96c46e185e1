package api

import (
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"
)

func RecoveryMiddleware(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		defer func() {
			if rvr := recover(); rvr != nil {
				log.Error().
					Interface("panic", rvr).
					Str("method", string(ctx.Method())).
					Str("url", ctx.URI().String()).
					Str("remote_addr", ctx.RemoteAddr().String()).
					Str("stack_trace", string(debug.Stack())).
					Msg("recovered from panic")

				ctx.Error("Internal Server Error", fasthttp.StatusInternalServerError)
			}
		}()

		next(ctx)
	}
}

// LoggingMiddleware logs every request with a request id.
func LoggingMiddleware(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		requestID, ok := ctx.UserValue("request-id").(string)
		if !ok {
			requestID = uuid.New().String()
			ctx.SetUserValue("request-id", requestID)
		}

		begin := time.Now()
		next(ctx)

		log.Info().
			Str("request_id", requestID).
			Bytes("method", ctx.Method()).
			Str("url", ctx.URI().String()).
			Int("status", ctx.Response.StatusCode()).
			Dur("latency", time.Since(begin)).
			Msg("completed request")
	}
}

func CORS(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")
		ctx.Response.Header.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		ctx.Response.Header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if string(ctx.Method()) == "OPTIONS" {
			ctx.SetStatusCode(fasthttp.StatusNoContent)
			return
		}

		next(ctx)
	}
}
