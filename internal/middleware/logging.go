package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// Client-visible failures log at warn, anything else that escapes a handler
// at error.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []any{
				"procedure", req.Spec().Procedure,
				"user_id", GetUserID(ctx), // empty before auth
				"duration_ms", time.Since(start).Milliseconds(),
			}
			var connectErr *connect.Error
			switch {
			case err == nil:
				slog.Info("RPC ok", attrs...)
			case errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal:
				slog.Warn("RPC error", append(attrs, "code", connectErr.Code(), "error", connectErr.Message())...)
			default:
				slog.Error("RPC error", append(attrs, "error", err)...)
			}
			return resp, err
		}
	}
}
