package kit

import (
	"context"
	"log/slog"
	"time"
)

// Logging logs every call of the named endpoint at debug level, and failures at warn.
func Logging(logger *slog.Logger, name string) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Endpoint) Endpoint {
		return func(ctx context.Context, request any) (any, error) {
			start := time.Now()
			resp, err := next(ctx, request)
			attrs := []any{
				"endpoint", name,
				"transport", GetTransport(ctx),
				"duration", time.Since(start),
			}
			if id := GetRequestID(ctx); id != "" {
				attrs = append(attrs, "request_id", id)
			}
			if err != nil {
				logger.Warn("endpoint failed", append(attrs, "error", err)...)
			} else {
				logger.Debug("endpoint done", attrs...)
			}
			return resp, err
		}
	}
}
