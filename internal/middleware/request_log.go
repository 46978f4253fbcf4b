package middleware

import (
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"
    "go.uber.org/zap"
)

// RequestID assigns a UUID to requests that arrive without X-Request-Id.
// The gateway forwards the header so both tiers log the same id.
func RequestID() echo.MiddlewareFunc {
    return echomw.RequestIDWithConfig(echomw.RequestIDConfig{
        Generator: func() string { return uuid.NewString() },
    })
}

// RequestLogger writes one log line per request.
func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()
            err := next(c)
            if err != nil {
                c.Error(err)
            }
            res := c.Response()
            fields := []zap.Field{
                zap.String("method", c.Request().Method),
                zap.String("route", c.Path()),
                zap.String("uri", c.Request().RequestURI),
                zap.Int("status", res.Status),
                zap.Int64("latency_ms", time.Since(start).Milliseconds()),
                zap.String("request_id", res.Header().Get(echo.HeaderXRequestID)),
                zap.String("sharer", sharerID(c)),
            }
            switch {
            case res.Status >= 500:
                log.Error("request", fields...)
            case res.Status >= 400:
                log.Warn("request", fields...)
            default:
                log.Info("request", fields...)
            }
            return nil
        }
    }
}
