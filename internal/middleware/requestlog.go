package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CtxRequestID holds the request id for handlers that log.
const CtxRequestID = "request_id"

// RequestID reuses an incoming X-Request-ID or generates a UUID, echoes
// it on the response and stores it under CtxRequestID.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Set(CtxRequestID, rid)
			c.Response().Header().Set(echo.HeaderXRequestID, rid)
			return next(c)
		}
	}
}

// RequestLogger writes one structured line per request.
func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			req := c.Request()
			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("request_id", RequestIDOf(c)),
			}
			if uid, ok := CurrentUserID(c); ok {
				fields = append(fields, zap.Uint64("user_id", uid))
			}
			switch {
			case c.Response().Status >= 500:
				log.Error("request", fields...)
			case c.Response().Status >= 400:
				log.Warn("request", fields...)
			default:
				log.Info("request", fields...)
			}
			return nil
		}
	}
}

// RequestIDOf returns the id stored by RequestID, or "".
func RequestIDOf(c echo.Context) string {
	s, _ := c.Get(CtxRequestID).(string)
	return s
}
