package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/yakoovad/hackathon-registration/internal/auth"
	"github.com/yakoovad/hackathon-registration/internal/model"
	"github.com/yakoovad/hackathon-registration/pkg/logger"
	"go.uber.org/zap"
)

func ZapLoggerMiddleware(l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			req := c.Request()
			res := c.Response()

			requestID := res.Header().Get(echo.HeaderXRequestID)

			reqLogger := l.With(
				zap.String("request_id", requestID),
			)

			c.SetRequest(req.WithContext(logger.WithLogger(req.Context(), reqLogger)))

			err := next(c)

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.String("remote_ip", c.RealIP()),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
				zap.Int64("bytes_in", req.ContentLength),
				zap.Int64("bytes_out", res.Size),
			}

			if err != nil {
				fields = append(fields, zap.Error(err))
				reqLogger.Error("request failed", fields...)
			} else {
				reqLogger.Info("request completed", fields...)
			}

			return err
		}
	}
}

// AuthMiddleware admits requests carrying a bearer token of one of the given types.
func AuthMiddleware(issuer *auth.Issuer, types ...auth.TokenType) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")

			if !found || issuer == nil || !issuer.Allows(strings.TrimSpace(token), types...) {
				logger.FromContext(c.Request().Context()).Warn("unauthorized request", zap.String("uri", c.Request().RequestURI))
				return c.JSON(http.StatusUnauthorized, &model.ErrorResponse{
					Error: "Unauthorized.",
					Code:  "UNAUTHORIZED",
				})
			}

			return next(c)
		}
	}
}
