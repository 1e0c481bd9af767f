package httpapi

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/labstack/echo/v4"
)

const userIDKey = "user_id"

func (s *Server) metricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().URL.Path == "/metrics" {
			return next(c)
		}
		done := s.metrics.Begin(c.Request().Method)
		if err := next(c); err != nil {
			c.Error(err)
		}
		done(c.Path(), c.Response().Status)
		return nil
	}
}

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		if err := next(c); err != nil {
			// let the error handler write the response so the status is final
			c.Error(err)
		}

		req := c.Request()
		res := c.Response()
		s.logger.Info(req.Context(), "http request",
			"method", req.Method,
			"uri", req.RequestURI,
			"status", res.Status,
			"size", res.Size,
			"duration", time.Since(start).String(),
			"request_id", res.Header().Get(echo.HeaderXRequestID),
		)
		return nil
	}
}

// apiKeyMiddleware checks the apikey header when the server has one configured.
func (s *Server) apiKeyMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.apiKey == "" {
			return next(c)
		}
		got := c.Request().Header.Get(common.APIKeyHeaderName)
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.apiKey)) != 1 {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid api key")
		}
		return next(c)
	}
}

// authMiddleware resolves the bearer token to its user and stores the id in
// the echo context.
func (s *Server) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(common.AuthorizationHeaderName)
		if header == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "authorization required")
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
		}

		claims, err := s.users.Authenticate(token)
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				return common.ErrTokenExpired
			}
			return common.ErrInvalidToken
		}

		c.Set(userIDKey, claims.Subject)
		return next(c)
	}
}

func userID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}
