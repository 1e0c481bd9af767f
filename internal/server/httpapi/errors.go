package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/labstack/echo/v4"
)

type errorBody struct {
	Error string `json:"error"`
}

// statusOf maps service errors to an HTTP status and the message clients see.
func statusOf(err error) (int, string) {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		if msg, ok := he.Message.(string); ok {
			return he.Code, msg
		}
		return he.Code, http.StatusText(he.Code)
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrBadFilter):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrUnknownTable), errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, common.ErrAlreadyExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, common.ErrTokenExpired.Error()
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return http.StatusUnauthorized, common.ErrRefreshTokenExpired.Error()
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, err.Error()
	default:
		return http.StatusInternalServerError, common.ErrorInternal.Error()
	}
}

// errorHandler writes every failure as {"error": "..."}.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, msg := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(c.Request().Context(), "request failed", "path", c.Path(), "err", err)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(status)
	} else {
		werr = c.JSON(status, errorBody{Error: msg})
	}
	if werr != nil {
		s.logger.Error(c.Request().Context(), "writing error response", "err", werr)
	}
}
