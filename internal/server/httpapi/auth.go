package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/jobkeeper/internal/server/services"
	"github.com/labstack/echo/v4"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type sessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type sessionResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int64       `json:"expires_in"`
	User         sessionUser `json:"user"`
}

func toSessionResponse(s *services.Session) sessionResponse {
	return sessionResponse{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.ExpiresIn.Seconds()),
		User:         sessionUser{ID: s.User.ID, Email: s.User.Email},
	}
}

func (s *Server) handleSignUp(c echo.Context) error {
	var req credentials
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	sess, err := s.users.SignUp(c.Request().Context(), req.Email, req.Password)
	s.metrics.RecordAuth("signup", err)
	if err != nil {
		return err
	}
	s.logger.Info(c.Request().Context(), "user signed up", "user_id", sess.User.ID)
	return c.JSON(http.StatusOK, toSessionResponse(sess))
}

// handleToken serves both grant types of /auth/v1/token.
func (s *Server) handleToken(c echo.Context) error {
	ctx := c.Request().Context()
	grant := c.QueryParam("grant_type")

	var (
		sess *services.Session
		err  error
	)
	switch grant {
	case "password":
		var req credentials
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}
		sess, err = s.users.SignIn(ctx, req.Email, req.Password)
	case "refresh_token":
		var req refreshRequest
		if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "refresh_token is required")
		}
		sess, err = s.users.Refresh(ctx, req.RefreshToken)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported grant_type")
	}

	s.metrics.RecordAuth(grant, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(sess))
}
