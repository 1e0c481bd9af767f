package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/jobkeeper/internal/server/services"
	"github.com/labstack/echo/v4"
)

type presignedResponse struct {
	Key string `json:"key,omitempty"`
	URL string `json:"url"`
}

func (s *Server) handleUploadURL(c echo.Context) error {
	key, url, err := s.storage.UploadURL(c.Request().Context(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, presignedResponse{Key: key, URL: url})
}

func (s *Server) handleDownloadURL(c echo.Context) error {
	key := c.QueryParam("key")
	if key == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "key is required")
	}
	if !services.OwnsKey(userID(c), key) {
		return echo.NewHTTPError(http.StatusNotFound, "object not found")
	}

	url, err := s.storage.DownloadURL(c.Request().Context(), key)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, presignedResponse{URL: url})
}
