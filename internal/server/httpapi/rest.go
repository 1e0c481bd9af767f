package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/labstack/echo/v4"
)

func readBody(c echo.Context) ([]byte, error) {
	b, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable request body")
	}
	return b, nil
}

// wantsRepresentation reports whether the client asked for the written rows
// back (Prefer: return=representation).
func wantsRepresentation(c echo.Context) bool {
	return c.Request().Header.Get(common.PreferHeaderName) == common.ReturnRepresentation
}

func writeRows(c echo.Context, status int, rows []json.RawMessage) error {
	if rows == nil {
		rows = []json.RawMessage{}
	}
	return c.JSON(status, rows)
}

func (s *Server) handleSelect(c echo.Context) error {
	table := c.Param("table")
	rows, err := s.records.Select(c.Request().Context(), userID(c), table, c.QueryParams())
	s.metrics.RecordRowOp(table, "select", err)
	if err != nil {
		return err
	}
	return writeRows(c, http.StatusOK, rows)
}

func (s *Server) handleInsert(c echo.Context) error {
	table := c.Param("table")
	body, err := readBody(c)
	if err != nil {
		return err
	}

	rows, err := s.records.Insert(c.Request().Context(), userID(c), table, body)
	s.metrics.RecordRowOp(table, "insert", err)
	if err != nil {
		return err
	}
	if !wantsRepresentation(c) {
		return c.NoContent(http.StatusCreated)
	}
	return writeRows(c, http.StatusCreated, rows)
}

// handleUpdate answers an update of a missing row with an empty array.
func (s *Server) handleUpdate(c echo.Context) error {
	table := c.Param("table")
	body, err := readBody(c)
	if err != nil {
		return err
	}

	rows, err := s.records.Update(c.Request().Context(), userID(c), table, c.QueryParams(), body)
	s.metrics.RecordRowOp(table, "update", err)
	if errors.Is(err, common.ErrorNotFound) {
		rows, err = nil, nil
	}
	if err != nil {
		return err
	}
	if !wantsRepresentation(c) {
		return c.NoContent(http.StatusNoContent)
	}
	return writeRows(c, http.StatusOK, rows)
}

// handleDelete is idempotent: deleting a missing row succeeds.
func (s *Server) handleDelete(c echo.Context) error {
	table := c.Param("table")
	err := s.records.Delete(c.Request().Context(), userID(c), table, c.QueryParams())
	s.metrics.RecordRowOp(table, "delete", err)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
