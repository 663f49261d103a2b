package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ayzikov/patres-test/internal/model"
)

func (h *Handler) GetReaders(c echo.Context) error {
	readers, err := h.readerSvc.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, readers)
}

func (h *Handler) GetReader(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	reader, err := h.readerSvc.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, reader)
}

// UpdateReader is a merge patch: fields absent from the body keep
// their stored values.
func (h *Handler) UpdateReader(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req model.UpdateReaderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.readerSvc.Update(c.Request().Context(), id, req); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteReader(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.readerSvc.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
