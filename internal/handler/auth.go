package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ayzikov/patres-test/internal/errs"
	"github.com/ayzikov/patres-test/internal/model"
)

// RegisterReader godoc
//
//	@Summary	Register a reader
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		input	body		model.CreateReaderRequest	true	"reader"
//	@Success	201		{object}	model.Reader
//	@Router		/auth/registration/reader [post]
func (h *Handler) RegisterReader(c echo.Context) error {
	var req model.CreateReaderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reader, err := h.readerSvc.Create(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, reader)
}

// RegisterLibrarian godoc
//
//	@Summary	Register a librarian
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		input	body		model.CreateLibrarianRequest	true	"librarian"
//	@Success	201		{object}	model.Librarian
//	@Router		/auth/registration/librarian [post]
func (h *Handler) RegisterLibrarian(c echo.Context) error {
	var req model.CreateLibrarianRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	librarian, err := h.librarianSvc.Register(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, librarian)
}

// Login godoc
//
//	@Summary	Issue an access/refresh token pair
//	@Tags		auth
//	@Accept		x-www-form-urlencoded
//	@Produce	json
//	@Param		username	formData	string	true	"librarian email"
//	@Param		password	formData	string	true	"password"
//	@Success	200			{object}	model.TokenPair
//	@Router		/auth/login [post]
func (h *Handler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pair, err := h.authSvc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidCred) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pair)
}
