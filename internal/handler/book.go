package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ayzikov/patres-test/internal/model"
)

func pathID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.Errorf("%s is invalid", name).Error())
	}
	return id, nil
}

func (h *Handler) GetBooks(c echo.Context) error {
	books, err := h.bookSvc.Catalog(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) GetBook(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	book, err := h.bookSvc.Book(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

// GetReaderBooks returns the reader's active loans joined with the
// borrowed books.
func (h *Handler) GetReaderBooks(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	loans, err := h.bookSvc.ReaderBooks(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, loans)
}

// CreateBook godoc
//
//	@Summary	Add a book to the catalog
//	@Tags		books
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		input	body		model.CreateBookRequest	true	"book"
//	@Success	201		{object}	model.Book
//	@Router		/books [post]
func (h *Handler) CreateBook(c echo.Context) error {
	var req model.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	book, err := h.bookSvc.Create(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, book)
}

func (h *Handler) UpdateBook(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req model.UpdateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.bookSvc.Update(c.Request().Context(), id, req); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteBook(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.bookSvc.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// BorrowBook godoc
//
//	@Summary	Hand a copy to a reader
//	@Tags		lending
//	@Security	BearerAuth
//	@Produce	json
//	@Param		bookId		path		int	true	"book id"
//	@Param		readerId	path		int	true	"reader id"
//	@Success	201			{object}	model.BorrowedBook
//	@Failure	409			{object}	echo.HTTPError
//	@Router		/books/borrow/{bookId}/reader/{readerId} [post]
func (h *Handler) BorrowBook(c echo.Context) error {
	bookID, err := pathID(c, "bookId")
	if err != nil {
		return err
	}
	readerID, err := pathID(c, "readerId")
	if err != nil {
		return err
	}

	loan, err := h.bookSvc.Borrow(c.Request().Context(), bookID, readerID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, loan)
}

// ReturnBook godoc
//
//	@Summary	Take a copy back from a reader
//	@Tags		lending
//	@Security	BearerAuth
//	@Produce	json
//	@Param		bookId		path		int	true	"book id"
//	@Param		readerId	path		int	true	"reader id"
//	@Success	200			{object}	model.BorrowedBook
//	@Failure	409			{object}	echo.HTTPError
//	@Router		/books/return/{bookId}/reader/{readerId} [post]
func (h *Handler) ReturnBook(c echo.Context) error {
	bookID, err := pathID(c, "bookId")
	if err != nil {
		return err
	}
	readerID, err := pathID(c, "readerId")
	if err != nil {
		return err
	}

	loan, err := h.bookSvc.Return(c.Request().Context(), bookID, readerID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, loan)
}
