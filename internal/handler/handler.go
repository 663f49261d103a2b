package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/ayzikov/patres-test/internal/errs"
	md "github.com/ayzikov/patres-test/pkg/middleware"
	"github.com/ayzikov/patres-test/pkg/validate"
	_ "github.com/ayzikov/patres-test/swagger"
)

type Handler struct {
	bookSvc      BookService
	readerSvc    ReaderService
	librarianSvc LibrarianService
	authSvc      AuthService
	log          *zap.Logger
}

func New(bookSvc BookService, readerSvc ReaderService, librarianSvc LibrarianService, authSvc AuthService, log *zap.Logger) *Handler {
	return &Handler{
		bookSvc:      bookSvc,
		readerSvc:    readerSvc,
		librarianSvc: librarianSvc,
		authSvc:      authSvc,
		log:          log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()

	api := e.Group("",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	authAPI := api.Group("/auth")
	authAPI.POST("/registration/reader", h.RegisterReader)
	authAPI.POST("/registration/librarian", h.RegisterLibrarian)
	authAPI.POST("/login", h.Login)

	books := api.Group("/books")
	books.GET("", h.GetBooks)
	books.GET("/:id", h.GetBook)
	books.GET("/reader/:id", h.GetReaderBooks)

	catalog := books.Group("", h.JwtAuthentication)
	catalog.POST("", h.CreateBook)
	catalog.PATCH("/:id", h.UpdateBook)
	catalog.DELETE("/:id", h.DeleteBook)
	catalog.POST("/borrow/:bookId/reader/:readerId", h.BorrowBook)
	catalog.POST("/return/:bookId/reader/:readerId", h.ReturnBook)

	users := api.Group("/users")
	users.GET("/readers", h.GetReaders)
	users.GET("/readers/:id", h.GetReader)
	users.PATCH("/readers/:id", h.UpdateReader)
	users.DELETE("/readers/:id", h.DeleteReader)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// httpError maps the error taxonomy to statuses: missing entities are
// 400 by convention, rule violations 409, the rest 500.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errs.IsConflict(err):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
