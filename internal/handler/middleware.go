package handler

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ayzikov/patres-test/pkg/auth"
)

const (
	AuthorizationHeader = "Authorization"
	bearer              = "Bearer "
)

// JwtAuthentication is the librarian gate: it validates the bearer
// token and resolves the subject email to a librarian principal.
// Expired tokens get 401 with a challenge hint, anything else wrong
// with the token gets 403.
func (h *Handler) JwtAuthentication(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authorization := c.Request().Header.Get(AuthorizationHeader)
		if authorization == "" {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return echo.NewHTTPError(http.StatusUnauthorized, "No Authorization Header")
		}
		if !strings.HasPrefix(authorization, bearer) {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization Header")
		}
		tokenStr := strings.TrimPrefix(authorization, bearer)

		claims, err := h.authSvc.ParseAccessToken(tokenStr)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
				return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
			}
			return echo.NewHTTPError(http.StatusForbidden, "could not validate credentials")
		}

		librarian, err := h.librarianSvc.ByEmail(c.Request().Context(), claims.Subject)
		if err != nil {
			return httpError(err)
		}

		req := c.Request()
		ctx := auth.SetPrincipal(req.Context(), auth.Principal{
			ID:    librarian.ID,
			Name:  librarian.Name,
			Email: librarian.Email,
		})
		c.SetRequest(req.WithContext(ctx))

		return next(c)
	}
}
