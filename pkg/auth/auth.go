package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v4"
)

const (
	ScopeAccess  = "access"
	ScopeRefresh = "refresh"
)

// Claims is the signed token payload: registered claims carry the
// expiry and the subject (librarian email), Scope discriminates
// access tokens from refresh tokens.
type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

type contextKey int

const principalKey contextKey = iota + 1

// Principal is the authenticated librarian identity resolved from a
// validated bearer token.
type Principal struct {
	ID    int
	Name  string
	Email string
}

func SetPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}
