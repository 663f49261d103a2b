package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ayzikov/patres-test/config"
	"github.com/ayzikov/patres-test/internal/errs"
	"github.com/ayzikov/patres-test/internal/model"
	"github.com/ayzikov/patres-test/internal/repository"
	"github.com/ayzikov/patres-test/pkg/auth"
)

// AuthService owns password hashing and signed-token issuance. Access
// and refresh tokens carry the same claim shape but are signed with
// separate secrets, so leaking one key does not let anyone forge
// tokens of the other scope.
type AuthService struct {
	log        *zap.Logger
	librarians repository.LibrarianRepository
	cfg        config.JWT
}

func NewAuthService(librarians repository.LibrarianRepository, cfg config.JWT, log *zap.Logger) *AuthService {
	return &AuthService{
		log:        log,
		librarians: librarians,
		cfg:        cfg,
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(hash), nil
}

func (s *AuthService) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *AuthService) IssueAccessToken(subject string) (string, error) {
	return s.issueToken(subject, auth.ScopeAccess, s.cfg.AccessTTL, s.cfg.AccessSecret)
}

func (s *AuthService) IssueRefreshToken(subject string) (string, error) {
	return s.issueToken(subject, auth.ScopeRefresh, s.cfg.RefreshTTL, s.cfg.RefreshSecret)
}

func (s *AuthService) issueToken(subject, scope string, ttl time.Duration, secret string) (string, error) {
	now := time.Now()
	claims := &auth.Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAccessToken validates the signature and expiry against the
// access secret. The raw jwt error is returned so the caller can tell
// an expired token (401) from a malformed one (403).
func (s *AuthService) ParseAccessToken(tokenStr string) (*auth.Claims, error) {
	claims := new(auth.Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.AccessSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Scope != auth.ScopeAccess {
		return nil, errors.Errorf("unexpected token scope %q", claims.Scope)
	}
	return claims, nil
}

// Login checks the credentials against the stored bcrypt hash and
// issues a token pair. Unknown email and bad password are reported the
// same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (model.TokenPair, error) {
	librarian, err := s.librarians.GetLibrarianByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.TokenPair{}, errs.ErrInvalidCred
		}
		return model.TokenPair{}, err
	}
	if !s.VerifyPassword(password, librarian.Password) {
		return model.TokenPair{}, errs.ErrInvalidCred
	}

	access, err := s.IssueAccessToken(librarian.Email)
	if err != nil {
		return model.TokenPair{}, errors.Wrap(err, "issue access token")
	}
	refresh, err := s.IssueRefreshToken(librarian.Email)
	if err != nil {
		return model.TokenPair{}, errors.Wrap(err, "issue refresh token")
	}

	s.log.Debug("login", zap.String("email", librarian.Email))
	return model.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}
