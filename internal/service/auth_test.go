package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ayzikov/patres-test/config"
	"github.com/ayzikov/patres-test/internal/errs"
	"github.com/ayzikov/patres-test/internal/model"
	"github.com/ayzikov/patres-test/internal/repository"
	"github.com/ayzikov/patres-test/internal/service"
	"github.com/ayzikov/patres-test/pkg/auth"
)

type fakeLibrarianRepo struct {
	byEmail map[string]model.Librarian
}

var _ repository.LibrarianRepository = (*fakeLibrarianRepo)(nil)

func (f *fakeLibrarianRepo) CreateLibrarian(_ context.Context, librarian model.Librarian) (model.Librarian, error) {
	if _, ok := f.byEmail[librarian.Email]; ok {
		return model.Librarian{}, errs.ErrEmailTaken
	}
	librarian.ID = len(f.byEmail) + 1
	f.byEmail[librarian.Email] = librarian
	return librarian, nil
}

func (f *fakeLibrarianRepo) GetLibrarianByEmail(_ context.Context, email string) (model.Librarian, error) {
	if l, ok := f.byEmail[email]; ok {
		return l, nil
	}
	return model.Librarian{}, errs.ErrNotFound
}

func testJWTConfig() config.JWT {
	return config.JWT{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}
}

func newAuthService(cfg config.JWT, repo repository.LibrarianRepository) *service.AuthService {
	return service.NewAuthService(repo, cfg, zap.NewExample().Named("test"))
}

func TestHashPassword(t *testing.T) {
	t.Parallel()
	svc := newAuthService(testJWTConfig(), &fakeLibrarianRepo{})

	hash, err := svc.HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)
	require.True(t, svc.VerifyPassword("s3cret-pass", hash))
	require.False(t, svc.VerifyPassword("wrong-pass", hash))

	// bcrypt salts every hash
	again, err := svc.HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, hash, again)
}

func TestParseAccessToken(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		svc := newAuthService(testJWTConfig(), &fakeLibrarianRepo{})

		token, err := svc.IssueAccessToken("lib@example.com")
		require.NoError(t, err)

		claims, err := svc.ParseAccessToken(token)
		require.NoError(t, err)
		require.Equal(t, "lib@example.com", claims.Subject)
		require.Equal(t, auth.ScopeAccess, claims.Scope)
	})

	t.Run("expired", func(t *testing.T) {
		cfg := testJWTConfig()
		cfg.AccessTTL = -time.Minute
		svc := newAuthService(cfg, &fakeLibrarianRepo{})

		token, err := svc.IssueAccessToken("lib@example.com")
		require.NoError(t, err)

		_, err = svc.ParseAccessToken(token)
		require.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("tampered signature", func(t *testing.T) {
		svc := newAuthService(testJWTConfig(), &fakeLibrarianRepo{})

		token, err := svc.IssueAccessToken("lib@example.com")
		require.NoError(t, err)

		last := token[len(token)-1]
		if last == 'a' {
			last = 'b'
		} else {
			last = 'a'
		}
		_, err = svc.ParseAccessToken(token[:len(token)-1] + string(last))
		require.Error(t, err)
		require.NotErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		svc := newAuthService(testJWTConfig(), &fakeLibrarianRepo{})

		token, err := svc.IssueRefreshToken("lib@example.com")
		require.NoError(t, err)

		_, err = svc.ParseAccessToken(token)
		require.Error(t, err)
	})

	t.Run("refresh scope rejected even with shared secret", func(t *testing.T) {
		cfg := testJWTConfig()
		cfg.RefreshSecret = cfg.AccessSecret
		svc := newAuthService(cfg, &fakeLibrarianRepo{})

		token, err := svc.IssueRefreshToken("lib@example.com")
		require.NoError(t, err)

		_, err = svc.ParseAccessToken(token)
		require.Error(t, err)
		require.Contains(t, err.Error(), "scope")
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := &fakeLibrarianRepo{byEmail: make(map[string]model.Librarian)}
	svc := newAuthService(testJWTConfig(), repo)

	hash, err := svc.HashPassword("s3cret-pass")
	require.NoError(t, err)
	_, err = repo.CreateLibrarian(ctx, model.Librarian{
		Name:     "Ann",
		Email:    "ann@example.com",
		Password: hash,
	})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		pair, err := svc.Login(ctx, "ann@example.com", "s3cret-pass")
		require.NoError(t, err)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)
		require.Equal(t, "bearer", pair.TokenType)

		claims, err := svc.ParseAccessToken(pair.AccessToken)
		require.NoError(t, err)
		require.Equal(t, "ann@example.com", claims.Subject)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "s3cret-pass")
		require.ErrorIs(t, err, errs.ErrInvalidCred)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "ann@example.com", "wrong-pass")
		require.ErrorIs(t, err, errs.ErrInvalidCred)
	})
}
