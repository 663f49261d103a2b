package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ayzikov/patres-test/internal/model"
	"github.com/ayzikov/patres-test/internal/repository"
)

type LibrarianService struct {
	log  *zap.Logger
	repo repository.LibrarianRepository
	auth *AuthService
}

func NewLibrarianService(repo repository.LibrarianRepository, auth *AuthService, log *zap.Logger) *LibrarianService {
	return &LibrarianService{
		log:  log,
		repo: repo,
		auth: auth,
	}
}

// Register stores the librarian with the password replaced by its
// bcrypt hash; the plaintext never leaves this method.
func (s *LibrarianService) Register(ctx context.Context, req model.CreateLibrarianRequest) (model.Librarian, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return model.Librarian{}, err
	}
	return s.repo.CreateLibrarian(ctx, model.Librarian{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
	})
}

func (s *LibrarianService) ByEmail(ctx context.Context, email string) (model.Librarian, error) {
	return s.repo.GetLibrarianByEmail(ctx, email)
}
