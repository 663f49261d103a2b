package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ayzikov/patres-test/internal/model"
	"github.com/ayzikov/patres-test/internal/repository"
)

type ReaderService struct {
	log  *zap.Logger
	repo repository.ReaderRepository
}

func NewReaderService(repo repository.ReaderRepository, log *zap.Logger) *ReaderService {
	return &ReaderService{
		log:  log,
		repo: repo,
	}
}

func (s *ReaderService) Create(ctx context.Context, req model.CreateReaderRequest) (model.Reader, error) {
	return s.repo.CreateReader(ctx, req)
}

func (s *ReaderService) List(ctx context.Context) ([]model.Reader, error) {
	return s.repo.ListReaders(ctx)
}

func (s *ReaderService) Get(ctx context.Context, readerID int) (model.Reader, error) {
	return s.repo.GetReader(ctx, readerID)
}

func (s *ReaderService) Update(ctx context.Context, readerID int, req model.UpdateReaderRequest) error {
	return s.repo.UpdateReader(ctx, readerID, req)
}

func (s *ReaderService) Delete(ctx context.Context, readerID int) error {
	return s.repo.DeleteReader(ctx, readerID)
}
