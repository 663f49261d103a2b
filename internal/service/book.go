package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ayzikov/patres-test/internal/errs"
	"github.com/ayzikov/patres-test/internal/model"
	"github.com/ayzikov/patres-test/internal/repository"
)

// maxActiveLoans is the per-reader lending limit.
const maxActiveLoans = 3

type BookService struct {
	log     *zap.Logger
	repo    repository.BookRepository
	readers repository.ReaderRepository
}

func NewBookService(repo repository.BookRepository, readers repository.ReaderRepository, log *zap.Logger) *BookService {
	return &BookService{
		log:     log,
		repo:    repo,
		readers: readers,
	}
}

func (s *BookService) Catalog(ctx context.Context) ([]model.Book, error) {
	return s.repo.ListBooks(ctx)
}

func (s *BookService) Book(ctx context.Context, bookID int) (model.Book, error) {
	return s.repo.GetBook(ctx, bookID)
}

func (s *BookService) ReaderBooks(ctx context.Context, readerID int) ([]model.ReaderLoan, error) {
	if _, err := s.readers.GetReader(ctx, readerID); err != nil {
		return nil, err
	}
	return s.repo.ReaderLoans(ctx, readerID)
}

func (s *BookService) Create(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	return s.repo.CreateBook(ctx, req)
}

func (s *BookService) Update(ctx context.Context, bookID int, req model.UpdateBookRequest) error {
	return s.repo.UpdateBook(ctx, bookID, req)
}

func (s *BookService) Delete(ctx context.Context, bookID int) error {
	return s.repo.DeleteBook(ctx, bookID)
}

// Borrow hands a copy to the reader. All preconditions and both
// mutations run in one transaction with the book row locked first, so
// two concurrent borrows cannot both pass the copy or limit checks.
func (s *BookService) Borrow(ctx context.Context, bookID, readerID int) (model.BorrowedBook, error) {
	var loan model.BorrowedBook
	err := s.repo.WithinTx(ctx, func(tx repository.LendingTx) error {
		book, err := tx.BookForUpdate(ctx, bookID)
		if err != nil {
			return err
		}
		if book.CopiesQuantity <= 0 {
			return errs.ErrNoCopies
		}

		if _, err := tx.ReaderForUpdate(ctx, readerID); err != nil {
			return err
		}
		borrowed, err := tx.HasActiveLoan(ctx, bookID, readerID)
		if err != nil {
			return err
		}
		if borrowed {
			return errs.ErrAlreadyBorrowed
		}
		count, err := tx.CountActiveLoans(ctx, readerID)
		if err != nil {
			return err
		}
		if count >= maxActiveLoans {
			return errs.ErrBorrowLimit
		}

		if loan, err = tx.InsertLoan(ctx, bookID, readerID); err != nil {
			return err
		}
		return tx.AddCopies(ctx, bookID, -1)
	})
	if err != nil {
		return model.BorrowedBook{}, err
	}

	s.log.Debug("borrow",
		zap.Int("book_id", bookID),
		zap.Int("reader_id", readerID),
		zap.Int("loan_id", loan.ID),
	)
	return loan, nil
}

// Return closes the reader's active loan of the book and restores the
// copy, atomically with the same locking discipline as Borrow.
func (s *BookService) Return(ctx context.Context, bookID, readerID int) (model.BorrowedBook, error) {
	var loan model.BorrowedBook
	err := s.repo.WithinTx(ctx, func(tx repository.LendingTx) error {
		if _, err := tx.BookForUpdate(ctx, bookID); err != nil {
			return err
		}

		var err error
		if loan, err = tx.CloseLoan(ctx, bookID, readerID); err != nil {
			return err
		}
		return tx.AddCopies(ctx, bookID, 1)
	})
	if err != nil {
		return model.BorrowedBook{}, err
	}

	s.log.Debug("return",
		zap.Int("book_id", bookID),
		zap.Int("reader_id", readerID),
		zap.Int("loan_id", loan.ID),
	)
	return loan, nil
}
