package handler

import (
	"context"

	"github.com/ayzikov/patres-test/internal/model"
	"github.com/ayzikov/patres-test/internal/service"
	"github.com/ayzikov/patres-test/pkg/auth"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

var (
	_ BookService      = (*service.BookService)(nil)
	_ ReaderService    = (*service.ReaderService)(nil)
	_ LibrarianService = (*service.LibrarianService)(nil)
	_ AuthService      = (*service.AuthService)(nil)
)

type BookService interface {
	Catalog(ctx context.Context) ([]model.Book, error)
	Book(ctx context.Context, bookID int) (model.Book, error)
	ReaderBooks(ctx context.Context, readerID int) ([]model.ReaderLoan, error)
	Create(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	Update(ctx context.Context, bookID int, req model.UpdateBookRequest) error
	Delete(ctx context.Context, bookID int) error
	Borrow(ctx context.Context, bookID, readerID int) (model.BorrowedBook, error)
	Return(ctx context.Context, bookID, readerID int) (model.BorrowedBook, error)
}

type ReaderService interface {
	Create(ctx context.Context, req model.CreateReaderRequest) (model.Reader, error)
	List(ctx context.Context) ([]model.Reader, error)
	Get(ctx context.Context, readerID int) (model.Reader, error)
	Update(ctx context.Context, readerID int, req model.UpdateReaderRequest) error
	Delete(ctx context.Context, readerID int) error
}

type LibrarianService interface {
	Register(ctx context.Context, req model.CreateLibrarianRequest) (model.Librarian, error)
	ByEmail(ctx context.Context, email string) (model.Librarian, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (model.TokenPair, error)
	ParseAccessToken(tokenStr string) (*auth.Claims, error)
}
