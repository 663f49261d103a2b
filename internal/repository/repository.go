package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ayzikov/patres-test/internal/errs"
	"github.com/ayzikov/patres-test/internal/model"
)

const (
	bookTableName         = `book`
	readerTableName       = `reader`
	librarianTableName    = `librarian`
	borrowedBookTableName = `borrowed_book`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type BookRepository interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	GetBook(ctx context.Context, bookID int) (model.Book, error)
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	UpdateBook(ctx context.Context, bookID int, req model.UpdateBookRequest) error
	DeleteBook(ctx context.Context, bookID int) error
	ReaderLoans(ctx context.Context, readerID int) ([]model.ReaderLoan, error)
	WithinTx(ctx context.Context, fn func(tx LendingTx) error) error
}

// LendingTx is the transactional scope every borrow/return runs in.
// BookForUpdate and ReaderForUpdate take row locks; callers must lock
// the book row before the reader row so concurrent transactions on the
// same pair serialize instead of deadlocking.
type LendingTx interface {
	BookForUpdate(ctx context.Context, bookID int) (model.Book, error)
	ReaderForUpdate(ctx context.Context, readerID int) (model.Reader, error)
	HasActiveLoan(ctx context.Context, bookID, readerID int) (bool, error)
	CountActiveLoans(ctx context.Context, readerID int) (int, error)
	InsertLoan(ctx context.Context, bookID, readerID int) (model.BorrowedBook, error)
	CloseLoan(ctx context.Context, bookID, readerID int) (model.BorrowedBook, error)
	AddCopies(ctx context.Context, bookID, delta int) error
}

type bookRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewBookRepository(db *sqlx.DB, log *zap.Logger) (*bookRepository, error) {
	return &bookRepository{
		db:  db,
		log: log.Named("book-repo"),
	}, nil
}

func (r *bookRepository) ListBooks(ctx context.Context) ([]model.Book, error) {
	query, args, err := qb.Select("id", "name", "author", "publication_year", "isbn", "copies_quantity", "description").
		From(bookTableName).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	books := make([]model.Book, 0)
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *bookRepository) GetBook(ctx context.Context, bookID int) (model.Book, error) {
	query, args, err := qb.Select("id", "name", "author", "publication_year", "isbn", "copies_quantity", "description").
		From(bookTableName).
		Where(sq.Eq{"id": bookID}).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, err
	}
	return book, nil
}

func (r *bookRepository) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	copies := 1
	if req.CopiesQuantity != nil {
		copies = *req.CopiesQuantity
	}
	query, args, err := qb.Insert(bookTableName).
		Columns("name", "author", "publication_year", "isbn", "copies_quantity", "description").
		Values(req.Name, req.Author, req.PublicationYear, req.ISBN, copies, req.Description).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		r.log.Error("CreateBook", zap.String("q", query), zap.Any("args", args))
		return model.Book{}, mapConstraintErr(err)
	}
	return book, nil
}

// UpdateBook applies merge-patch semantics: the current row is read
// under lock and every unset request field keeps its stored value.
func (r *bookRepository) UpdateBook(ctx context.Context, bookID int, req model.UpdateBookRequest) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	var book model.Book
	query, args, err := qb.Select("id", "name", "author", "publication_year", "isbn", "copies_quantity", "description").
		From(bookTableName).
		Where(sq.Eq{"id": bookID}).
		Suffix("for update").
		ToSql()
	if err != nil {
		return err
	}
	if err := tx.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.ErrNotFound
		}
		return err
	}

	book.Apply(req)

	query, args, err = qb.Update(bookTableName).
		Set("name", book.Name).
		Set("author", book.Author).
		Set("publication_year", book.PublicationYear).
		Set("isbn", book.ISBN).
		Set("copies_quantity", book.CopiesQuantity).
		Set("description", book.Description).
		Where(sq.Eq{"id": bookID}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return mapConstraintErr(err)
	}

	return tx.Commit()
}

func (r *bookRepository) DeleteBook(ctx context.Context, bookID int) error {
	query, args, err := qb.Delete(bookTableName).
		Where(sq.Eq{"id": bookID}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapConstraintErr(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *bookRepository) ReaderLoans(ctx context.Context, readerID int) ([]model.ReaderLoan, error) {
	query, args, err := qb.Select("bb.id", "bb.borrow_date", "bb.return_date", "bb.is_active", "bb.book_id", "bb.reader_id",
		"b.name as book_name", "b.author as book_author").
		From(borrowedBookTableName + " bb").
		Join(bookTableName + " b on b.id = bb.book_id").
		Where(sq.Eq{"bb.reader_id": readerID}).
		Where(sq.Eq{"bb.is_active": true}).
		OrderBy("bb.id").
		ToSql()
	if err != nil {
		return nil, err
	}

	loans := make([]model.ReaderLoan, 0)
	if err := r.db.SelectContext(ctx, &loans, query, args...); err != nil {
		return nil, err
	}
	return loans, nil
}

// WithinTx runs fn inside one transaction; it commits on nil and rolls
// back on error or panic.
func (r *bookRepository) WithinTx(ctx context.Context, fn func(tx LendingTx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if err := fn(&lendingTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

type lendingTx struct {
	tx *sqlx.Tx
}

func (t *lendingTx) BookForUpdate(ctx context.Context, bookID int) (model.Book, error) {
	query, args, err := qb.Select("id", "name", "author", "publication_year", "isbn", "copies_quantity", "description").
		From(bookTableName).
		Where(sq.Eq{"id": bookID}).
		Suffix("for update").
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := t.tx.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errors.Wrap(errs.ErrNotFound, "book")
		}
		return model.Book{}, err
	}
	return book, nil
}

func (t *lendingTx) ReaderForUpdate(ctx context.Context, readerID int) (model.Reader, error) {
	query, args, err := qb.Select("id", "name", "email").
		From(readerTableName).
		Where(sq.Eq{"id": readerID}).
		Suffix("for update").
		ToSql()
	if err != nil {
		return model.Reader{}, err
	}

	var reader model.Reader
	if err := t.tx.GetContext(ctx, &reader, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reader{}, errors.Wrap(errs.ErrNotFound, "reader")
		}
		return model.Reader{}, err
	}
	return reader, nil
}

func (t *lendingTx) HasActiveLoan(ctx context.Context, bookID, readerID int) (bool, error) {
	q := `
	select exists (
		select 1 from borrowed_book
		where book_id = $1 and reader_id = $2 and is_active
	)`
	var exists bool
	if err := t.tx.QueryRowContext(ctx, q, bookID, readerID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (t *lendingTx) CountActiveLoans(ctx context.Context, readerID int) (int, error) {
	q := `
	select count(*) from borrowed_book
	where reader_id = $1 and is_active
`
	var count int
	if err := t.tx.QueryRowContext(ctx, q, readerID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (t *lendingTx) InsertLoan(ctx context.Context, bookID, readerID int) (model.BorrowedBook, error) {
	query, args, err := qb.Insert(borrowedBookTableName).
		Columns("book_id", "reader_id").
		Values(bookID, readerID).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.BorrowedBook{}, err
	}

	var loan model.BorrowedBook
	if err := t.tx.GetContext(ctx, &loan, query, args...); err != nil {
		return model.BorrowedBook{}, err
	}
	return loan, nil
}

func (t *lendingTx) CloseLoan(ctx context.Context, bookID, readerID int) (model.BorrowedBook, error) {
	q := `
	update borrowed_book
	set is_active = false, return_date = current_date
	where book_id = $1 and reader_id = $2 and is_active
	returning id, borrow_date, return_date, is_active, book_id, reader_id`

	var loan model.BorrowedBook
	if err := t.tx.GetContext(ctx, &loan, q, bookID, readerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BorrowedBook{}, errs.ErrNotBorrowed
		}
		return model.BorrowedBook{}, err
	}
	return loan, nil
}

func (t *lendingTx) AddCopies(ctx context.Context, bookID, delta int) error {
	q := `
	update book
	set copies_quantity = copies_quantity + $2
	where id = $1`
	_, err := t.tx.ExecContext(ctx, q, bookID, delta)
	return err
}

// mapConstraintErr translates postgres constraint violations into the
// error taxonomy.
func mapConstraintErr(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		switch pgErr.ConstraintName {
		case "book_isbn_key":
			return errs.ErrISBNTaken
		case "reader_email_key", "librarian_email_key":
			return errs.ErrEmailTaken
		}
	case pgerrcode.ForeignKeyViolation:
		return errs.ErrHasLoans
	}
	return err
}
