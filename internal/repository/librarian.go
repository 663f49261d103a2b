package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ayzikov/patres-test/internal/errs"
	"github.com/ayzikov/patres-test/internal/model"
)

type LibrarianRepository interface {
	CreateLibrarian(ctx context.Context, librarian model.Librarian) (model.Librarian, error)
	GetLibrarianByEmail(ctx context.Context, email string) (model.Librarian, error)
}

type librarianRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewLibrarianRepository(db *sqlx.DB, log *zap.Logger) (*librarianRepository, error) {
	return &librarianRepository{
		db:  db,
		log: log.Named("librarian-repo"),
	}, nil
}

func (r *librarianRepository) CreateLibrarian(ctx context.Context, librarian model.Librarian) (model.Librarian, error) {
	query, args, err := qb.Insert(librarianTableName).
		Columns("name", "email", "password").
		Values(librarian.Name, librarian.Email, librarian.Password).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Librarian{}, err
	}

	var created model.Librarian
	if err := r.db.GetContext(ctx, &created, query, args...); err != nil {
		r.log.Error("CreateLibrarian", zap.String("q", query))
		return model.Librarian{}, mapConstraintErr(err)
	}
	return created, nil
}

func (r *librarianRepository) GetLibrarianByEmail(ctx context.Context, email string) (model.Librarian, error) {
	query, args, err := qb.Select("id", "name", "email", "password").
		From(librarianTableName).
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return model.Librarian{}, err
	}

	var librarian model.Librarian
	if err := r.db.GetContext(ctx, &librarian, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Librarian{}, errs.ErrNotFound
		}
		return model.Librarian{}, err
	}
	return librarian, nil
}
