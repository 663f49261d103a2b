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

type ReaderRepository interface {
	CreateReader(ctx context.Context, req model.CreateReaderRequest) (model.Reader, error)
	ListReaders(ctx context.Context) ([]model.Reader, error)
	GetReader(ctx context.Context, readerID int) (model.Reader, error)
	UpdateReader(ctx context.Context, readerID int, req model.UpdateReaderRequest) error
	DeleteReader(ctx context.Context, readerID int) error
}

type readerRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewReaderRepository(db *sqlx.DB, log *zap.Logger) (*readerRepository, error) {
	return &readerRepository{
		db:  db,
		log: log.Named("reader-repo"),
	}, nil
}

func (r *readerRepository) CreateReader(ctx context.Context, req model.CreateReaderRequest) (model.Reader, error) {
	query, args, err := qb.Insert(readerTableName).
		Columns("name", "email").
		Values(req.Name, req.Email).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Reader{}, err
	}

	var reader model.Reader
	if err := r.db.GetContext(ctx, &reader, query, args...); err != nil {
		r.log.Error("CreateReader", zap.String("q", query), zap.Any("args", args))
		return model.Reader{}, mapConstraintErr(err)
	}
	return reader, nil
}

func (r *readerRepository) ListReaders(ctx context.Context) ([]model.Reader, error) {
	query, args, err := qb.Select("id", "name", "email").
		From(readerTableName).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	readers := make([]model.Reader, 0)
	if err := r.db.SelectContext(ctx, &readers, query, args...); err != nil {
		return nil, err
	}
	return readers, nil
}

func (r *readerRepository) GetReader(ctx context.Context, readerID int) (model.Reader, error) {
	query, args, err := qb.Select("id", "name", "email").
		From(readerTableName).
		Where(sq.Eq{"id": readerID}).
		ToSql()
	if err != nil {
		return model.Reader{}, err
	}

	var reader model.Reader
	if err := r.db.GetContext(ctx, &reader, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reader{}, errs.ErrNotFound
		}
		return model.Reader{}, err
	}
	return reader, nil
}

// UpdateReader applies merge-patch semantics, same as UpdateBook.
func (r *readerRepository) UpdateReader(ctx context.Context, readerID int, req model.UpdateReaderRequest) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	query, args, err := qb.Select("id", "name", "email").
		From(readerTableName).
		Where(sq.Eq{"id": readerID}).
		Suffix("for update").
		ToSql()
	if err != nil {
		return err
	}
	var reader model.Reader
	if err := tx.GetContext(ctx, &reader, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.ErrNotFound
		}
		return err
	}

	reader.Apply(req)

	query, args, err = qb.Update(readerTableName).
		Set("name", reader.Name).
		Set("email", reader.Email).
		Where(sq.Eq{"id": readerID}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return mapConstraintErr(err)
	}

	return tx.Commit()
}

func (r *readerRepository) DeleteReader(ctx context.Context, readerID int) error {
	query, args, err := qb.Delete(readerTableName).
		Where(sq.Eq{"id": readerID}).
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
