// Package store is the data-access layer. Every method takes the request
// context; Tx scopes a group of calls to one storage transaction.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound   = errors.New("store: record not found")
	ErrDuplicate  = errors.New("store: duplicate key")
	ErrReferenced = errors.New("store: foreign key violation")
)

// Store wraps a gorm handle, either the pool or an open transaction.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Tx runs fn inside one storage transaction. The transaction commits when fn
// returns nil and rolls back on any error or panic, so no partial write of fn
// is ever visible.
func (s *Store) Tx(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// Ping checks the underlying connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *Store) first(ctx context.Context, dest any, column string, id uuid.UUID) error {
	return translate(s.conn(ctx).Where(clause.Eq{Column: clause.Column{Name: column}, Value: id}).First(dest).Error)
}

func (s *Store) deleteWhere(ctx context.Context, model any, column string, id uuid.UUID) (int64, error) {
	res := s.conn(ctx).Where(clause.Eq{Column: clause.Column{Name: column}, Value: id}).Delete(model)
	return res.RowsAffected, translate(res.Error)
}

func (s *Store) deleteOne(ctx context.Context, model any, column string, id uuid.UUID) error {
	n, err := s.deleteWhere(ctx, model, column, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// update writes every column of value except its owner and creation time.
func (s *Store) update(ctx context.Context, value any) error {
	return translate(s.conn(ctx).Model(value).Select("*").Omit("UserID", "CreatedAt", clause.Associations).Updates(value).Error)
}

func desc(column string) clause.OrderByColumn {
	return clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: true}
}

// translate maps driver specific failures onto the store sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrDuplicate), errors.Is(err, ErrReferenced):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", ErrReferenced, err)
	}

	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062:
			return fmt.Errorf("%w: %v", ErrDuplicate, err)
		case 1451, 1452:
			return fmt.Errorf("%w: %v", ErrReferenced, err)
		}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %v", ErrDuplicate, err)
		case "23503":
			return fmt.Errorf("%w: %v", ErrReferenced, err)
		}
	}

	// sqlite reports constraint failures only through the message text
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: %v", ErrReferenced, err)
	}
	return err
}
