package store

import (
	"context"

	"household_ledger/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// TransactionFilter narrows a transaction listing. Nil fields are ignored and
// the rest are combined with AND. Limit <= 0 means no limit.
type TransactionFilter struct {
	StartDate  *domain.Date
	EndDate    *domain.Date
	CategoryID *uuid.UUID
	Type       *domain.TransactionType
	Offset     int
	Limit      int
}

func (s *Store) CreateTransaction(ctx context.Context, t *domain.Transaction) error {
	return translate(s.conn(ctx).Create(t).Error)
}

// TransactionByID looks the transaction up regardless of owner.
func (s *Store) TransactionByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	var t domain.Transaction
	if err := s.first(ctx, &t, "transaction_id", id); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTransactions returns the owner's transactions ordered by date then
// creation time, both descending.
func (s *Store) ListTransactions(ctx context.Context, owner uuid.UUID, f TransactionFilter) ([]domain.Transaction, error) {
	q := s.conn(ctx).Where("user_id = ?", owner)
	if f.StartDate != nil {
		q = q.Where(clause.Gte{Column: clause.Column{Name: "date"}, Value: *f.StartDate})
	}
	if f.EndDate != nil {
		q = q.Where(clause.Lte{Column: clause.Column{Name: "date"}, Value: *f.EndDate})
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.Type != nil {
		q = q.Where(clause.Eq{Column: clause.Column{Name: "type"}, Value: string(*f.Type)})
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	txs := []domain.Transaction{}
	err := q.Order(desc("date")).Order(desc("created_at")).Find(&txs).Error
	return txs, translate(err)
}

func (s *Store) UpdateTransaction(ctx context.Context, t *domain.Transaction) error {
	return s.update(ctx, t)
}

func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return s.deleteOne(ctx, &domain.Transaction{}, "transaction_id", id)
}
