package ledger

import (
	"context"

	"household_ledger/internal/domain"
	"household_ledger/internal/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// TransactionInput is the payload for recording a transaction. Type may be
// omitted, in which case it is taken from the category.
type TransactionInput struct {
	CategoryID uuid.UUID               `json:"category_id" validate:"required"`
	Amount     int64                   `json:"amount" validate:"gt=0"`
	Type       *domain.TransactionType `json:"type" validate:"omitempty,oneof=income expense"`
	Date       *domain.Date            `json:"date" validate:"required"`
	Memo       *string                 `json:"memo"`
}

// TransactionPatch is a partial transaction update. Absent fields are
// untouched; a null memo clears it.
type TransactionPatch struct {
	CategoryID domain.Optional[uuid.UUID]              `json:"category_id"`
	Amount     domain.Optional[int64]                  `json:"amount"`
	Type       domain.Optional[domain.TransactionType] `json:"type"`
	Date       domain.Optional[domain.Date]            `json:"date"`
	Memo       domain.Optional[string]                 `json:"memo"`
}

// TransactionQuery filters a transaction listing. Nil filters are ignored.
// A nil Limit means the default page size.
type TransactionQuery struct {
	StartDate  *domain.Date
	EndDate    *domain.Date
	CategoryID *uuid.UUID
	Type       *domain.TransactionType
	Skip       int
	Limit      *int
}

// CreateTransaction records a transaction against one of owner's categories.
func (s *Service) CreateTransaction(ctx context.Context, owner uuid.UUID, in TransactionInput) (*domain.Transaction, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	txn := &domain.Transaction{
		ID:         uuid.New(),
		UserID:     owner,
		CategoryID: in.CategoryID,
		Amount:     in.Amount,
		Date:       *in.Date,
		Memo:       in.Memo,
		CreatedAt:  s.timestamp(),
	}

	fields := logrus.Fields{"user_id": owner, "transaction_id": txn.ID, "category_id": in.CategoryID}
	err := s.inTx(ctx, "create transaction", fields, func(tx *store.Store) error {
		cat, err := s.ownedCategory(ctx, tx, owner, in.CategoryID)
		if err != nil {
			return err
		}
		if txn.Type, err = mirrorType(cat, in.Type); err != nil {
			return err
		}
		return tx.CreateTransaction(ctx, txn)
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(fields).WithField("amount", txn.Amount).Info("Transaction created")
	return txn, nil
}

// GetTransaction returns one of owner's transactions.
func (s *Service) GetTransaction(ctx context.Context, owner, id uuid.UUID) (*domain.Transaction, error) {
	txn, err := s.ownedTransaction(ctx, s.store, owner, id)
	if err != nil {
		return nil, s.classify("get transaction", err, logrus.Fields{"user_id": owner, "transaction_id": id})
	}
	return txn, nil
}

// ListTransactions returns a page of owner's transactions, latest date
// first and latest creation first within a day.
func (s *Service) ListTransactions(ctx context.Context, owner uuid.UUID, q TransactionQuery) ([]domain.Transaction, error) {
	limit := s.defaultPageSize
	if q.Limit != nil {
		limit = *q.Limit
	}
	if limit < 1 || limit > s.maxPageSize {
		return nil, validationError("limit", "limit must be between 1 and %d", s.maxPageSize)
	}
	if q.Skip < 0 {
		return nil, validationError("skip", "skip must not be negative")
	}
	if q.Type != nil && !q.Type.Valid() {
		return nil, validationError("type", "type must be one of income, expense")
	}

	txns, err := s.store.ListTransactions(ctx, owner, store.TransactionFilter{
		StartDate:  q.StartDate,
		EndDate:    q.EndDate,
		CategoryID: q.CategoryID,
		Type:       q.Type,
		Offset:     q.Skip,
		Limit:      limit,
	})
	if err != nil {
		return nil, s.internal("list transactions", err, logrus.Fields{"user_id": owner})
	}
	return txns, nil
}

// UpdateTransaction applies patch to one of owner's transactions. Moving it
// to another category checks that category like CreateTransaction does.
func (s *Service) UpdateTransaction(ctx context.Context, owner, id uuid.UUID, patch TransactionPatch) (*domain.Transaction, error) {
	if err := s.checkTransactionPatch(patch); err != nil {
		return nil, err
	}

	var txn *domain.Transaction
	fields := logrus.Fields{"user_id": owner, "transaction_id": id}
	err := s.inTx(ctx, "update transaction", fields, func(tx *store.Store) error {
		var err error
		if txn, err = s.ownedTransaction(ctx, tx, owner, id); err != nil {
			return err
		}
		if patch.CategoryID.Present() {
			txn.CategoryID = patch.CategoryID.Value
		}
		cat, err := s.ownedCategory(ctx, tx, owner, txn.CategoryID)
		if err != nil {
			return err
		}
		if txn.Type, err = mirrorType(cat, patch.Type.Ptr()); err != nil {
			return err
		}
		if patch.Amount.Present() {
			txn.Amount = patch.Amount.Value
		}
		if patch.Date.Present() {
			txn.Date = patch.Date.Value
		}
		if patch.Memo.Set {
			txn.Memo = patch.Memo.Ptr()
		}
		return tx.UpdateTransaction(ctx, txn)
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(fields).Info("Transaction updated")
	return txn, nil
}

func (s *Service) checkTransactionPatch(p TransactionPatch) error {
	for _, f := range []struct {
		name string
		null bool
	}{
		{"category_id", p.CategoryID.Null},
		{"amount", p.Amount.Null},
		{"type", p.Type.Null},
		{"date", p.Date.Null},
	} {
		if err := notNull(f.name, f.null); err != nil {
			return err
		}
	}
	if p.CategoryID.Present() && p.CategoryID.Value == uuid.Nil {
		return validationError("category_id", "category_id is required")
	}
	if p.Amount.Present() {
		if err := s.checkVar("amount", p.Amount.Value, "gt=0"); err != nil {
			return err
		}
	}
	if p.Type.Present() && !p.Type.Value.Valid() {
		return validationError("type", "type must be one of income, expense")
	}
	return nil
}

// DeleteTransaction removes one of owner's transactions.
func (s *Service) DeleteTransaction(ctx context.Context, owner, id uuid.UUID) error {
	fields := logrus.Fields{"user_id": owner, "transaction_id": id}
	err := s.inTx(ctx, "delete transaction", fields, func(tx *store.Store) error {
		if _, err := s.ownedTransaction(ctx, tx, owner, id); err != nil {
			return err
		}
		return s.lookupErr("transaction", tx.DeleteTransaction(ctx, id))
	})
	if err != nil {
		return err
	}
	s.log.WithFields(fields).Info("Transaction deleted")
	return nil
}

func (s *Service) ownedTransaction(ctx context.Context, st *store.Store, owner, id uuid.UUID) (*domain.Transaction, error) {
	txn, err := st.TransactionByID(ctx, id)
	if err != nil {
		return nil, s.lookupErr("transaction", err)
	}
	if txn.UserID != owner {
		return nil, forbidden("transaction")
	}
	return txn, nil
}

// mirrorType returns the category's type, rejecting a requested type that
// disagrees with it.
func mirrorType(cat *domain.Category, requested *domain.TransactionType) (domain.TransactionType, error) {
	if requested != nil && *requested != cat.Type {
		return "", validationError("type", "type must match the category type %q", cat.Type)
	}
	return cat.Type, nil
}
