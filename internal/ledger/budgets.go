package ledger

import (
	"context"
	"errors"

	"household_ledger/internal/domain"
	"household_ledger/internal/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// BudgetInput is the payload for planning a monthly budget. Month may be any
// day of the month; it is stored as the first.
type BudgetInput struct {
	CategoryID uuid.UUID    `json:"category_id" validate:"required"`
	Amount     int64        `json:"amount" validate:"gt=0"`
	Month      *domain.Date `json:"month" validate:"required"`
}

// BudgetPatch is a partial budget update. Absent fields are untouched.
type BudgetPatch struct {
	CategoryID domain.Optional[uuid.UUID]   `json:"category_id"`
	Amount     domain.Optional[int64]       `json:"amount"`
	Month      domain.Optional[domain.Date] `json:"month"`
}

// BudgetQuery filters a budget listing. Nil filters are ignored.
type BudgetQuery struct {
	Month      *domain.Date
	CategoryID *uuid.UUID
}

const duplicateBudget = "a budget for this category and month already exists"

// CreateBudget plans a budget for one of owner's categories. There is at
// most one budget per category and month.
func (s *Service) CreateBudget(ctx context.Context, owner uuid.UUID, in BudgetInput) (*domain.Budget, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	budget := &domain.Budget{
		ID:         uuid.New(),
		UserID:     owner,
		CategoryID: in.CategoryID,
		Amount:     in.Amount,
		Month:      in.Month.FirstOfMonth(),
		CreatedAt:  s.timestamp(),
	}

	fields := logrus.Fields{"user_id": owner, "budget_id": budget.ID, "category_id": in.CategoryID}
	err := s.inTx(ctx, "create budget", fields, func(tx *store.Store) error {
		if _, err := s.ownedCategory(ctx, tx, owner, in.CategoryID); err != nil {
			return err
		}
		if err := s.ensureNoBudget(ctx, tx, budget); err != nil {
			return err
		}
		return budgetWriteErr(tx.CreateBudget(ctx, budget))
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(fields).WithField("month", budget.Month.String()).Info("Budget created")
	return budget, nil
}

// GetBudget returns one of owner's budgets.
func (s *Service) GetBudget(ctx context.Context, owner, id uuid.UUID) (*domain.Budget, error) {
	budget, err := s.ownedBudget(ctx, s.store, owner, id)
	if err != nil {
		return nil, s.classify("get budget", err, logrus.Fields{"user_id": owner, "budget_id": id})
	}
	return budget, nil
}

// ListBudgets returns owner's budgets, latest month first.
func (s *Service) ListBudgets(ctx context.Context, owner uuid.UUID, q BudgetQuery) ([]domain.Budget, error) {
	filter := store.BudgetFilter{CategoryID: q.CategoryID}
	if q.Month != nil {
		month := q.Month.FirstOfMonth()
		filter.Month = &month
	}
	budgets, err := s.store.ListBudgets(ctx, owner, filter)
	if err != nil {
		return nil, s.internal("list budgets", err, logrus.Fields{"user_id": owner})
	}
	return budgets, nil
}

// UpdateBudget applies patch to one of owner's budgets.
func (s *Service) UpdateBudget(ctx context.Context, owner, id uuid.UUID, patch BudgetPatch) (*domain.Budget, error) {
	if err := s.checkBudgetPatch(patch); err != nil {
		return nil, err
	}

	var budget *domain.Budget
	fields := logrus.Fields{"user_id": owner, "budget_id": id}
	err := s.inTx(ctx, "update budget", fields, func(tx *store.Store) error {
		var err error
		if budget, err = s.ownedBudget(ctx, tx, owner, id); err != nil {
			return err
		}
		moved := false
		if patch.CategoryID.Present() && patch.CategoryID.Value != budget.CategoryID {
			if _, err := s.ownedCategory(ctx, tx, owner, patch.CategoryID.Value); err != nil {
				return err
			}
			budget.CategoryID = patch.CategoryID.Value
			moved = true
		}
		if patch.Month.Present() {
			month := patch.Month.Value.FirstOfMonth()
			moved = moved || !month.Equal(budget.Month.Time)
			budget.Month = month
		}
		if patch.Amount.Present() {
			budget.Amount = patch.Amount.Value
		}
		if moved {
			if err := s.ensureNoBudget(ctx, tx, budget); err != nil {
				return err
			}
		}
		return budgetWriteErr(tx.UpdateBudget(ctx, budget))
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(fields).Info("Budget updated")
	return budget, nil
}

func (s *Service) checkBudgetPatch(p BudgetPatch) error {
	if err := notNull("category_id", p.CategoryID.Null); err != nil {
		return err
	}
	if err := notNull("amount", p.Amount.Null); err != nil {
		return err
	}
	if err := notNull("month", p.Month.Null); err != nil {
		return err
	}
	if p.CategoryID.Present() && p.CategoryID.Value == uuid.Nil {
		return validationError("category_id", "category_id is required")
	}
	if p.Amount.Present() {
		return s.checkVar("amount", p.Amount.Value, "gt=0")
	}
	return nil
}

// DeleteBudget removes one of owner's budgets.
func (s *Service) DeleteBudget(ctx context.Context, owner, id uuid.UUID) error {
	fields := logrus.Fields{"user_id": owner, "budget_id": id}
	err := s.inTx(ctx, "delete budget", fields, func(tx *store.Store) error {
		if _, err := s.ownedBudget(ctx, tx, owner, id); err != nil {
			return err
		}
		return s.lookupErr("budget", tx.DeleteBudget(ctx, id))
	})
	if err != nil {
		return err
	}
	s.log.WithFields(fields).Info("Budget deleted")
	return nil
}

func (s *Service) ownedBudget(ctx context.Context, st *store.Store, owner, id uuid.UUID) (*domain.Budget, error) {
	budget, err := st.BudgetByID(ctx, id)
	if err != nil {
		return nil, s.lookupErr("budget", err)
	}
	if budget.UserID != owner {
		return nil, forbidden("budget")
	}
	return budget, nil
}

// ensureNoBudget reports a conflict when another budget already covers the
// same owner, category and month. The unique index is the final guard.
func (s *Service) ensureNoBudget(ctx context.Context, tx *store.Store, b *domain.Budget) error {
	existing, err := tx.BudgetFor(ctx, b.UserID, b.CategoryID, b.Month)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != b.ID:
		return conflict(duplicateBudget)
	}
	return nil
}

func budgetWriteErr(err error) error {
	if errors.Is(err, store.ErrDuplicate) {
		return conflict(duplicateBudget)
	}
	return err
}
