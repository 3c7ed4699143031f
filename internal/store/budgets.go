package store

import (
	"context"

	"household_ledger/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// BudgetFilter narrows a budget listing. Nil fields are ignored.
type BudgetFilter struct {
	Month      *domain.Date
	CategoryID *uuid.UUID
}

func (s *Store) CreateBudget(ctx context.Context, b *domain.Budget) error {
	return translate(s.conn(ctx).Create(b).Error)
}

// BudgetByID looks the budget up regardless of owner.
func (s *Store) BudgetByID(ctx context.Context, id uuid.UUID) (*domain.Budget, error) {
	var b domain.Budget
	if err := s.first(ctx, &b, "budget_id", id); err != nil {
		return nil, err
	}
	return &b, nil
}

// BudgetFor returns the budget for one (owner, category, month) triple.
func (s *Store) BudgetFor(ctx context.Context, owner, categoryID uuid.UUID, month domain.Date) (*domain.Budget, error) {
	var b domain.Budget
	err := s.conn(ctx).
		Where("user_id = ? AND category_id = ?", owner, categoryID).
		Where(clause.Eq{Column: clause.Column{Name: "month"}, Value: month}).
		First(&b).Error
	if err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

// ListBudgets returns the owner's budgets ordered by month then creation time,
// both descending.
func (s *Store) ListBudgets(ctx context.Context, owner uuid.UUID, f BudgetFilter) ([]domain.Budget, error) {
	q := s.conn(ctx).Where("user_id = ?", owner)
	if f.Month != nil {
		q = q.Where(clause.Eq{Column: clause.Column{Name: "month"}, Value: *f.Month})
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}

	budgets := []domain.Budget{}
	err := q.Order(desc("month")).Order(desc("created_at")).Find(&budgets).Error
	return budgets, translate(err)
}

func (s *Store) UpdateBudget(ctx context.Context, b *domain.Budget) error {
	return s.update(ctx, b)
}

func (s *Store) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	return s.deleteOne(ctx, &domain.Budget{}, "budget_id", id)
}
