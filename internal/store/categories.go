package store

import (
	"context"

	"household_ledger/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

func (s *Store) CreateCategory(ctx context.Context, c *domain.Category) error {
	return translate(s.conn(ctx).Create(c).Error)
}

// CategoryByID looks the category up regardless of owner.
func (s *Store) CategoryByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	var c domain.Category
	if err := s.first(ctx, &c, "category_id", id); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCategories returns the owner's categories, newest first.
func (s *Store) ListCategories(ctx context.Context, owner uuid.UUID) ([]domain.Category, error) {
	cats := []domain.Category{}
	err := s.conn(ctx).Where("user_id = ?", owner).Order(desc("created_at")).Find(&cats).Error
	return cats, translate(err)
}

func (s *Store) UpdateCategory(ctx context.Context, c *domain.Category) error {
	return s.update(ctx, c)
}

// CountCategoryTransactions counts transactions that reference the category.
func (s *Store) CountCategoryTransactions(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := s.conn(ctx).Model(&domain.Transaction{}).Where("category_id = ?", id).Count(&n).Error
	return n, translate(err)
}

// DeleteCategory removes the category with its transactions and budgets and
// returns how many transactions went with it. Call it inside Tx.
func (s *Store) DeleteCategory(ctx context.Context, id uuid.UUID) (int64, error) {
	removed, err := s.deleteWhere(ctx, &domain.Transaction{}, "category_id", id)
	if err != nil {
		return 0, err
	}
	if _, err := s.deleteWhere(ctx, &domain.Budget{}, "category_id", id); err != nil {
		return 0, err
	}
	return removed, s.deleteOne(ctx, &domain.Category{}, "category_id", id)
}

// UnregisteredRecurring returns the owner's recurring categories that have no
// transaction dated within [first, last]. It is one anti-join query: the
// categories with a transaction in range are a subquery excluded by NOT IN.
func (s *Store) UnregisteredRecurring(ctx context.Context, owner uuid.UUID, first, last domain.Date) ([]domain.Category, error) {
	registered := s.conn(ctx).
		Model(&domain.Transaction{}).
		Distinct("category_id").
		Where("user_id = ?", owner).
		Where(clause.Gte{Column: clause.Column{Name: "date"}, Value: first}).
		Where(clause.Lte{Column: clause.Column{Name: "date"}, Value: last})

	cats := []domain.Category{}
	err := s.conn(ctx).
		Where("user_id = ? AND is_recurring = ?", owner, true).
		Where("category_id NOT IN (?)", registered).
		Order(desc("created_at")).
		Find(&cats).Error
	return cats, translate(err)
}
