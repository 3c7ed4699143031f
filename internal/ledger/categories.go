package ledger

import (
	"context"
	"errors"
	"unicode/utf8"

	"household_ledger/internal/cache"
	"household_ledger/internal/domain"
	"household_ledger/internal/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CategoryInput is the payload for creating a category.
type CategoryInput struct {
	Name          string                 `json:"name" validate:"required,min=1,max=100"`
	Type          domain.TransactionType `json:"type" validate:"required,oneof=income expense"`
	Color         string                 `json:"color"`
	IsRecurring   bool                   `json:"is_recurring"`
	Frequency     *domain.Frequency      `json:"frequency" validate:"omitempty,oneof=monthly yearly"`
	DefaultAmount *int64                 `json:"default_amount" validate:"omitempty,gte=0"`
}

// CategoryPatch is a partial category update. Absent fields are untouched.
type CategoryPatch struct {
	Name          domain.Optional[string]                 `json:"name"`
	Type          domain.Optional[domain.TransactionType] `json:"type"`
	Color         domain.Optional[string]                 `json:"color"`
	IsRecurring   domain.Optional[bool]                   `json:"is_recurring"`
	Frequency     domain.Optional[domain.Frequency]       `json:"frequency"`
	DefaultAmount domain.Optional[int64]                  `json:"default_amount"`
}

// CreateCategory adds a category owned by owner.
func (s *Service) CreateCategory(ctx context.Context, owner uuid.UUID, in CategoryInput) (*domain.Category, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	cat := &domain.Category{
		ID:            uuid.New(),
		UserID:        owner,
		Name:          in.Name,
		Type:          in.Type,
		Color:         in.Color,
		IsRecurring:   in.IsRecurring,
		Frequency:     in.Frequency,
		DefaultAmount: in.DefaultAmount,
		CreatedAt:     s.timestamp(),
	}
	if cat.Color == "" {
		cat.Color = domain.DefaultColor
	}
	if err := cat.Validate(); err != nil {
		return nil, validationError("", "%v", err)
	}

	fields := logrus.Fields{"user_id": owner, "category_id": cat.ID}
	err := s.inTx(ctx, "create category", fields, func(tx *store.Store) error {
		return tx.CreateCategory(ctx, cat)
	})
	if err != nil {
		return nil, err
	}
	s.forgetCategories(ctx, owner)
	s.log.WithFields(fields).Info("Category created")
	return cat, nil
}

// GetCategory returns one of owner's categories.
func (s *Service) GetCategory(ctx context.Context, owner, id uuid.UUID) (*domain.Category, error) {
	cat, err := s.ownedCategory(ctx, s.store, owner, id)
	if err != nil {
		return nil, s.classify("get category", err, logrus.Fields{"user_id": owner, "category_id": id})
	}
	return cat, nil
}

// ListCategories returns owner's categories, newest first. The listing is
// served from cache when possible. It is cached under the generation read
// before the storage query, so a write that lands in between bumps the
// generation and the snapshot is never served.
func (s *Service) ListCategories(ctx context.Context, owner uuid.UUID) ([]domain.Category, error) {
	fields := logrus.Fields{"user_id": owner}
	gen, genErr := s.cache.Generation(ctx, cache.CategoriesGenKey(owner.String()))
	if genErr != nil {
		s.log.WithFields(fields).WithField("error", genErr.Error()).Warn("Category cache read failed")
	}
	key := cache.CategoriesKey(owner.String(), gen)

	if genErr == nil {
		var cached []domain.Category
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.WithFields(fields).WithField("error", err.Error()).Warn("Category cache read failed")
		}
		if found && err == nil {
			return cached, nil
		}
	}

	cats, err := s.store.ListCategories(ctx, owner)
	if err != nil {
		return nil, s.internal("list categories", err, fields)
	}
	if genErr != nil {
		return cats, nil
	}
	if err := s.cache.Set(ctx, key, cats, s.cacheTTL); err != nil {
		s.log.WithFields(fields).WithField("error", err.Error()).Warn("Category cache write failed")
	}
	return cats, nil
}

// UpdateCategory applies patch to one of owner's categories. The merged
// category must still satisfy the recurring rules.
func (s *Service) UpdateCategory(ctx context.Context, owner, id uuid.UUID, patch CategoryPatch) (*domain.Category, error) {
	var cat *domain.Category
	fields := logrus.Fields{"user_id": owner, "category_id": id}
	err := s.inTx(ctx, "update category", fields, func(tx *store.Store) error {
		var err error
		if cat, err = s.ownedCategory(ctx, tx, owner, id); err != nil {
			return err
		}
		previousType := cat.Type
		if err := s.applyCategoryPatch(cat, patch); err != nil {
			return err
		}
		if cat.Type != previousType {
			n, err := tx.CountCategoryTransactions(ctx, id)
			if err != nil {
				return err
			}
			if n > 0 {
				return conflict("category type cannot change while it has transactions")
			}
		}
		return tx.UpdateCategory(ctx, cat)
	})
	if err != nil {
		return nil, err
	}
	s.forgetCategories(ctx, owner)
	s.log.WithFields(fields).Info("Category updated")
	return cat, nil
}

func (s *Service) applyCategoryPatch(cat *domain.Category, p CategoryPatch) error {
	if p.Name.Set {
		if err := notNull("name", p.Name.Null); err != nil {
			return err
		}
		if n := utf8.RuneCountInString(p.Name.Value); n < 1 || n > 100 {
			return validationError("name", "name must be between 1 and 100 characters")
		}
		cat.Name = p.Name.Value
	}
	if p.Type.Set {
		if err := notNull("type", p.Type.Null); err != nil {
			return err
		}
		if !p.Type.Value.Valid() {
			return validationError("type", "type must be one of income, expense")
		}
		cat.Type = p.Type.Value
	}
	if p.Color.Set {
		cat.Color = domain.DefaultColor
		if p.Color.Present() {
			cat.Color = p.Color.Value
		}
	}
	if p.IsRecurring.Set {
		cat.IsRecurring = p.IsRecurring.Present() && p.IsRecurring.Value
	}
	if p.Frequency.Set {
		cat.Frequency = p.Frequency.Ptr()
	}
	if p.DefaultAmount.Set {
		cat.DefaultAmount = p.DefaultAmount.Ptr()
	}
	if err := cat.Validate(); err != nil {
		return validationError("", "%v", err)
	}
	return nil
}

// DeleteCategory removes one of owner's categories together with its
// budgets. A category that still has transactions is only removed when
// force is set, and its transactions go with it.
func (s *Service) DeleteCategory(ctx context.Context, owner, id uuid.UUID, force bool) error {
	fields := logrus.Fields{"user_id": owner, "category_id": id, "force": force}
	var removed int64
	err := s.inTx(ctx, "delete category", fields, func(tx *store.Store) error {
		if _, err := s.ownedCategory(ctx, tx, owner, id); err != nil {
			return err
		}
		if !force {
			n, err := tx.CountCategoryTransactions(ctx, id)
			if err != nil {
				return err
			}
			if n > 0 {
				return conflict("category has %d transactions; delete with force=true to remove them too", n)
			}
		}
		var err error
		removed, err = tx.DeleteCategory(ctx, id)
		return s.lookupErr("category", err)
	})
	if err != nil {
		return err
	}
	s.forgetCategories(ctx, owner)
	s.log.WithFields(fields).WithField("transactions_removed", removed).Info("Category deleted")
	return nil
}

// UnregisteredRecurring returns owner's recurring categories without any
// transaction in the month containing month. A nil month means today.
func (s *Service) UnregisteredRecurring(ctx context.Context, owner uuid.UUID, month *domain.Date) ([]domain.Category, error) {
	target := domain.DateOf(s.now())
	if month != nil {
		target = *month
	}
	first, last := target.MonthBounds()
	cats, err := s.store.UnregisteredRecurring(ctx, owner, first, last)
	if err != nil {
		return nil, s.internal("unregistered recurring", err, logrus.Fields{"user_id": owner, "month": first.String()})
	}
	return cats, nil
}

// ownedCategory loads a category and checks it belongs to owner. Existence
// is checked before ownership.
func (s *Service) ownedCategory(ctx context.Context, st *store.Store, owner, id uuid.UUID) (*domain.Category, error) {
	cat, err := st.CategoryByID(ctx, id)
	if err != nil {
		return nil, s.lookupErr("category", err)
	}
	if cat.UserID != owner {
		return nil, forbidden("category")
	}
	return cat, nil
}

// classify passes classified errors through and reports the rest as internal.
func (s *Service) classify(op string, err error, fields logrus.Fields) error {
	var lerr *Error
	if errors.As(err, &lerr) {
		return err
	}
	return s.internal(op, err, fields)
}
