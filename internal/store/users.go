package store

import (
	"context"

	"household_ledger/internal/domain"

	"github.com/google/uuid"
)

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	return translate(s.conn(ctx).Create(u).Error)
}

func (s *Store) UserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var u domain.User
	if err := s.first(ctx, &u, "user_id", id); err != nil {
		return nil, err
	}
	return &u, nil
}

// UserByEmail matches the email exactly as stored.
func (s *Store) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := translate(s.conn(ctx).Where("email = ?", email).First(&u).Error); err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser removes the user and everything the user owns, children first.
// Call it inside Tx.
func (s *Store) DeleteUser(ctx context.Context, id uuid.UUID) error {
	for _, model := range []any{&domain.Budget{}, &domain.Transaction{}, &domain.Category{}} {
		if _, err := s.deleteWhere(ctx, model, "user_id", id); err != nil {
			return err
		}
	}
	return s.deleteOne(ctx, &domain.User{}, "user_id", id)
}
