package ledger

import (
	"context"
	"errors"
	"sync"

	"household_ledger/internal/auth"
	"household_ledger/internal/cache"
	"household_ledger/internal/domain"
	"household_ledger/internal/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RegisterInput is the payload for creating an account.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=8,max=100"`
}

// LoginInput is the payload for exchanging credentials for a token.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Token is an issued bearer token.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login failures share one message so callers cannot tell an unknown email
// from a wrong password.
const badCredentials = "incorrect email or password"

// dummyHash is compared against when the email is unknown, so both failure
// paths spend one bcrypt comparison.
var dummyHash = sync.OnceValue(func() string {
	hash, err := auth.HashPassword("unknown-account-placeholder")
	if err != nil {
		panic(err)
	}
	return hash
})

// Register creates an account. Emails are unique and compared exactly as
// given.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, s.internal("register", err, nil)
	}
	user := &domain.User{
		ID:           uuid.New(),
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		CreatedAt:    s.timestamp(),
	}

	err = s.inTx(ctx, "register", logrus.Fields{"email": in.Email}, func(tx *store.Store) error {
		_, err := tx.UserByEmail(ctx, in.Email)
		switch {
		case err == nil:
			return conflict("email is already registered")
		case !errors.Is(err, store.ErrNotFound):
			return err
		}
		if err := tx.CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return conflict("email is already registered")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID}).Info("User registered")
	return user, nil
}

// Authenticate checks credentials and issues an access token.
func (s *Service) Authenticate(ctx context.Context, in LoginInput) (*Token, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	user, err := s.store.UserByEmail(ctx, in.Email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, s.internal("authenticate", err, nil)
		}
		auth.VerifyPassword(in.Password, dummyHash())
		return nil, unauthorized(badCredentials)
	}
	if !auth.VerifyPassword(in.Password, user.PasswordHash) {
		return nil, unauthorized(badCredentials)
	}

	token, err := s.tokens.Issue(user.ID.String())
	if err != nil {
		return nil, s.internal("authenticate", err, logrus.Fields{"user_id": user.ID})
	}
	return &Token{AccessToken: token, TokenType: "bearer"}, nil
}

// ResolveUser verifies a bearer token and loads the user it names.
func (s *Service) ResolveUser(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, unauthorized("could not validate credentials")
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, unauthorized("could not validate credentials")
	}
	user, err := s.store.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, unauthorized("could not validate credentials")
		}
		return nil, s.internal("resolve user", err, logrus.Fields{"user_id": id})
	}
	return user, nil
}

// GetUser returns the account with the given id.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.store.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("user")
		}
		return nil, s.internal("get user", err, logrus.Fields{"user_id": id})
	}
	return user, nil
}

// DeleteUser removes the account and everything it owns.
func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	fields := logrus.Fields{"user_id": id}
	err := s.inTx(ctx, "delete user", fields, func(tx *store.Store) error {
		return s.lookupErr("user", tx.DeleteUser(ctx, id))
	})
	if err != nil {
		return err
	}
	s.forgetCategories(ctx, id)
	s.log.WithFields(fields).Info("User deleted")
	return nil
}

// forgetCategories retires the cached category listing of owner by moving
// it to a new generation.
func (s *Service) forgetCategories(ctx context.Context, owner uuid.UUID) {
	if _, err := s.cache.Bump(ctx, cache.CategoriesGenKey(owner.String())); err != nil {
		s.log.WithFields(logrus.Fields{"user_id": owner, "error": err.Error()}).Warn("Failed to invalidate category cache")
	}
}
