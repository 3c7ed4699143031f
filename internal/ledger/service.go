// Package ledger implements the household ledger: account registration and
// login, and the owner scoped lifecycle of categories, transactions and
// budgets.
package ledger

import (
	"context"
	"errors"
	"time"

	"household_ledger/internal/auth"
	"household_ledger/internal/cache"
	"household_ledger/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

const (
	DefaultPageSize = 100
	MaxPageSize     = 1000

	categoryCacheTTL = time.Minute
)

// Service is the entry point for every ledger operation. It is safe for
// concurrent use; each call runs against its own storage transaction.
type Service struct {
	store    *store.Store
	cache    cache.Cache
	tokens   *auth.TokenIssuer
	log      logrus.FieldLogger
	validate *validator.Validate
	now      func() time.Time

	defaultPageSize int
	maxPageSize     int
	cacheTTL        time.Duration
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces time.Now, used for creation timestamps and the default
// month of the recurring query.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithPageSizes sets the default and maximum transaction page size.
func WithPageSizes(def, max int) Option {
	return func(s *Service) {
		s.defaultPageSize = def
		s.maxPageSize = max
	}
}

// WithCacheTTL sets how long a cached category listing stays valid.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) { s.cacheTTL = ttl }
}

// NewService wires the service. A nil cache disables caching.
func NewService(st *store.Store, c cache.Cache, tokens *auth.TokenIssuer, log logrus.FieldLogger, opts ...Option) *Service {
	if c == nil {
		c = cache.Nop{}
	}
	s := &Service{
		store:           st,
		cache:           c,
		tokens:          tokens,
		log:             log,
		validate:        newValidator(),
		now:             time.Now,
		defaultPageSize: DefaultPageSize,
		maxPageSize:     MaxPageSize,
		cacheTTL:        categoryCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping reports whether storage is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) timestamp() time.Time {
	return s.now().UTC()
}

// inTx runs fn in one storage transaction. Classified errors pass through;
// anything else has already been rolled back and is reported as internal.
func (s *Service) inTx(ctx context.Context, op string, fields logrus.Fields, fn func(tx *store.Store) error) error {
	if err := s.store.Tx(ctx, fn); err != nil {
		return s.classify(op, err, fields)
	}
	return nil
}

// internal logs the cause and hides it behind a generic message.
func (s *Service) internal(op string, err error, fields logrus.Fields) error {
	s.log.WithFields(fields).WithFields(logrus.Fields{
		"op":    op,
		"error": err.Error(),
	}).Error("Ledger operation failed")
	return &Error{Kind: ErrInternal, Message: "internal server error", Err: err}
}

// lookupErr classifies an error from a by-id lookup.
func (s *Service) lookupErr(what string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return notFound(what)
	}
	return err
}
