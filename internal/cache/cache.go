// Package cache holds short-lived JSON snapshots of read-mostly listings.
package cache

import (
	"context"
	"strconv"
	"time"
)

// Cache stores JSON-encoded values and integer generation counters under
// string keys.
type Cache interface {
	// Get unmarshals the value at key into dest and reports whether it was found.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// Generation returns the counter at key, zero when it was never bumped.
	Generation(ctx context.Context, key string) (int64, error)
	// Bump increments the counter at key and returns the new value.
	Bump(ctx context.Context, key string) (int64, error)
}

// CategoriesGenKey is the generation counter of a user's category listing.
// Bumping it retires every listing cached under an older generation.
func CategoriesGenKey(userID string) string {
	return "categories:gen:" + userID
}

// CategoriesKey is the key for a user's category listing at generation gen.
func CategoriesKey(userID string, gen int64) string {
	return "categories:user:" + userID + ":" + strconv.FormatInt(gen, 10)
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string, any) (bool, error) { return false, nil }

func (Nop) Set(context.Context, string, any, time.Duration) error { return nil }

func (Nop) Delete(context.Context, ...string) error { return nil }

func (Nop) Generation(context.Context, string) (int64, error) { return 0, nil }

func (Nop) Bump(context.Context, string) (int64, error) { return 0, nil }
