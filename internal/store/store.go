package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("not found")
)

// Store is a typed key-value store with per-entry expiration. The storefront
// keeps only transient state in it: in-progress signup flows keyed by session id.
type Store[T any] interface {
	Get(ctx context.Context, key string) (*T, error)
	Set(ctx context.Context, key string, val T, expiresIn time.Duration) error
	Save(ctx context.Context, key string, val T) error
	Del(ctx context.Context, key string) error
}
