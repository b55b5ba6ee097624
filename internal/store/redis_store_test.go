package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/arzonkitob/storefront/internal/signup"
	"github.com/arzonkitob/storefront/internal/store"
	"github.com/redis/go-redis/v9"
)

func newFlowStore(t *testing.T) (*store.RedisStore[signup.Flow], *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return store.NewRedisStore[signup.Flow](rdb, "signup:"), mr
}

func TestRedisStoreFlowRoundTrip(t *testing.T) {
	flows, _ := newFlowStore(t)
	ctx := context.Background()

	in := signup.Flow{
		Email:         "a@b.com",
		FullName:      "Ali Ahmadov",
		Password:      "Passw0rd!",
		State:         signup.StateAwaitingOtp,
		ResendEnabled: true,
	}
	if err := flows.Set(ctx, "sess1", in, time.Minute); err != nil {
		t.Fatal(err)
	}

	got, err := flows.Get(ctx, "sess1")
	if err != nil {
		t.Fatal(err)
	}
	if *got != in {
		t.Fatalf("got %+v, want %+v", *got, in)
	}
}

func TestRedisStoreMissingKey(t *testing.T) {
	flows, _ := newFlowStore(t)

	if _, err := flows.Get(context.Background(), "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRedisStoreExpiry(t *testing.T) {
	flows, mr := newFlowStore(t)
	ctx := context.Background()

	if err := flows.Set(ctx, "sess1", signup.Flow{State: signup.StateSubmitting, Busy: true}, time.Minute); err != nil {
		t.Fatal(err)
	}
	mr.FastForward(2 * time.Minute)

	if _, err := flows.Get(ctx, "sess1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after expiry, got %v", err)
	}
}

func TestRedisStoreDel(t *testing.T) {
	flows, _ := newFlowStore(t)
	ctx := context.Background()

	if err := flows.Set(ctx, "sess1", signup.Flow{State: signup.StateDone}, time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := flows.Del(ctx, "sess1"); err != nil {
		t.Fatal(err)
	}
	if _, err := flows.Get(ctx, "sess1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
