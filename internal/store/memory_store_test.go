package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStore(t *testing.T) {
	type Person struct {
		Name string
		Age  int
	}

	memStore := NewMemoryStore[Person]()
	ctx := context.Background()

	if _, err := memStore.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	p := Person{Name: "John Doe", Age: 30}
	if err := memStore.Set(ctx, "1", p, time.Minute); err != nil {
		t.Fatal(err)
	}

	got, err := memStore.Get(ctx, "1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != p.Name || got.Age != p.Age {
		t.Fatalf("unexpected value: %+v", got)
	}

	if err := memStore.Del(ctx, "1"); err != nil {
		t.Fatal(err)
	}
	if _, err := memStore.Get(ctx, "1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
