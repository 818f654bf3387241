package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemoryStoreRoundTripAndExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, ok, _ := store.Get(ctx, "missing"); ok {
		t.Fatal("expected miss for unknown key")
	}

	if err := store.Set(ctx, "k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, ok, err := store.Get(ctx, "k")
	if err != nil || !ok || string(raw) != "v" {
		t.Fatalf("get = (%q, %v, %v), want (v, true, nil)", raw, ok, err)
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestMemoryStoreReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	val := []byte("abc")
	_ = store.Set(ctx, "k", val, time.Minute)
	val[0] = 'x' // caller mutation must not reach the store

	raw, _, _ := store.Get(ctx, "k")
	if string(raw) != "abc" {
		t.Fatalf("stored value changed: %q", raw)
	}

	raw[0] = 'y' // reader mutation must not reach the store either
	again, _, _ := store.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("stored value changed via read: %q", again)
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", n%4)
			for j := 0; j < 100; j++ {
				_ = store.Set(ctx, key, []byte{byte(j)}, time.Minute)
				_, _, _ = store.Get(ctx, key)
			}
		}(i)
	}
	wg.Wait()

	if store.Len() != 4 {
		t.Fatalf("len = %d, want 4", store.Len())
	}
}
