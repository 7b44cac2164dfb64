package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStoreTest(t *testing.T, ttl time.Duration) (*Redis, *miniredis.Miniredis, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedis(rdb, "ck:test:session", ttl)
	return store, mr, func() {
		rdb.Close()
		mr.Close()
	}
}

func TestRedisAbsentKeyIsNotAnError(t *testing.T) {
	store, _, done := newRedisStoreTest(t, 0)
	defer done()

	data, found, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load on missing key: %v", err)
	}
	if found || data != nil {
		t.Fatalf("expected absent entry, got found=%v data=%q", found, data)
	}
}

func TestRedisRoundTripAndClear(t *testing.T) {
	ctx := context.Background()
	store, _, done := newRedisStoreTest(t, 0)
	defer done()

	if err := store.Save(ctx, []byte("snap")); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, found, err := store.Load(ctx)
	if err != nil || !found || string(data) != "snap" {
		t.Fatalf("load: data=%q found=%v err=%v", data, found, err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, found, _ := store.Load(ctx); found {
		t.Fatal("expected key to be gone after clear")
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear of missing key: %v", err)
	}
}

func TestRedisSaveRefreshesTTL(t *testing.T) {
	ctx := context.Background()
	store, mr, done := newRedisStoreTest(t, time.Minute)
	defer done()

	if err := store.Save(ctx, []byte("snap")); err != nil {
		t.Fatalf("save: %v", err)
	}
	mr.FastForward(59 * time.Second)
	if err := store.Save(ctx, []byte("snap2")); err != nil {
		t.Fatalf("second save: %v", err)
	}
	mr.FastForward(59 * time.Second)

	data, found, err := store.Load(ctx)
	if err != nil || !found {
		t.Fatalf("expected refreshed entry, found=%v err=%v", found, err)
	}
	if string(data) != "snap2" {
		t.Fatalf("expected latest snapshot, got %q", data)
	}

	mr.FastForward(2 * time.Minute)
	if _, found, _ := store.Load(ctx); found {
		t.Fatal("expected entry to expire after TTL")
	}
}

func TestRedisDefaultKey(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	store := NewRedis(rdb, "", 0)
	if err := store.Save(context.Background(), []byte("x")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists(defaultRedisKey) {
		t.Fatalf("expected snapshot under %q", defaultRedisKey)
	}
}
