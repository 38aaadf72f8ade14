package sessions

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"shipment-tracker-web/internal/domain"
	"shipment-tracker-web/internal/platform/db"
	"shipment-tracker-web/internal/ports"
)

// exerciseStore runs the behaviour every SessionStore must share.
func exerciseStore(t *testing.T, store ports.SessionStore) {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	live := &domain.Session{
		ID:        "live",
		Token:     "tok-live",
		Username:  "admin",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
	if err := store.Create(ctx, live); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.Get(ctx, "live")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatalf("expected session, got nil")
	}
	if got.Token != "tok-live" || got.Username != "admin" {
		t.Fatalf("unexpected session: %+v", got)
	}
	if !got.ExpiresAt.Equal(live.ExpiresAt) {
		t.Fatalf("ExpiresAt = %v, want %v", got.ExpiresAt, live.ExpiresAt)
	}

	missing, err := store.Get(ctx, "nope")
	if err != nil || missing != nil {
		t.Fatalf("unknown id: got %+v, %v; want nil, nil", missing, err)
	}

	expired := &domain.Session{
		ID:        "expired",
		Token:     "tok-old",
		CreatedAt: now.Add(-2 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	}
	if err := store.Create(ctx, expired); err != nil {
		t.Fatalf("create expired: %v", err)
	}
	if got, err := store.Get(ctx, "expired"); err != nil || got != nil {
		t.Fatalf("expired session: got %+v, %v; want nil, nil", got, err)
	}

	if err := store.Delete(ctx, "live"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, err := store.Get(ctx, "live"); err != nil || got != nil {
		t.Fatalf("after delete: got %+v, %v; want nil, nil", got, err)
	}
	if err := store.Delete(ctx, "live"); err != nil {
		t.Fatalf("second delete should be a no-op, got %v", err)
	}

	if err := store.Create(ctx, &domain.Session{}); err == nil {
		t.Fatalf("expected error for empty id")
	}
}

func TestMemorySessionStore(t *testing.T) {
	exerciseStore(t, NewMemorySessionStore())
}

func TestSqliteSessionStore(t *testing.T) {
	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := InitSQLiteSchema(conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	// Schema creation must be repeatable.
	if err := InitSQLiteSchema(conn); err != nil {
		t.Fatalf("init schema twice: %v", err)
	}

	exerciseStore(t, NewSqliteSessionStore(conn))
}

func TestRedisSessionStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisSessionStore(client)
	exerciseStore(t, store)

	ctx := context.Background()
	now := time.Now()
	if err := store.Create(ctx, &domain.Session{ID: "ttl", Token: "t", CreatedAt: now, ExpiresAt: now.Add(time.Minute)}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if ttl := mr.TTL(redisKeyPrefix + "ttl"); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("unexpected ttl %v", ttl)
	}

	mr.FastForward(2 * time.Minute)
	if got, err := store.Get(ctx, "ttl"); err != nil || got != nil {
		t.Fatalf("after ttl: got %+v, %v; want nil, nil", got, err)
	}
}

func TestNilDBErrors(t *testing.T) {
	ctx := context.Background()

	if err := InitSQLiteSchema(nil); err == nil {
		t.Fatalf("expected error for nil db")
	}
	if _, err := NewSqliteSessionStore(nil).Get(ctx, "x"); err == nil {
		t.Fatalf("expected error for nil sqlite db")
	}
	if _, err := NewSQLSessionStore(nil).Get(ctx, "x"); err == nil {
		t.Fatalf("expected error for nil sql db")
	}
	if _, err := NewSQLSessionStore(nil).PurgeExpired(ctx); err == nil {
		t.Fatalf("expected error for nil sql db")
	}
}
