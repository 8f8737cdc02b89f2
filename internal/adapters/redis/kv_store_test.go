package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
)

// newTestStore starts an in-process server and dials it with a fresh profile.
func newTestStore(t *testing.T) (*KeyValueStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := Dial(context.Background(), Options{Addr: mr.Addr()}, "test-"+uuid.NewString())
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestKeyValueStore_Key(t *testing.T) {
	store := &KeyValueStore{profile: "alice"}
	if got := store.key("puzzleGameProgress"); got != "ninegrid:alice:puzzleGameProgress" {
		t.Errorf("key = %q", got)
	}
}

func TestKeyValueStore_RoundTrip(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "puzzleGameProgress"); ok || err != nil {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "puzzleGameProgress", `["execution"]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value, ok, err := store.Get(ctx, "puzzleGameProgress")
	if err != nil || !ok || value != `["execution"]` {
		t.Errorf("expected stored value, got %q ok=%v err=%v", value, ok, err)
	}
	if got, _ := mr.Get(store.key("puzzleGameProgress")); got != `["execution"]` {
		t.Errorf("expected namespaced key on the server, got %q", got)
	}
	if ttl := mr.TTL(store.key("puzzleGameProgress")); ttl != 0 {
		t.Errorf("expected no expiry, got %v", ttl)
	}

	if err := store.Delete(ctx, "puzzleGameProgress"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "puzzleGameProgress"); ok {
		t.Error("expected key to be deleted")
	}
	if err := store.Delete(ctx, "puzzleGameProgress"); err != nil {
		t.Errorf("deleting a missing key should succeed, got %v", err)
	}
}

func TestKeyValueStore_ProfilesAreIsolated(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	alice, err := Dial(ctx, Options{Addr: mr.Addr()}, "alice")
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer alice.Close()
	bob, err := Dial(ctx, Options{Addr: mr.Addr()}, "bob")
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer bob.Close()

	if err := alice.Set(ctx, "puzzleGameCompleted", "true"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, ok, err := bob.Get(ctx, "puzzleGameCompleted"); ok || err != nil {
		t.Errorf("bob should not see alice's key, got ok=%v err=%v", ok, err)
	}
}

func TestKeyValueStore_ServerErrors(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	mr.SetError("ERR injected failure")
	defer mr.SetError("")

	if _, _, err := store.Get(ctx, "puzzleGameProgress"); err == nil {
		t.Error("expected Get to surface the server error")
	}
	if err := store.Set(ctx, "puzzleGameProgress", "[]"); err == nil {
		t.Error("expected Set to surface the server error")
	}
	if err := store.Delete(ctx, "puzzleGameProgress"); err == nil {
		t.Error("expected Delete to surface the server error")
	}
}

func TestDial_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := Dial(context.Background(), Options{Addr: addr}, "default"); err == nil {
		t.Error("expected Dial to fail when the server is down")
	}
}
