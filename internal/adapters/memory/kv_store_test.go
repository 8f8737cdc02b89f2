package memory

import (
	"context"
	"testing"
)

func TestKeyValueStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewKeyValueStore("default")

	if _, ok, err := store.Get(ctx, "puzzleGameProgress"); ok || err != nil {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "puzzleGameProgress", `["tools"]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value, ok, err := store.Get(ctx, "puzzleGameProgress")
	if err != nil || !ok || value != `["tools"]` {
		t.Errorf("expected stored value, got %q ok=%v err=%v", value, ok, err)
	}

	if err := store.Delete(ctx, "puzzleGameProgress"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "puzzleGameProgress"); ok {
		t.Error("expected key to be deleted")
	}
}

func TestKeyValueStore_WithProfile(t *testing.T) {
	ctx := context.Background()
	alice := NewKeyValueStore("alice")
	bob := alice.WithProfile("bob")

	if err := alice.Set(ctx, "puzzleGameCompleted", "true"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, ok, _ := bob.Get(ctx, "puzzleGameCompleted"); ok {
		t.Error("bob must not see alice's flag")
	}

	if err := bob.Set(ctx, "puzzleGameCompleted", "true"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := alice.Delete(ctx, "puzzleGameCompleted"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := bob.Get(ctx, "puzzleGameCompleted"); !ok {
		t.Error("deleting alice's flag must leave bob's")
	}
}
