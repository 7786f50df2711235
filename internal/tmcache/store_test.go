package tmcache_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"subtrans/internal/tmcache"
)

func openStore(t *testing.T, path string) *tmcache.Store {
	t.Helper()
	store, err := tmcache.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreSaveAndLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tm.db")
	store := openStore(t, path)
	ctx := context.Background()

	key := tmcache.Key{Platform: "volcengine", Source: "auto", Target: "zh", Text: "Hello"}
	if _, ok, err := store.Lookup(ctx, key); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
	if err := store.Save(ctx, key, "你好"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(ctx, key, "您好"); err != nil {
		t.Fatalf("Save overwrite failed: %v", err)
	}
	got, ok, err := store.Lookup(ctx, key)
	if err != nil || !ok || got != "您好" {
		t.Fatalf("Lookup = %q %v %v, want overwritten translation", got, ok, err)
	}

	other := key
	other.Target = "ja"
	if _, ok, _ := store.Lookup(ctx, other); ok {
		t.Fatal("target language must be part of the key")
	}
	if count, err := store.Count(ctx); err != nil || count != 1 {
		t.Fatalf("Count = %d %v, want 1", count, err)
	}
}

func TestStorePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tm.db")
	ctx := context.Background()
	key := tmcache.Key{Platform: "volcengine", Source: "en", Target: "fr", Text: "cat"}

	first, err := tmcache.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := first.Save(ctx, key, "chat"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second := openStore(t, path)
	if got, ok, err := second.Lookup(ctx, key); err != nil || !ok || got != "chat" {
		t.Fatalf("Lookup after reopen = %q %v %v", got, ok, err)
	}
}

func TestOpenRejectsSecondWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tm.db")
	openStore(t, path)

	_, err := tmcache.Open(path)
	if !errors.Is(err, tmcache.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := tmcache.Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
