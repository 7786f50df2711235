package testsupport

import (
	"testing"

	"subtrans/internal/config"
	"subtrans/internal/tmcache"
)

// MustOpenCache opens the translation memory for tests and registers cleanup.
func MustOpenCache(t testing.TB, cfg *config.Config) *tmcache.Store {
	t.Helper()

	store, err := tmcache.Open(cfg.Cache.Path)
	if err != nil {
		t.Fatalf("tmcache.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
