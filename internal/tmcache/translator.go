package tmcache

import (
	"context"
	"log/slog"

	"subtrans/internal/logging"
)

// Translator is the single-text translation call the cache wraps.
type Translator interface {
	Translate(ctx context.Context, text, from, to string) (string, error)
}

// CachedTranslator serves translations from the store when present and
// records successful upstream results that differ from the source text.
type CachedTranslator struct {
	next     Translator
	store    *Store
	platform string
	logger   *slog.Logger
}

// NewCachedTranslator wraps next. A nil store disables caching.
func NewCachedTranslator(next Translator, store *Store, platform string, logger *slog.Logger) *CachedTranslator {
	return &CachedTranslator{
		next:     next,
		store:    store,
		platform: platform,
		logger:   logging.NewComponentLogger(logger, "tmcache"),
	}
}

// Translate implements Translator.
func (c *CachedTranslator) Translate(ctx context.Context, text, from, to string) (string, error) {
	if c.store == nil {
		return c.next.Translate(ctx, text, from, to)
	}
	key := Key{Platform: c.platform, Source: from, Target: to, Text: text}
	cached, ok, err := c.store.Lookup(ctx, key)
	switch {
	case err != nil:
		logging.WarnWithContext(c.logger, "translation cache lookup failed", "cache_lookup_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "translation fetched from provider"),
		)
	case ok:
		c.logger.Debug("translation cache hit", logging.String("target_language", to))
		return cached, nil
	}

	translated, err := c.next.Translate(ctx, text, from, to)
	if err != nil {
		return "", err
	}
	// The client hands back the source text when the provider returns no
	// translation; caching that would pin an untranslated line.
	if translated == text {
		c.logger.Debug("translation equals source, not cached", logging.String("target_language", to))
		return translated, nil
	}
	if err := c.store.Save(ctx, key, translated); err != nil {
		logging.WarnWithContext(c.logger, "translation cache write failed", "cache_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "translation will be fetched again next time"),
		)
	}
	return translated, nil
}
