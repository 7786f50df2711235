// Package tmcache stores completed translations in a local SQLite database so
// repeated runs over the same subtitles skip the network.
//
// Entries are keyed by platform, source language, target language and a
// SHA-256 of the source text. Open takes an exclusive file lock next to the
// database; a second process receives ErrLocked and is expected to continue
// without the cache. CachedTranslator wraps any Translator and consults the
// store before delegating. Cache read and write failures are logged and never
// fail a translation.
package tmcache
