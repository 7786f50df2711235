// Package session orchestrates one subtitle editing workflow: load a file,
// translate every cue, reconcile the user's edited draft, and export.
//
// A Session owns the current Track and moves through Empty, Loaded,
// Translated and Exported. Loading again resets to Loaded; translating again
// stays Translated. Sessions are single-owner and not safe for concurrent
// use; the HTTP surface guards its session with a mutex.
//
// Translation is strictly sequential in cue order. The first failure aborts
// the run with a TranslateError; cues translated before it keep their text.
package session
