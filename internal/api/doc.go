// Package api serves one editing session over HTTP.
//
// The router exposes the load, translate, draft, edits, and export
// operations of internal/session as JSON endpoints so a browser-based editor
// can drive the same workflow as the CLI. All session access is serialized
// through a single mutex; a long translate request blocks the other session
// endpoints until it finishes.
package api
