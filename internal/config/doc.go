// Package config loads, normalizes, and validates subtrans configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SUBTRANS_API_KEY and SUBTRANS_API_SECRET. The Config type centralizes the
// translation credentials, translation memory, HTTP server, and logging
// settings so every command discovers them in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors. The
// package only reads configuration; it never writes credentials back.
package config
