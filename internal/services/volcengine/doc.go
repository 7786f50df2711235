// Package volcengine provides the HMAC-signed client for the Volcengine text
// translation API.
//
// # Protocol
//
// Each request is a POST to /api/v2/translate/text carrying X-Date (Unix
// seconds), X-Nonce (Unix milliseconds), X-Content-Sha256 (base64 SHA-256 of
// the text) and an Authorization header whose signature is the base64
// HMAC-SHA256 of "POST\n<path>\n<date>\n<nonce>\n" keyed by the API secret.
// The body hash is sent but is not part of the signed bytes; the service
// accepts requests in this shape and the client keeps it unchanged.
//
// # Entry Points
//
// NewClient: validate the platform and build a client from Config.
// Client.Translate: translate one text synchronously.
//
// # Errors
//
// Non-200 responses and provider error payloads surface as *APIError.
// Network failures and timeouts surface as *TransportError. Neither is
// retried; callers decide whether to try again.
package volcengine
