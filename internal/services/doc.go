// Package services defines shared error classification consumed by the
// codec, the session, and the external translation integrations.
//
// Errors that implement ErrorClassifier report one of the ErrorKind values;
// KindOf resolves the kind through wrapped chains so the CLI and the HTTP
// surface can map failures consistently. Provider clients live in
// subpackages (see volcengine).
package services
