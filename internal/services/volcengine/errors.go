package volcengine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"subtrans/internal/services"
)

// ErrUnsupportedPlatform matches UnsupportedPlatformError through errors.Is.
var ErrUnsupportedPlatform = errors.New("unsupported translation platform")

// UnsupportedPlatformError reports a platform name the client cannot serve.
type UnsupportedPlatformError struct {
	Platform string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported translation platform %q (want %s)", e.Platform, PlatformVolcengine)
}

func (e *UnsupportedPlatformError) Is(target error) bool { return target == ErrUnsupportedPlatform }

func (e *UnsupportedPlatformError) ErrorKind() string { return string(services.ErrorKindUnsupported) }

// APIError reports a response the provider rejected: either a non-200 status
// with its body, or a 200 whose ResponseMetadata carries an error.
type APIError struct {
	StatusCode int
	Body       string
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		if e.Code != "" {
			return fmt.Sprintf("volcengine translate: api error %s: %s", e.Code, e.Message)
		}
		return fmt.Sprintf("volcengine translate: api error: %s", e.Message)
	}
	return fmt.Sprintf("volcengine translate: http %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

func (e *APIError) ErrorKind() string { return string(services.ErrorKindUpstream) }

// TransportError reports a request that never produced a response, including
// timeouts and cancellation.
type TransportError struct {
	Op      string
	Timeout time.Duration
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("volcengine translate: %s (timeout=%s): %v", e.Op, e.Timeout, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) ErrorKind() string { return string(services.ErrorKindTransport) }
