package services

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a failure so outer layers can map it to an exit
// status or an HTTP response without inspecting concrete types.
type ErrorKind string

const (
	ErrorKindNotFound    ErrorKind = "not_found"
	ErrorKindValidation  ErrorKind = "validation"
	ErrorKindUnsupported ErrorKind = "unsupported"
	ErrorKindUpstream    ErrorKind = "upstream"
	ErrorKindTransport   ErrorKind = "transport"
	ErrorKindInternal    ErrorKind = "internal"
)

// ErrorClassifier allows errors to declare their classification.
type ErrorClassifier interface {
	// ErrorKind returns one of the ErrorKind constants as a string.
	ErrorKind() string
}

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

// KindOf walks the error chain and returns the first classification found.
// Unclassified errors report ErrorKindInternal.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		if kind := strings.TrimSpace(classifier.ErrorKind()); kind != "" {
			return ErrorKind(kind)
		}
	}
	switch {
	case errors.Is(err, ErrValidation):
		return ErrorKindValidation
	case errors.Is(err, ErrNotFound):
		return ErrorKindNotFound
	}
	return ErrorKindInternal
}

// Wrap builds an error message that includes operation context while tagging
// it with the provided marker for later classification.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		if err == nil {
			return errors.New(detail)
		}
		return fmt.Errorf("%s: %w", detail, err)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
