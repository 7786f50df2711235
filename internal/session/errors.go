package session

import (
	"fmt"

	"subtrans/internal/services"
)

var (
	// ErrNoTrack reports an operation that needs a loaded, non-empty track.
	ErrNoTrack = fmt.Errorf("%w: no subtitle track loaded", services.ErrValidation)
	// ErrNoTranslator reports TranslateAll called without a client.
	ErrNoTranslator = fmt.Errorf("%w: no translator configured", services.ErrValidation)
)

// LoadError wraps a failed Load. The session keeps its previous track.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load subtitle %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) ErrorKind() string { return string(services.KindOf(e.Err)) }

// TranslateError wraps the failure that aborted TranslateAll. Index is the
// cue that failed and Completed counts cues translated before it. Index is
// zero when no cue was attempted.
type TranslateError struct {
	Index     int
	Completed int
	Total     int
	Err       error
}

func (e *TranslateError) Error() string {
	if e.Index == 0 {
		return fmt.Sprintf("translate subtitles: %v", e.Err)
	}
	return fmt.Sprintf("translate cue %d (%d of %d completed): %v", e.Index, e.Completed, e.Total, e.Err)
}

func (e *TranslateError) Unwrap() error { return e.Err }

func (e *TranslateError) ErrorKind() string { return string(services.KindOf(e.Err)) }

// ExportError wraps a failed Export.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export subtitle %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

func (e *ExportError) ErrorKind() string { return string(services.KindOf(e.Err)) }
