package subtitles

import (
	"errors"
	"fmt"
	"strings"

	"subtrans/internal/services"
)

var (
	// ErrNotFound matches NotFoundError through errors.Is.
	ErrNotFound = errors.New("subtitle file not found")
	// ErrUnsupportedFormat matches UnsupportedFormatError through errors.Is.
	ErrUnsupportedFormat = errors.New("unsupported subtitle format")
	// ErrMalformed matches ParseError through errors.Is.
	ErrMalformed = errors.New("malformed subtitle")
)

// NotFoundError reports a subtitle path that does not exist.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("subtitle file not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func (e *NotFoundError) ErrorKind() string { return string(services.ErrorKindNotFound) }

// UnsupportedFormatError reports a file extension or format name outside
// the supported set.
type UnsupportedFormatError struct {
	Path      string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	ext := e.Extension
	if strings.TrimSpace(ext) == "" {
		ext = "<none>"
	}
	if e.Path == "" {
		return fmt.Sprintf("unsupported subtitle format %q (want srt or ass)", ext)
	}
	return fmt.Sprintf("unsupported subtitle format %q for %s (want .srt or .ass)", ext, e.Path)
}

func (e *UnsupportedFormatError) Is(target error) bool { return target == ErrUnsupportedFormat }

func (e *UnsupportedFormatError) ErrorKind() string { return string(services.ErrorKindUnsupported) }

// ParseError reports malformed input. Seq is the block's sequence number
// when it could be read and zero otherwise; Block is the 1-based position of
// the offending block.
type ParseError struct {
	Format Format
	Seq    int
	Block  int
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse ")
	b.WriteString(string(e.Format))
	switch {
	case e.Seq > 0:
		fmt.Fprintf(&b, ": cue %d", e.Seq)
	case e.Block > 0:
		fmt.Fprintf(&b, ": block %d", e.Block)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrMalformed }

func (e *ParseError) ErrorKind() string { return string(services.ErrorKindValidation) }
