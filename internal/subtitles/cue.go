package subtitles

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a supported subtitle file format.
type Format string

const (
	FormatSRT Format = "srt"
	FormatASS Format = "ass"
)

// FormatFromPath selects the format from the file extension, case-insensitively.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".srt":
		return FormatSRT, nil
	case ".ass":
		return FormatASS, nil
	default:
		return "", &UnsupportedFormatError{Path: path, Extension: ext}
	}
}

// ParseFormat resolves a user supplied format name such as "srt" or ".ASS".
func ParseFormat(name string) (Format, error) {
	trimmed := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".")
	switch Format(trimmed) {
	case FormatSRT, FormatASS:
		return Format(trimmed), nil
	default:
		return "", &UnsupportedFormatError{Extension: name}
	}
}

// Extension returns the canonical file extension including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// Cue is one timed subtitle entry.
type Cue struct {
	// Index is the 1-based position in the track. It is used for display and
	// export numbering only.
	Index int
	// Start and End are format-native timestamps kept as written.
	Start string
	End   string
	// Text is the source text as parsed.
	Text string

	translation string
	translated  bool
}

// SetTranslation records the translated text for the cue, replacing any
// earlier translation.
func (c *Cue) SetTranslation(text string) {
	c.translation = text
	c.translated = true
}

// ClearTranslation resets the cue to its untranslated state.
func (c *Cue) ClearTranslation() {
	c.translation = ""
	c.translated = false
}

// Translation returns the translated text and whether one has been set.
func (c Cue) Translation() (string, bool) {
	return c.translation, c.translated
}

// OutputText is the text writers emit: the translation when present,
// otherwise the source text.
func (c Cue) OutputText() string {
	if c.translated {
		return c.translation
	}
	return c.Text
}

// CompactText drops blank and whitespace-only lines. Cue text passes
// through it wherever a blank line would end the cue early, such as SRT
// blocks and draft paragraphs.
func CompactText(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func (c Cue) String() string {
	return fmt.Sprintf("#%d %s --> %s", c.Index, c.Start, c.End)
}

// Track is an ordered list of cues together with the format and path it was
// read from.
type Track struct {
	Format Format
	Path   string
	Cues   []Cue
}

// NewTrack builds a track from cues, renumbering them from 1 in order.
func NewTrack(format Format, path string, cues []Cue) *Track {
	for i := range cues {
		cues[i].Index = i + 1
	}
	return &Track{Format: format, Path: path, Cues: cues}
}

// Len reports the number of cues. A nil track has none.
func (t *Track) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Cues)
}

// Empty reports whether the track has no cues.
func (t *Track) Empty() bool {
	return t.Len() == 0
}

// TranslatedCount reports how many cues carry a translation.
func (t *Track) TranslatedCount() int {
	if t == nil {
		return 0
	}
	count := 0
	for _, cue := range t.Cues {
		if cue.translated {
			count++
		}
	}
	return count
}
