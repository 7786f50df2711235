package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"subtrans/internal/language"
	"subtrans/internal/logging"
	"subtrans/internal/services"
	"subtrans/internal/subtitles"
)

// State is the session's position in the load/translate/export workflow.
type State string

const (
	StateEmpty      State = "empty"
	StateLoaded     State = "loaded"
	StateTranslated State = "translated"
	StateExported   State = "exported"
)

// Translator turns one text into another language.
type Translator interface {
	Translate(ctx context.Context, text, from, to string) (string, error)
}

// ProgressFunc observes TranslateAll after each translated cue.
type ProgressFunc func(done, total int)

// Option customizes a Session.
type Option func(*Session)

// WithProgress registers a callback invoked after each translated cue.
func WithProgress(fn ProgressFunc) Option {
	return func(s *Session) {
		s.progress = fn
	}
}

// WithID overrides the generated session identifier.
func WithID(id string) Option {
	return func(s *Session) {
		if id = strings.TrimSpace(id); id != "" {
			s.id = id
		}
	}
}

// Session holds the current track and its workflow state.
type Session struct {
	id       string
	logger   *slog.Logger
	progress ProgressFunc

	track          *subtitles.Track
	state          State
	sourceLanguage string
	targetLanguage string
	exportedPath   string
}

// Summary is a read-only view of the session for presentation layers.
type Summary struct {
	ID             string           `json:"id"`
	State          State            `json:"state"`
	Path           string           `json:"path,omitempty"`
	Format         subtitles.Format `json:"format,omitempty"`
	Cues           int              `json:"cues"`
	Translated     int              `json:"translated"`
	SourceLanguage string           `json:"source_language,omitempty"`
	TargetLanguage string           `json:"target_language,omitempty"`
	ExportedPath   string           `json:"exported_path,omitempty"`
}

// New creates an empty session.
func New(logger *slog.Logger, opts ...Option) *Session {
	s := &Session{
		id:    uuid.NewString(),
		state: StateEmpty,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(logger, "session").With(logging.String(logging.FieldSessionID, s.id))
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// State returns the current workflow state.
func (s *Session) State() State { return s.state }

// Track returns the loaded track, or nil before the first successful Load.
// Callers must not modify it.
func (s *Session) Track() *subtitles.Track { return s.track }

// Cues returns a copy of the loaded cues.
func (s *Session) Cues() []subtitles.Cue {
	if s.track == nil {
		return nil
	}
	return append([]subtitles.Cue(nil), s.track.Cues...)
}

// Summary reports the session's current state.
func (s *Session) Summary() Summary {
	summary := Summary{
		ID:             s.id,
		State:          s.state,
		Cues:           s.track.Len(),
		Translated:     s.track.TranslatedCount(),
		SourceLanguage: s.sourceLanguage,
		TargetLanguage: s.targetLanguage,
		ExportedPath:   s.exportedPath,
	}
	if s.track != nil {
		summary.Path = s.track.Path
		summary.Format = s.track.Format
	}
	return summary
}

// Load parses path and replaces the current track. On failure the previous
// track and state are kept.
func (s *Session) Load(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return &LoadError{Err: services.Wrap(services.ErrValidation, "session", "load", "path required", nil)}
	}
	track, err := subtitles.Parse(path)
	if err != nil {
		logging.WarnWithContext(s.logger, "subtitle load failed", "load_failed",
			logging.String("path", path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the file exists and is a valid .srt or .ass file"),
			logging.String(logging.FieldImpact, "previous track kept"),
		)
		return &LoadError{Path: path, Err: err}
	}
	s.track = track
	s.state = StateLoaded
	s.sourceLanguage = ""
	s.targetLanguage = ""
	s.exportedPath = ""
	s.logger.Info("subtitle track loaded",
		logging.String("path", path),
		logging.String("format", string(track.Format)),
		logging.Int("cues", track.Len()),
	)
	return nil
}

// TranslateAll translates every cue in order with client. An empty from
// means auto detection. The first failure stops the run; earlier cues keep
// their new translation and later cues are not attempted.
func (s *Session) TranslateAll(ctx context.Context, client Translator, from, to string) error {
	if client == nil {
		return &TranslateError{Err: ErrNoTranslator}
	}
	if s.track.Empty() {
		return &TranslateError{Err: ErrNoTrack}
	}
	if strings.TrimSpace(from) == "" {
		from = language.Auto
	}

	total := s.track.Len()
	started := time.Now()
	sampler := logging.NewProgressSampler(10)
	s.logger.Info("translation started",
		logging.Int("cues", total),
		logging.String("source_language", from),
		logging.String("target_language", to),
	)
	for i := range s.track.Cues {
		cue := &s.track.Cues[i]
		if err := ctx.Err(); err != nil {
			return s.translateFailed(cue.Index, i, total, err)
		}
		translated, err := client.Translate(ctx, cue.Text, from, to)
		if err != nil {
			return s.translateFailed(cue.Index, i, total, err)
		}
		cue.SetTranslation(translated)
		if s.progress != nil {
			s.progress(i+1, total)
		}
		if sampler.ShouldLog(i+1, total) {
			s.logger.Debug("translation progress",
				logging.Int("done", i+1),
				logging.Int("cues", total),
			)
		}
	}

	s.state = StateTranslated
	s.sourceLanguage = from
	s.targetLanguage = to
	s.logger.Info("translation completed",
		logging.Int("cues", total),
		logging.Duration("duration", time.Since(started)),
	)
	return nil
}

func (s *Session) translateFailed(index, completed, total int, err error) error {
	logging.ErrorWithContext(s.logger, "translation aborted", "translate_failed",
		logging.Int("cue", index),
		logging.Int("completed", completed),
		logging.Int("cues", total),
		logging.String("error_kind", string(services.KindOf(err))),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "fix the cause and translate again; completed cues are kept"),
	)
	return &TranslateError{Index: index, Completed: completed, Total: total, Err: err}
}

// ApplyEdits maps an edited draft back onto the cues by position. The draft
// is split on blank lines; paragraph i sets cue i's translation to the text
// after its first ". " (the numbering RenderDraft emits), or to the whole
// paragraph when it has none. Both are trimmed. Surplus paragraphs are
// ignored and surplus cues keep their translation.
func (s *Session) ApplyEdits(edited string) error {
	if s.track.Empty() {
		return ErrNoTrack
	}
	edited = strings.ReplaceAll(edited, "\r\n", "\n")
	paragraphs := strings.Split(edited, "\n\n")
	applied := min(len(paragraphs), len(s.track.Cues))
	for i := 0; i < applied; i++ {
		s.track.Cues[i].SetTranslation(paragraphText(paragraphs[i]))
	}
	s.logger.Info("edits applied",
		logging.Int("paragraphs", len(paragraphs)),
		logging.Int("applied", applied),
		logging.Int("cues", len(s.track.Cues)),
	)
	return nil
}

func paragraphText(paragraph string) string {
	if _, after, ok := strings.Cut(paragraph, ". "); ok {
		return strings.TrimSpace(after)
	}
	return strings.TrimSpace(paragraph)
}

// RenderDraft renders the editable draft: one "N. text" paragraph per cue,
// separated by blank lines, using the translation where present. Blank lines
// inside a cue are dropped so each cue stays one paragraph.
// ApplyEdits(RenderDraft()) keeps every cue aligned and leaves trimmed
// translations without blank lines unchanged.
func (s *Session) RenderDraft() string {
	return s.render(subtitles.Cue.OutputText)
}

// RenderSource renders the source text in the same layout as RenderDraft.
func (s *Session) RenderSource() string {
	return s.render(func(c subtitles.Cue) string { return c.Text })
}

func (s *Session) render(text func(subtitles.Cue) string) string {
	if s.track == nil {
		return ""
	}
	var b strings.Builder
	for i, cue := range s.track.Cues {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%d. %s", cue.Index, subtitles.CompactText(text(cue)))
	}
	return b.String()
}

// Export writes the track to path in the format its extension selects and
// returns the written path.
func (s *Session) Export(path string) (string, error) {
	path = strings.TrimSpace(path)
	if s.track.Empty() {
		return "", &ExportError{Path: path, Err: ErrNoTrack}
	}
	if path == "" {
		return "", &ExportError{Err: services.Wrap(services.ErrValidation, "session", "export", "output path required", nil)}
	}
	if err := subtitles.Serialize(s.track, path); err != nil {
		logging.WarnWithContext(s.logger, "subtitle export failed", "export_failed",
			logging.String("path", path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "no file written"),
		)
		return "", &ExportError{Path: path, Err: err}
	}
	s.state = StateExported
	s.exportedPath = path
	s.logger.Info("subtitle track exported",
		logging.String("path", path),
		logging.Int("cues", s.track.Len()),
		logging.Int("translated", s.track.TranslatedCount()),
	)
	return path, nil
}
