package api

import (
	"subtrans/internal/session"
	"subtrans/internal/subtitles"
)

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Session string `json:"session"`
}

// CueView is the JSON form of a subtitle cue.
type CueView struct {
	Index       int     `json:"index"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	Text        string  `json:"text"`
	Translation *string `json:"translation,omitempty"`
}

// SessionResponse describes the session and its cues.
type SessionResponse struct {
	Session session.Summary `json:"session"`
	Cues    []CueView       `json:"cues"`
}

// LoadRequest is the body of POST /api/session/load.
type LoadRequest struct {
	Path string `json:"path"`
}

// TranslateRequest is the body of POST /api/session/translate. Empty
// languages fall back to the configured defaults.
type TranslateRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// DraftResponse carries the editable draft and the source text in the same layout.
type DraftResponse struct {
	Draft  string `json:"draft"`
	Source string `json:"source"`
}

// EditsRequest is the body of PUT /api/session/edits.
type EditsRequest struct {
	Draft string `json:"draft"`
}

// ExportRequest is the body of POST /api/session/export.
type ExportRequest struct {
	Path string `json:"path"`
}

// ExportResponse reports the written file.
type ExportResponse struct {
	Path    string          `json:"path"`
	Session session.Summary `json:"session"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func cueViews(cues []subtitles.Cue) []CueView {
	views := make([]CueView, 0, len(cues))
	for _, cue := range cues {
		view := CueView{
			Index: cue.Index,
			Start: cue.Start,
			End:   cue.End,
			Text:  cue.Text,
		}
		if translation, ok := cue.Translation(); ok {
			view.Translation = &translation
		}
		views = append(views, view)
	}
	return views
}
