package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"subtrans/internal/language"
	"subtrans/internal/logging"
	"subtrans/internal/services"
	"subtrans/internal/session"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Session: s.session.ID()})
}

func (s *Server) handleSession(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, s.sessionResponse())
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req LoadRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.Load(req.Path); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.sessionResponse())
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req TranslateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	from, to, err := s.languages(req)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.TranslateAll(r.Context(), s.translator, from, to); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.sessionResponse())
}

func (s *Server) languages(req TranslateRequest) (string, string, error) {
	from := strings.TrimSpace(req.From)
	if from == "" {
		from = s.translation.SourceLanguage
	}
	to := strings.TrimSpace(req.To)
	if to == "" {
		to = s.translation.TargetLanguage
	}
	normalizedFrom, err := language.Normalize(from)
	if err != nil {
		return "", "", services.Wrap(services.ErrValidation, "api", "translate", "invalid source language", err)
	}
	if language.IsAuto(to) {
		return "", "", services.Wrap(services.ErrValidation, "api", "translate", "target language cannot be auto", nil)
	}
	normalizedTo, err := language.Normalize(to)
	if err != nil {
		return "", "", services.Wrap(services.ErrValidation, "api", "translate", "invalid target language", err)
	}
	return normalizedFrom, normalizedTo, nil
}

func (s *Server) handleDraft(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.Track().Empty() {
		s.writeFailure(w, r, session.ErrNoTrack)
		return
	}
	s.writeJSON(w, http.StatusOK, DraftResponse{
		Draft:  s.session.RenderDraft(),
		Source: s.session.RenderSource(),
	})
}

func (s *Server) handleEdits(w http.ResponseWriter, r *http.Request) {
	var req EditsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.session.ApplyEdits(req.Draft); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.sessionResponse())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	path, err := s.session.Export(req.Path)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ExportResponse{Path: path, Session: s.session.Summary()})
}

// sessionResponse must be called with s.mu held.
func (s *Server) sessionResponse() SessionResponse {
	return SessionResponse{
		Session: s.session.Summary(),
		Cues:    cueViews(s.session.Cues()),
	}
}

// decodeJSON reads a single JSON object. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return err
		}
		return services.Wrap(services.ErrValidation, "api", "decode", "invalid request body", err)
	}
	return nil
}

// statusFor maps an error to the HTTP status that best describes it.
func statusFor(err error) int {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, session.ErrNoTranslator):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	switch services.KindOf(err) {
	case services.ErrorKindNotFound:
		return http.StatusNotFound
	case services.ErrorKindValidation:
		return http.StatusBadRequest
	case services.ErrorKindUnsupported:
		return http.StatusUnsupportedMediaType
	case services.ErrorKindUpstream:
		return http.StatusBadGateway
	case services.ErrorKindTransport:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	kind := string(services.KindOf(err))
	if status >= http.StatusInternalServerError {
		logging.ErrorWithContext(logging.WithContext(r.Context(), s.logger), "request failed", "api_request_failed",
			logging.String("path", r.URL.Path),
			logging.String("error_kind", kind),
			logging.Error(err),
		)
	}
	s.writeJSON(w, status, ErrorResponse{Error: err.Error(), Kind: kind})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: message})
}
