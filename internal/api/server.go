package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"subtrans/internal/config"
	"subtrans/internal/logging"
	"subtrans/internal/session"
)

// Server owns the HTTP listener and the session it edits.
type Server struct {
	bind        string
	translation config.Translation
	translator  session.Translator
	logger      *slog.Logger

	mu      sync.Mutex
	session *session.Session

	handler  http.Handler
	listener net.Listener
	server   *http.Server
}

// New builds a server around a fresh session. translator may be nil, in
// which case translate requests fail until a client is configured.
func New(cfg *config.Config, translator session.Translator, logger *slog.Logger) *Server {
	logger = logging.NewComponentLogger(logger, "api-server")
	s := &Server{
		bind:        cfg.Server.Bind,
		translation: cfg.Translation,
		translator:  translator,
		logger:      logger,
		session:     session.New(logger),
	}
	s.handler = s.routes(cfg.Server)
	s.server = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Translate requests hold the connection for the whole track.
		WriteTimeout: 15 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes(cfg config.Server) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(requestContext)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(cors.Handler(corsOptions(cfg.AllowedOrigins, cfg.Token)))
	r.Use(maxBodySize(cfg.MaxBodyBytes))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		s.writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Group(func(r chi.Router) {
			r.Use(bearerAuth(cfg.Token))
			r.Use(requireJSON)

			r.Get("/session", s.handleSession)
			r.Post("/session/load", s.handleLoad)
			r.Post("/session/translate", s.handleTranslate)
			r.Get("/session/draft", s.handleDraft)
			r.Put("/session/edits", s.handleEdits)
			r.Post("/session/export", s.handleExport)
		})
	})
	return r
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr reports the bound listener address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.bind
	}
	return s.listener.Addr().String()
}

// Start listens on the configured address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening",
		logging.String("address", listener.Addr().String()),
		logging.String(logging.FieldSessionID, s.session.ID()),
	)
	return nil
}

// Stop shuts the server down and releases the listener.
func (s *Server) Stop() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.server.Shutdown(shutdownCtx)
	if s.listener != nil {
		_ = s.listener.Close()
	}
}
