package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/rshade/propfocus/internal/property"
)

const (
	headerAPIVersion  = "X-API-Version"
	readHeaderTimeout = 5 * time.Second
	corsMaxAge        = 300
)

// Options configures the dev server.
type Options struct {
	Addr   string
	Token  string
	Logger zerolog.Logger
}

// Server serves fixtures over HTTP.
type Server struct {
	fixtures *Fixtures
	token    string
	logger   zerolog.Logger
	http     *http.Server
}

// New builds a Server for the given fixtures.
func New(fixtures *Fixtures, opts Options) *Server {
	s := &Server{
		fixtures: fixtures,
		token:    opts.Token,
		logger:   opts.Logger.With().Str("component", "devserver").Logger(),
	}
	s.http = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{headerAPIVersion},
		MaxAge:         corsMaxAge,
	}))
	r.Use(s.versionHeader)

	r.Route("/api/properties", func(r chi.Router) {
		r.Use(s.auth)
		r.Get("/", s.handleListProperties)
		r.Get("/{id}/revenue", s.handleRevenue)
	})

	return r
}

// ListenAndServe runs until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("dev server listening")
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("dev server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), readHeaderTimeout)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down dev server: %w", err)
		}
		return nil
	}
}

func (s *Server) handleListProperties(w http.ResponseWriter, _ *http.Request) {
	if s.fixtures.FailProperties {
		writeError(w, http.StatusInternalServerError, "property store unavailable")
		return
	}
	writeJSON(w, http.StatusOK, s.fixtures.listBody())
}

func (s *Server) handleRevenue(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	period := r.URL.Query().Get("period")
	if period != "" {
		if _, err := property.ParsePeriod(period); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	summary, ok := s.fixtures.revenueFor(id, period)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no revenue for property %q", id))
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" {
			got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if got != s.token {
				writeError(w, http.StatusUnauthorized, "invalid or missing bearer token")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) versionHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headerAPIVersion, s.fixtures.APIVersion)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Str("request_id", middleware.GetReqID(r.Context())).
			Dur("duration", time.Since(start)).
			Msg("request served")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
