// Package server exposes the animal catalog and the leaderboard over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/appengine-ltd/bioguessr/internal/leaderboard"
	"github.com/appengine-ltd/bioguessr/internal/platform/otel"
	"github.com/appengine-ltd/bioguessr/internal/provider"
)

const (
	dailySize    = 5
	maxEntryBody = 4 << 10
)

// Scores is the leaderboard storage the server needs.
type Scores interface {
	leaderboard.Sink
	leaderboard.Board
}

type Server struct {
	catalog *provider.Catalog
	scores  Scores
	now     func() time.Time
}

func New(catalog *provider.Catalog, scores Scores) *Server {
	return &Server{catalog: catalog, scores: scores, now: time.Now}
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /api/play", traced("play", s.handlePlay))
	mux.Handle("GET /api/daily", traced("daily", s.handleDaily))
	mux.Handle("POST "+leaderboard.SubmitPath, traced("update_leaderboard", s.handleSubmit))
	mux.Handle("GET "+leaderboard.TopPath, traced("top_leaderboard", s.handleTop))
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, lis)
}

func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(lis) }()
	log.Printf("listening on %s", lis.Addr())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	a, ok := s.catalog.Random()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "no animals available")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	day := s.now().UTC()
	animals := s.catalog.Daily(day, dailySize)
	if len(animals) == 0 {
		writeError(w, http.StatusServiceUnavailable, "no animals available")
		return
	}
	writeJSON(w, http.StatusOK, provider.DailySet{Date: day.Format(time.DateOnly), Animals: animals})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var e leaderboard.Entry
	if err := json.NewDecoder(io.LimitReader(r.Body, maxEntryBody)).Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	e, err := e.Normalize()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.scores.Submit(r.Context(), e); err != nil {
		log.Printf("store score: %v", err)
		writeError(w, http.StatusInternalServerError, "could not store score")
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	top, err := s.scores.Top(r.Context(), leaderboard.TopSize)
	if err != nil {
		log.Printf("load leaderboard: %v", err)
		writeError(w, http.StatusInternalServerError, "could not load leaderboard")
		return
	}
	writeJSON(w, http.StatusOK, leaderboard.TopResponse{Leaderboard: top})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// traced wraps h in a server span named after the route.
func traced(route string, h http.HandlerFunc) http.Handler {
	tracer := otel.Tracer("server")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "http."+route)
		defer span.End()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r.WithContext(ctx))

		span.SetAttributes(
			attribute.String("http.request.method", r.Method),
			attribute.String("url.path", r.URL.Path),
			attribute.Int("http.response.status_code", rec.status),
		)
		if rec.status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(rec.status))
		}
	})
}
