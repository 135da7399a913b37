// internal/httpserver/server.go
//
// HTTP wiring for the tournament results API, consumed by dashboards
// and scripts that track standings between runs.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Results endpoints: GET /api/runs, GET /api/runs/{id}, GET /api/latest.
//
// Notes:
//   - The server is read-only; runs are written by the `run` command.
//   - CORS is origin‑aware so a browser dashboard on another port can
//     fetch results directly.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/sonder-art/rtorneo-wordle-p26/internal/store"
)

// Server bundles the router and the runs store.
type Server struct {
	r  *chi.Mux
	st store.Store
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store) *Server {
	s := &Server{r: chi.NewRouter(), st: st}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // dashboard-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-tournament","endpoints":["/health","/api/runs","/api/runs/{id}","/api/latest"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// --- results ---
	s.r.Get("/api/runs", s.handleListRuns)
	s.r.Get("/api/runs/{id}", s.handleGetRun)
	s.r.Get("/api/latest", s.handleLatest)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ------------------------------ handlers -----------------------------------

// handleListRuns returns metadata for all stored runs, newest first.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	infos, err := s.st.ListRuns(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list runs")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	if infos == nil {
		infos = []store.RunInfo{}
	}
	_ = json.NewEncoder(w).Encode(infos)
}

// handleGetRun returns one full report by tournament ID.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rep, err := s.st.GetRun(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("get run")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(rep)
}

// handleLatest returns the most recent full report.
func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	rep, err := s.st.LatestRun(r.Context())
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"error":"no_runs"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("latest run")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(rep)
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
