package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/BlackRoad-OS/blackroad-nuclear-waste-tracker/internal/ledger"
	"github.com/BlackRoad-OS/blackroad-nuclear-waste-tracker/internal/store"
)

// Server is the waste-tracker HTTP API server.
type Server struct {
	db      *store.DB
	ledger  *ledger.Ledger
	router  chi.Router
	version string
	started time.Time
}

// New creates a new Server over the given database.
func New(db *store.DB, version string) *Server {
	s := &Server{
		db:      db,
		ledger:  ledger.New(db),
		version: version,
		started: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/containers", s.handleRegister)
		r.Get("/containers", s.handleInventory)
		r.Get("/containers/{containerID}", s.handleGetContainer)
		r.Get("/containers/{containerID}/activity", s.handleCurrentActivity)
		r.Post("/containers/{containerID}/transfer", s.handleTransfer)

		r.Get("/transfers", s.handleListTransfers)
		r.Get("/transfers/{transferID}/manifest", s.handleManifest)

		r.Get("/compliance", s.handleCompliance)
		r.Get("/schedule", s.handleSchedule)
		r.Get("/activity", s.handleTotalActivity)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := s.db.Ping(); err != nil {
		dbOK = false
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
		"db_path": s.db.Path,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
