// Package api provides the HTTP REST API server for bureauscrub.
//
// It serves the view documents emitted by the last pipeline run so a
// dashboard front end can read them without filesystem access.
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/kredmint/bureauscrub/internal/config"
	"github.com/kredmint/bureauscrub/pkg/models"
	"github.com/kredmint/bureauscrub/pkg/utils"
)

// Server is the HTTP API server.
type Server struct {
	router  chi.Router
	cfg     *config.Config
	dataDir string
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config) *Server {
	srv := &Server{
		cfg:     cfg,
		dataDir: cfg.Output.Dir,
	}
	srv.router = srv.buildRouter()
	return srv
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// CORS
	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", s.handleHealth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/views", s.handleListViews)
		r.Get("/views/{name}", s.handleGetView)
	})

	return r
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ViewStatus describes one view document and its availability.
type ViewStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	UpdatedAt string `json:"updatedAt,omitempty"` // RFC 3339, file mtime
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":   "ok",
			"version":  "dev",
			"time_ist": utils.NowIST().Format(time.RFC3339),
		},
	})
}

func (s *Server) handleListViews(w http.ResponseWriter, r *http.Request) {
	var views []ViewStatus
	for _, name := range models.ViewNames() {
		st := ViewStatus{Name: name}
		if info, err := os.Stat(s.viewPath(name)); err == nil {
			st.Available = true
			st.UpdatedAt = info.ModTime().UTC().Format(time.RFC3339)
		}
		views = append(views, st)
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    views,
	})
}

func (s *Server) handleGetView(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !knownView(name) {
		writeError(w, http.StatusNotFound, "unknown view: "+name)
		return
	}

	data, err := os.ReadFile(s.viewPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			writeError(w, http.StatusNotFound, "view not generated yet: "+name)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}

// ============================================================
// Helpers
// ============================================================

// viewPath maps a validated view name to its emitted file. Names come
// from the fixed ViewNames list, never from the raw URL.
func (s *Server) viewPath(name string) string {
	return filepath.Join(s.dataDir, name+".json")
}

func knownView(name string) bool {
	for _, n := range models.ViewNames() {
		if n == name {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
