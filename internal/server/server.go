// Package server provides the HTTP server for the gesture gate service.
package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ayusman/gesturegate/internal/classify"
	"github.com/ayusman/gesturegate/internal/server/api"
	"github.com/ayusman/gesturegate/internal/session"
	"github.com/ayusman/gesturegate/internal/store"
)

// Config holds the server configuration.
type Config struct {
	Manager  *session.Manager
	Store    *store.Store
	Defaults api.SessionDefaults
}

// Server represents the HTTP server for the gesture gate service.
type Server struct {
	config   Config
	mux      *http.ServeMux
	sessions *api.SessionsHandler
	start    time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	s.sessions = api.NewSessionsHandler(s.config.Manager, s.config.Store, s.config.Defaults)
	frames := NewFrameSocketHandler(s.config.Manager)

	// Route between the REST handler and the per-frame WebSocket:
	// exactly /api/sessions/{id}/ws upgrades, everything else is REST.
	sessionRouter := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isFrameSocketPath(r.URL.Path) {
			frames.ServeHTTP(w, r)
			return
		}
		s.sessions.ServeHTTP(w, r)
	})

	s.mux.Handle("/api/sessions", sessionRouter)
	s.mux.Handle("/api/sessions/", sessionRouter)

	if s.config.Defaults.RecordingDir != "" {
		recordings := api.NewRecordingsHandler(s.config.Defaults.RecordingDir, s.config.Defaults.Tuning)
		s.mux.Handle("/api/recordings", recordings)
		s.mux.Handle("/api/recordings/", recordings)
	}

	if s.config.Store != nil {
		profilesHandler := api.NewProfilesHandler(s.config.Store)
		s.mux.Handle("/api/profiles", profilesHandler)
		s.mux.Handle("/api/profiles/", profilesHandler)

		settingsHandler := api.NewSettingsHandler(s.config.Store)
		s.mux.Handle("/api/settings/", settingsHandler)
	}
}

// isFrameSocketPath reports whether path names a session's WebSocket
// endpoint: /api/sessions/{id}/ws with a non-empty id and nothing after.
func isFrameSocketPath(path string) bool {
	rest := strings.TrimPrefix(path, "/api/sessions/")
	if rest == path {
		return false
	}
	id, action, ok := strings.Cut(rest, "/")
	return ok && id != "" && action == "ws"
}

// SetTuning replaces the classifier thresholds applied to new sessions.
// Called by the config watcher on hot reload.
func (s *Server) SetTuning(tuning classify.Config) {
	s.sessions.SetTuning(tuning)
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status":   "ok",
		"uptime":   uptime.String(),
		"sessions": s.config.Manager.Len(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
