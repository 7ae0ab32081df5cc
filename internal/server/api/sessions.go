package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ayusman/gesturegate/internal/classify"
	"github.com/ayusman/gesturegate/internal/gate"
	"github.com/ayusman/gesturegate/internal/landmark"
	"github.com/ayusman/gesturegate/internal/recorder"
	"github.com/ayusman/gesturegate/internal/session"
	"github.com/ayusman/gesturegate/internal/store"
)

// SessionDefaults are applied to sessions created without explicit
// parameters. They track the service configuration and may be retuned at
// runtime.
type SessionDefaults struct {
	Target       uint32
	StableFrames uint32
	Timeout      time.Duration
	Tuning       classify.Config

	// RecordingDir is where recorded sessions land. Empty disables the
	// record option on session creation.
	RecordingDir string
}

// SessionsHandler handles HTTP requests for gate sessions.
type SessionsHandler struct {
	manager *session.Manager
	store   *store.Store

	mu       sync.RWMutex
	defaults SessionDefaults
}

// NewSessionsHandler creates a SessionsHandler. st may be nil when no store
// is configured; profile lookups then fail with 404 and the default-profile
// setting is ignored.
func NewSessionsHandler(m *session.Manager, st *store.Store, defaults SessionDefaults) *SessionsHandler {
	return &SessionsHandler{
		manager:  m,
		store:    st,
		defaults: defaults,
	}
}

// SetTuning replaces the classifier thresholds applied to new sessions.
func (h *SessionsHandler) SetTuning(tuning classify.Config) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.defaults.Tuning = tuning
}

// ServeHTTP routes session requests.
// Expected paths: /api/sessions, /api/sessions/{id},
// /api/sessions/{id}/start|reset|fail|frames.
func (h *SessionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/sessions")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id, action, _ := strings.Cut(path, "/")

	if action == "" {
		switch r.Method {
		case http.MethodGet:
			h.get(w, r, id)
		case http.MethodDelete:
			h.delete(w, r, id)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch action {
	case "start", "reset", "fail":
		h.transition(w, r, id, action)
	case "frames":
		h.processFrame(w, r, id)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

type createSessionRequest struct {
	Target       uint32 `json:"target"`
	StableFrames uint32 `json:"stable_frames"`
	Profile      string `json:"profile"`
	TimeoutMs    int64  `json:"timeout_ms"`
	Record       bool   `json:"record"`
}

// frameRequest carries one frame in either supported input shape: a point
// sequence or flat parallel coordinate arrays.
type frameRequest struct {
	Points []landmark.Point3D `json:"points"`
	Xs     []float64          `json:"xs"`
	Ys     []float64          `json:"ys"`
}

type listSessionsResponse struct {
	Sessions []session.Snapshot `json:"sessions"`
}

func (h *SessionsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	h.mu.RLock()
	defaults := h.defaults
	h.mu.RUnlock()

	opts := session.Options{
		Target:       req.Target,
		StableFrames: req.StableFrames,
		Classifier:   defaults.Tuning,
		Timeout:      defaults.Timeout,
	}
	if opts.Target == 0 {
		opts.Target = defaults.Target
	}
	if opts.StableFrames == 0 {
		opts.StableFrames = defaults.StableFrames
	}
	if req.TimeoutMs > 0 {
		opts.Timeout = time.Duration(req.TimeoutMs) * time.Millisecond
	}

	if req.Profile != "" {
		if h.store == nil {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		profile, err := h.store.Profiles().GetByName(req.Profile)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Profile not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "Failed to load profile")
			return
		}
		applyProfile(&opts, profile, req.StableFrames)
	} else if profile, ok := h.defaultProfile(); ok {
		applyProfile(&opts, profile, req.StableFrames)
	}

	if req.Record && defaults.RecordingDir == "" {
		writeError(w, http.StatusBadRequest, "Recording is not enabled")
		return
	}

	s, err := h.manager.Create(opts)
	if err != nil {
		if errors.Is(err, session.ErrInvalidTarget) {
			writeError(w, http.StatusBadRequest, "Target must be positive")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	if req.Record {
		rec, err := recorder.New(defaults.RecordingDir, s.ID)
		if err != nil {
			h.manager.Remove(s.ID)
			writeError(w, http.StatusInternalServerError, "Failed to create recording")
			return
		}
		s.AttachRecorder(rec)
	}

	writeJSON(w, http.StatusCreated, s.Snapshot())
}

// defaultProfile resolves the profile named by the default_profile setting.
// A missing setting or a dangling profile name falls back to the configured
// defaults.
func (h *SessionsHandler) defaultProfile() (*store.Profile, bool) {
	if h.store == nil {
		return nil, false
	}
	name, err := h.store.Settings().Get(store.DefaultProfileKey)
	if err != nil {
		return nil, false
	}
	profile, err := h.store.Profiles().GetByName(name)
	if err != nil {
		return nil, false
	}
	return profile, true
}

// applyProfile overlays a stored profile's tuning onto opts. An explicit
// stable_frames in the request still wins over the profile's.
func applyProfile(opts *session.Options, profile *store.Profile, requestedStable uint32) {
	opts.Classifier = classify.Config{YMargin: profile.YMargin, ThumbRatio: profile.ThumbRatio}
	if requestedStable == 0 && profile.StableFrames > 0 {
		opts.StableFrames = profile.StableFrames
	}
}

func (h *SessionsHandler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, listSessionsResponse{Sessions: h.manager.List()})
}

func (h *SessionsHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	s, err := h.manager.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

func (h *SessionsHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.manager.Remove(id); err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionsHandler) transition(w http.ResponseWriter, r *http.Request, id, action string) {
	s, err := h.manager.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	var snap session.Snapshot
	switch action {
	case "start":
		snap = s.Start()
	case "reset":
		snap = s.Reset()
	case "fail":
		// No-op unless running; external timers may race with a session
		// that already concluded.
		snap = s.Fail()
	}

	writeJSON(w, http.StatusOK, snap)
}

func (h *SessionsHandler) processFrame(w http.ResponseWriter, r *http.Request, id string) {
	s, err := h.manager.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	var req frameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// A frame that cannot be decoded is "no gesture this frame", never
		// a fault that would break the caller's frame loop.
		writeJSON(w, http.StatusOK, DegradedResult(s))
		return
	}

	writeJSON(w, http.StatusOK, ProcessFrameRequest(s, req.Points, req.Xs, req.Ys))
}

// ProcessFrameRequest feeds one decoded frame to the session, choosing
// between the point and flat-array input shapes.
func ProcessFrameRequest(s *session.Session, points []landmark.Point3D, xs, ys []float64) gate.Result {
	if len(points) > 0 {
		return s.ProcessFrame(points)
	}
	return s.ProcessArrays(xs, ys)
}

// DegradedResult is the response for an undecodable frame: no gesture, not
// scored, current session state untouched.
func DegradedResult(s *session.Session) gate.Result {
	snap := s.Snapshot()
	return gate.Result{
		Gesture: classify.GestureNone.String(),
		State:   snap.State,
		Count:   snap.Count,
		Scored:  false,
	}
}
