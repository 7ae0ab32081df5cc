// Package server provides the HTTP server for the gesture gate service.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/ayusman/gesturegate/internal/landmark"
	"github.com/ayusman/gesturegate/internal/server/api"
	"github.com/ayusman/gesturegate/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// FrameSocketHandler serves the per-frame WebSocket channel for one session:
// every inbound landmark frame message yields one outbound result message.
type FrameSocketHandler struct {
	manager *session.Manager
}

// NewFrameSocketHandler creates a FrameSocketHandler with the given manager.
func NewFrameSocketHandler(m *session.Manager) *FrameSocketHandler {
	return &FrameSocketHandler{manager: m}
}

// frameMessage is one inbound frame in either supported input shape.
type frameMessage struct {
	Points []landmark.Point3D `json:"points"`
	Xs     []float64          `json:"xs"`
	Ys     []float64          `json:"ys"`
}

// ServeHTTP handles WebSocket upgrade requests on /api/sessions/{id}/ws.
func (h *FrameSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := sessionIDFromPath(r.URL.Path)

	s, err := h.manager.Get(id)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg frameMessage
		var result interface{}
		if err := json.Unmarshal(data, &msg); err != nil {
			// Undecodable frames degrade to "no gesture this frame"; a bad
			// message must never terminate the session's frame loop.
			result = api.DegradedResult(s)
		} else {
			result = api.ProcessFrameRequest(s, msg.Points, msg.Xs, msg.Ys)
		}

		if err := conn.WriteJSON(result); err != nil {
			return
		}
	}
}

// sessionIDFromPath extracts {id} from /api/sessions/{id}/ws.
func sessionIDFromPath(path string) string {
	path = strings.TrimPrefix(path, "/api/sessions/")
	id, _, _ := strings.Cut(path, "/")
	return id
}
