package api

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ayusman/gesturegate/internal/classify"
	"github.com/ayusman/gesturegate/internal/recorder"
)

// RecordingsHandler serves recorded landmark streams: listing what is on
// disk and replaying a recording through the classifier to report how each
// frame labels under a given tuning.
type RecordingsHandler struct {
	dir    string
	tuning classify.Config
}

// NewRecordingsHandler creates a RecordingsHandler replaying files under dir
// with tuning as the default thresholds.
func NewRecordingsHandler(dir string, tuning classify.Config) *RecordingsHandler {
	return &RecordingsHandler{dir: dir, tuning: tuning}
}

type listRecordingsResponse struct {
	Recordings []string `json:"recordings"`
}

// ServeHTTP routes recording requests.
// Expected paths: /api/recordings, /api/recordings/{name}.
func (h *RecordingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/api/recordings")
	name = strings.TrimPrefix(name, "/")

	if name == "" {
		h.list(w, r)
		return
	}
	h.replay(w, r, name)
}

func (h *RecordingsHandler) list(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(h.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeJSON(w, http.StatusOK, listRecordingsResponse{Recordings: []string{}})
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to list recordings")
		return
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name, ok := strings.CutSuffix(entry.Name(), recorder.FileSuffix); ok {
			names = append(names, name)
		}
	}
	writeJSON(w, http.StatusOK, listRecordingsResponse{Recordings: names})
}

func (h *RecordingsHandler) replay(w http.ResponseWriter, r *http.Request, name string) {
	if strings.ContainsAny(name, "/\\") || name == ".." {
		writeError(w, http.StatusBadRequest, "Invalid recording name")
		return
	}

	tuning, err := h.tuningFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid tuning parameter")
		return
	}

	path := filepath.Join(h.dir, name+recorder.FileSuffix)
	stats, err := recorder.Replay(path, classify.New(tuning))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeError(w, http.StatusNotFound, "Recording not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to replay recording")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// tuningFromQuery lets a replay try alternate thresholds without touching
// the live configuration: ?y_margin= and ?thumb_ratio= override the
// handler's defaults.
func (h *RecordingsHandler) tuningFromQuery(r *http.Request) (classify.Config, error) {
	tuning := h.tuning
	if raw := r.URL.Query().Get("y_margin"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return tuning, err
		}
		tuning.YMargin = v
	}
	if raw := r.URL.Query().Get("thumb_ratio"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return tuning, err
		}
		tuning.ThumbRatio = v
	}
	return tuning, nil
}
