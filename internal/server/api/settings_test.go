package api

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/ayusman/gesturegate/internal/store"
)

func newSettingsHandler(t *testing.T) (*SettingsHandler, *store.Store) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "gesturegate-settings-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	st, err := store.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	return NewSettingsHandler(st), st
}

func TestSettingsHandler(t *testing.T) {
	t.Run("get missing setting yields 404", func(t *testing.T) {
		h, _ := newSettingsHandler(t)

		rec := doJSON(t, h, http.MethodGet, "/api/settings/"+store.DefaultProfileKey, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
		}
	})

	t.Run("sets and gets the default profile", func(t *testing.T) {
		h, st := newSettingsHandler(t)

		profile := &store.Profile{ID: "p1", Name: "strict", YMargin: 0.05, ThumbRatio: 1.2}
		if err := st.Profiles().Create(profile); err != nil {
			t.Fatalf("failed to create profile: %v", err)
		}

		rec := doJSON(t, h, http.MethodPut, "/api/settings/"+store.DefaultProfileKey, map[string]any{"value": "strict"})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
		}

		rec = doJSON(t, h, http.MethodGet, "/api/settings/"+store.DefaultProfileKey, nil)
		var response settingResponse
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode setting: %v", err)
		}
		if response.Value != "strict" {
			t.Errorf("expected value strict, got %q", response.Value)
		}
	})

	t.Run("rejects a default profile that does not exist", func(t *testing.T) {
		h, _ := newSettingsHandler(t)

		rec := doJSON(t, h, http.MethodPut, "/api/settings/"+store.DefaultProfileKey, map[string]any{"value": "missing"})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})

	t.Run("rejects invalid JSON", func(t *testing.T) {
		h, _ := newSettingsHandler(t)

		rec := doJSON(t, h, http.MethodPut, "/api/settings/some_key", "not an object")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})

	t.Run("bare settings path yields 404", func(t *testing.T) {
		h, _ := newSettingsHandler(t)

		rec := doJSON(t, h, http.MethodGet, "/api/settings/", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
		}
	})
}
