package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/codex/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready  bool   `json:"ready"`
	Reason string `json:"reason,omitempty"`
}

// Readyz is ready once a roster is loaded and the gallery is initialized.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		switch {
		case d.Roster == nil || d.Roster.Count() == 0:
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Reason: "roster not loaded"})
		case d.Gallery == nil:
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Reason: "gallery not initialized"})
		default:
			writeJSON(w, http.StatusOK, readyzResponse{Ready: true})
		}
	}
}
