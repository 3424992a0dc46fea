package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/codex/internal/gallery"
	"github.com/MrSnakeDoc/codex/internal/httpserver/deps"
)

const slotPingTimeout = 2 * time.Second

type componentStatus struct {
	OK               bool            `json:"ok"`
	CharactersLoaded *int            `json:"characters_loaded,omitempty"`
	LastReload       string          `json:"last_reload,omitempty"`
	Source           string          `json:"source,omitempty"`
	Backend          string          `json:"backend,omitempty"`
	Gallery          *gallery.Status `json:"gallery,omitempty"`
	Impact           string          `json:"impact,omitempty"`
	Error            string          `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports roster, slot and gallery health for operators.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"roster":  rosterStatus(d),
			"slot":    slotStatus(r.Context(), d),
			"gallery": galleryStatus(d),
		}
		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

// determineMode: no characters is critical, an unhealthy slot or unflushed
// entries is degraded.
func determineMode(components map[string]componentStatus) string {
	if roster, ok := components["roster"]; ok {
		if !roster.OK || (roster.CharactersLoaded != nil && *roster.CharactersLoaded == 0) {
			return "critical"
		}
	}
	for _, name := range []string{"slot", "gallery"} {
		if c, ok := components[name]; ok && !c.OK {
			return "degraded"
		}
	}
	return "operational"
}

func rosterStatus(d deps.Deps) componentStatus {
	if d.Roster == nil {
		return componentStatus{Error: "roster not initialized"}
	}
	count := d.Roster.Count()
	last := "never"
	if t := d.Roster.LastReload(); !t.IsZero() {
		last = t.UTC().Format(time.RFC3339)
	}
	return componentStatus{
		OK:               count > 0,
		CharactersLoaded: &count,
		LastReload:       last,
		Source:           d.RosterFile,
	}
}

func slotStatus(ctx context.Context, d deps.Deps) componentStatus {
	st := componentStatus{OK: true, Backend: d.SlotBackend}
	if d.SlotPinger == nil {
		return st
	}

	ctx, cancel := context.WithTimeout(ctx, slotPingTimeout)
	defer cancel()
	if err := d.SlotPinger.Ping(ctx); err != nil {
		st.OK = false
		st.Impact = "submissions-kept-in-memory"
		st.Error = err.Error()
	}
	return st
}

func galleryStatus(d deps.Deps) componentStatus {
	if d.Gallery == nil {
		return componentStatus{Error: "gallery not initialized"}
	}
	gs := d.Gallery.Status()
	st := componentStatus{OK: !gs.Dirty, Gallery: &gs}
	if gs.Dirty {
		st.Impact = "unflushed-entries"
		st.Error = gs.LastWriteErr
	}
	return st
}
