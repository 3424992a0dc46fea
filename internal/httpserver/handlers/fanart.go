package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/codex/internal/domain"
	"github.com/MrSnakeDoc/codex/internal/gallery"
	"github.com/MrSnakeDoc/codex/internal/httpserver/deps"
	"github.com/MrSnakeDoc/codex/internal/logger"
)

const maxSubmissionBytes = 16 << 10

type fanArtListResponse struct {
	Count   int                  `json:"count"`
	Entries []domain.FanArtEntry `json:"entries"`
}

type galleryResponse struct {
	Total   int                  `json:"total"`
	Entries []domain.FanArtEntry `json:"entries"`
}

type statsResponse struct {
	Total       int            `json:"total"`
	ByCharacter map[string]int `json:"byCharacter"`
}

type submitRequest struct {
	ImageURL string `json:"imageUrl"`
	Artist   string `json:"artist"`
	Caption  string `json:"caption"`
}

type submitResponse struct {
	Entry       domain.FanArtEntry `json:"entry"`
	Persisted   bool               `json:"persisted"`
	FanArtTotal int                `json:"fanArtTotal"`
}

// CharacterFanArt lists one character's entries, newest first.
func CharacterFanArt(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ch, ok := d.Roster.Get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, domain.ErrUnknownCharacter.Error())
			return
		}
		entries := d.Gallery.EntriesFor(ch.ID)
		writeJSON(w, http.StatusOK, fanArtListResponse{Count: len(entries), Entries: entries})
	}
}

// SubmitFanArt validates the body and appends it to the gallery.
// A slot write failure still answers 201 with persisted=false: the entry
// lives in memory until the flusher catches up.
func SubmitFanArt(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ch, ok := d.Roster.Get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, domain.ErrUnknownCharacter.Error())
			return
		}

		var req submitRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSubmissionBytes))
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		sub, err := domain.PrepareSubmission(ch, req.ImageURL, req.Artist, req.Caption)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		entry, err := d.Gallery.Add(r.Context(), sub)
		switch {
		case err == nil:
		case errors.Is(err, gallery.ErrPersist):
			d.Logger.Warn("fan art accepted but not persisted",
				logger.String("id", entry.ID),
				logger.Error(err))
		default:
			d.Logger.Error("fan art submission failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, submitResponse{
			Entry:       entry,
			Persisted:   err == nil,
			FanArtTotal: d.Gallery.CountFor(ch.ID),
		})
	}
}

// ListFanArt returns the whole gallery, newest first.
func ListFanArt(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries := d.Gallery.Entries()
		writeJSON(w, http.StatusOK, galleryResponse{Total: len(entries), Entries: entries})
	}
}

// FanArtStats returns per-character counts. Characters without entries are absent.
func FanArtStats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts := d.Gallery.Counts()
		total := 0
		for _, n := range counts {
			total += n
		}
		writeJSON(w, http.StatusOK, statsResponse{Total: total, ByCharacter: counts})
	}
}
