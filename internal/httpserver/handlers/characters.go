package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/codex/internal/domain"
	"github.com/MrSnakeDoc/codex/internal/httpserver/deps"
)

type characterCard struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Title       string       `json:"title"`
	Role        string       `json:"role"`
	Difficulty  string       `json:"difficulty"`
	Description string       `json:"description"`
	Theme       domain.Theme `json:"theme"`
	FanArtCount int          `json:"fanArtCount"`
}

type characterListResponse struct {
	Count        int             `json:"count"`
	Results      []characterCard `json:"results"`
	ActiveID     string          `json:"activeId,omitempty"`
	Roles        []string        `json:"roles"`
	Difficulties []string        `json:"difficulties"`
}

type characterDetailResponse struct {
	domain.Character
	FanArtTotal int `json:"fanArtTotal"`
}

// ListCharacters filters the roster by ?q=, ?role= and ?difficulty=.
// ?selected= is the client's current selection, used to resolve activeId.
func ListCharacters(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		criteria := domain.NewCriteria(
			strings.TrimSpace(q.Get("q")),
			q.Get("role"),
			q.Get("difficulty"),
		)

		all := d.Roster.All()
		filtered := domain.Filter(all, criteria)
		counts := d.Gallery.Counts()

		resp := characterListResponse{
			Count:        len(filtered),
			Results:      make([]characterCard, 0, len(filtered)),
			Roles:        d.Roster.Roles(),
			Difficulties: d.Roster.Difficulties(),
		}
		for _, ch := range filtered {
			resp.Results = append(resp.Results, characterCard{
				ID:          ch.ID,
				Name:        ch.Name,
				Title:       ch.Title,
				Role:        ch.Role,
				Difficulty:  ch.Difficulty,
				Description: ch.Description,
				Theme:       ch.Theme,
				FanArtCount: counts[ch.ID],
			})
		}
		if active, ok := domain.ResolveActive(filtered, q.Get("selected"), all); ok {
			resp.ActiveID = active.ID
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// GetCharacter returns the full dossier with its fan-art total.
func GetCharacter(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ch, ok := d.Roster.Get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, domain.ErrUnknownCharacter.Error())
			return
		}
		writeJSON(w, http.StatusOK, characterDetailResponse{
			Character:   ch,
			FanArtTotal: d.Gallery.CountFor(ch.ID),
		})
	}
}
