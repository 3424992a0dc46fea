package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/codex/internal/httpserver/deps"
	"github.com/MrSnakeDoc/codex/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/codex/internal/httpserver/mw"
)

func init() { Register(registerCharacters) }

func registerCharacters(r chi.Router, d deps.Deps) {
	submitLimit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.SubmitBurst,
		RefillPerIPPerMin: d.SubmitRefillPerMin,
		MaxEntries:        10_000,
		TrustProxy:        d.TrustProxy,
	})

	r.Route("/api/characters", func(r chi.Router) {
		r.Get("/", handlers.ListCharacters(d))
		r.Get("/{id}", handlers.GetCharacter(d))
		r.Get("/{id}/fanart", handlers.CharacterFanArt(d))
		r.With(submitLimit).Post("/{id}/fanart", handlers.SubmitFanArt(d))
	})
}
