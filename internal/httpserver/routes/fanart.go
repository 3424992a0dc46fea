package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/codex/internal/httpserver/deps"
	"github.com/MrSnakeDoc/codex/internal/httpserver/handlers"
)

func init() { Register(registerFanArt) }

func registerFanArt(r chi.Router, d deps.Deps) {
	r.Get("/api/fanart", handlers.ListFanArt(d))
	r.Get("/api/fanart/stats", handlers.FanArtStats(d))
}
