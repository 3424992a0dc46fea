package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/codex/internal/httpserver/deps"
	"github.com/MrSnakeDoc/codex/internal/logger"
	"github.com/MrSnakeDoc/codex/internal/utils"
)

type reloadResponse struct {
	Status string `json:"status"`
}

// Reload asks the roster reloader for an immediate reload without waiting
// for it. A pending trigger answers 429.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := utils.ClientIP(r, d.TrustProxy)
		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual roster reload triggered via endpoint",
				logger.String("client_ip", ip))
			writeJSON(w, http.StatusAccepted, reloadResponse{Status: "reload triggered"})
		default:
			d.Logger.Warn("roster reload already pending",
				logger.String("client_ip", ip))
			writeJSON(w, http.StatusTooManyRequests, reloadResponse{Status: "reload already in progress"})
		}
	}
}
