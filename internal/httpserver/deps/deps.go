package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/codex/internal/gallery"
	"github.com/MrSnakeDoc/codex/internal/index"
	"github.com/MrSnakeDoc/codex/internal/logger"
)

// Pinger is implemented by slot backends that can be health-checked.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Logger             logger.Logger
	StartTime          time.Time
	Version            string
	Commit             string
	BuildDate          string
	GoVersion          string
	TimeNow            func() time.Time   // for testing, defaults to time.Now
	AllowedHosts       []string           // Host headers allowed on admin endpoints
	AllowedCIDRS       []string           // IPs allowed to access readyz/infra/reload
	TrustProxy         bool               // true if running behind a trusted reverse proxy (e.g., cloudflared)
	CORSOrigins        []string           // browser origins allowed on the API
	SubmitBurst        int                // fan-art submissions allowed in a burst per client IP
	SubmitRefillPerMin int                // submissions regained per minute per client IP
	RosterFile         string             // Path to characters.yaml
	Roster             *index.RosterIndex // Current character roster
	Gallery            *gallery.Store     // Fan-art entries
	SlotBackend        string             // "redis" | "sqlite" | "memory"
	SlotPinger         Pinger             // nil when the backend has nothing to ping
	ReloadTrigger      chan struct{}      // Channel to trigger a manual roster reload
}

// Now returns d.TimeNow() or time.Now().
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
