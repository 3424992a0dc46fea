package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/codex/internal/config"
	"github.com/MrSnakeDoc/codex/internal/gallery"
	"github.com/MrSnakeDoc/codex/internal/httpserver"
	"github.com/MrSnakeDoc/codex/internal/httpserver/deps"
	"github.com/MrSnakeDoc/codex/internal/index"
	"github.com/MrSnakeDoc/codex/internal/logger"
	"github.com/MrSnakeDoc/codex/internal/scheduler"
	"github.com/MrSnakeDoc/codex/internal/utils"
	"github.com/MrSnakeDoc/codex/internal/version"
)

type App struct {
	cfg           *config.Config
	logger        logger.Logger
	slot          slotHandle
	roster        *index.RosterIndex
	reloader      *scheduler.RosterReloader
	reloadTrigger chan struct{}
	gallery       *gallery.Store
	flusher       *scheduler.GalleryFlusher
	server        *httpserver.Server
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Open the gallery slot early - fail fast if the backend is unavailable
	sh, err := openSlot(context.Background(), cfg, loggerClient)
	if err != nil {
		loggerClient.Error("failed to open gallery slot",
			logger.String("backend", cfg.SlotBackend),
			logger.Error(err))
		os.Exit(1)
	}

	roster := index.NewRosterIndex()
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewRosterReloader(
		cfg.RosterFile,
		roster,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	return &App{
		cfg:           cfg,
		logger:        loggerClient,
		slot:          sh,
		roster:        roster,
		reloader:      reloader,
		reloadTrigger: reloadTrigger,
	}
}

func (a *App) Run() error {
	a.logger.Info("🚀 Starting Prismfall Codex",
		logger.String("version", version.Version),
		logger.String("commit", version.Commit),
		logger.String("built", version.BuildDate),
		logger.String("go", version.GoVersion),
		logger.String("addr", a.cfg.ListenPort))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer utils.CloseLogged(a.logger, a.slot.backend+" slot", a.slot.closer)

	// Start roster reloader (loads characters and starts periodic refresh)
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start roster reloader: %w", err)
	}
	a.logger.Info("roster reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))

	// Seeds come from the roster as loaded at startup; later reloads do not reseed.
	store, err := newGallery(ctx, a.slot.slot, a.roster.All(), a.cfg.IDGenerator, a.logger)
	if err != nil {
		a.reloader.Stop()
		return fmt.Errorf("failed to initialize gallery: %w", err)
	}
	a.gallery = store

	a.flusher = scheduler.NewGalleryFlusher(store, a.logger, a.cfg.FlushInterval)
	a.flusher.Start(ctx)

	// Dependencies passed to routes.
	d := deps.Deps{
		Logger:             a.logger,
		StartTime:          time.Now(),
		Version:            version.Version,
		Commit:             version.Commit,
		BuildDate:          version.BuildDate,
		GoVersion:          version.GoVersion,
		TimeNow:            time.Now,
		AllowedHosts:       a.cfg.AllowedHosts,
		AllowedCIDRS:       a.cfg.AllowedCIDRS,
		TrustProxy:         a.cfg.TrustProxy,
		CORSOrigins:        a.cfg.CORSOrigins,
		SubmitBurst:        a.cfg.SubmitBurst,
		SubmitRefillPerMin: a.cfg.SubmitRefillPerMin,
		RosterFile:         a.cfg.RosterFile,
		Roster:             a.roster,
		Gallery:            store,
		SlotBackend:        a.slot.backend,
		SlotPinger:         a.slot.pinger,
		ReloadTrigger:      a.reloadTrigger,
	}
	a.server = httpserver.New(a.cfg, a.logger, d)

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case runErr = <-errCh:
	}

	a.reloader.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop server: %w", err)
	}

	// After the server: no submission can land after the final flush.
	a.flusher.Stop(shutdownCtx)

	if runErr != nil {
		return runErr
	}
	a.logger.Info("✅ Prismfall Codex stopped cleanly",
		logger.Int("fan_art_entries", store.Len()))
	return nil
}
