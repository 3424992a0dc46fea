package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/codex/internal/index"
	"github.com/MrSnakeDoc/codex/internal/logger"
	"github.com/MrSnakeDoc/codex/internal/sources/roster"
)

// RosterReloader handles periodic reloading of the character roster
type RosterReloader struct {
	loader        *roster.Loader
	mapper        *roster.Mapper
	index         *index.RosterIndex
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger chan struct{}
}

// NewRosterReloader creates a new roster reloader
func NewRosterReloader(
	rosterFile string,
	idx *index.RosterIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *RosterReloader {
	return &RosterReloader{
		loader:        roster.NewLoader(rosterFile),
		mapper:        roster.NewMapper(),
		index:         idx,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the roster once, then keeps reloading it in the background.
// A failed first load is returned; later failures keep the previous roster.
func (rr *RosterReloader) Start(ctx context.Context) error {
	if err := rr.Reload(ctx); err != nil {
		return fmt.Errorf("initial roster load failed: %w", err)
	}

	if rr.interval <= 0 {
		rr.logger.Warn("roster reload interval disabled, manual reloads only")
	}

	go rr.loop(ctx)
	return nil
}

func (rr *RosterReloader) loop(ctx context.Context) {
	var tick <-chan time.Time
	if rr.interval > 0 {
		ticker := time.NewTicker(rr.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-tick:
			rr.reloadLogged(ctx)
		case <-rr.manualTrigger:
			rr.logger.Info("manual roster reload triggered")
			rr.reloadLogged(ctx)
		case <-rr.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (rr *RosterReloader) reloadLogged(ctx context.Context) {
	if err := rr.Reload(ctx); err != nil {
		rr.logger.Error("failed to reload roster, keeping previous one",
			logger.Int("characters", rr.index.Count()),
			logger.Error(err))
	}
}

// Stop stops the reloader. Safe to call more than once.
func (rr *RosterReloader) Stop() {
	rr.stopOnce.Do(func() { close(rr.stopCh) })
}

// Reload reads the roster file and swaps it into the index
func (rr *RosterReloader) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rr.logger.Info("reloading roster", logger.String("file", rr.loader.Path()))

	file, err := rr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}

	characters, notes, err := rr.mapper.MapCharacters(file)
	for _, note := range notes {
		rr.logger.Warn("skipped roster entry", logger.String("reason", note))
	}
	if err != nil {
		return fmt.Errorf("failed to map roster: %w", err)
	}

	rr.index.Replace(characters)

	rr.logger.Info("roster loaded",
		logger.Int("characters", len(characters)),
		logger.Int("skipped", len(notes)))

	return nil
}
