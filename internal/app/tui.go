package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/codex/internal/config"
	"github.com/MrSnakeDoc/codex/internal/logger"
	"github.com/MrSnakeDoc/codex/internal/slot"
	"github.com/MrSnakeDoc/codex/internal/sources/roster"
	"github.com/MrSnakeDoc/codex/internal/tui"
	"github.com/MrSnakeDoc/codex/internal/utils"
)

// TUIOptions configures the terminal browser.
type TUIOptions struct {
	RosterFile  string
	DBPath      string // SQLite file; empty keeps the gallery in memory
	SlotKey     string
	IDGenerator string
	LogFile     string // empty discards logs
	LogLevel    string
}

// RunTUI loads the roster and gallery, then runs the terminal browser until the user quits.
func RunTUI(ctx context.Context, opts TUIOptions) error {
	if opts.SlotKey == "" {
		opts.SlotKey = config.DefaultSlotKey
	}

	log := logger.NewNop()
	if opts.LogFile != "" {
		l, err := logger.NewWithOutput(opts.LogLevel, opts.LogFile)
		if err != nil {
			return err
		}
		log = l
		defer func() { _ = log.Sync() }()
	}

	file, err := roster.NewLoader(opts.RosterFile).Load()
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}
	characters, notes, err := roster.NewMapper().MapCharacters(file)
	for _, note := range notes {
		log.Warn("skipped roster entry", logger.String("reason", note))
	}
	if err != nil {
		return fmt.Errorf("map roster: %w", err)
	}

	sh := slotHandle{backend: config.BackendMemory, slot: slot.NewMemory(nil)}
	if opts.DBPath != "" {
		sh, err = openSQLiteSlot(ctx, opts.DBPath, opts.SlotKey, log)
		if err != nil {
			return err
		}
	}
	defer utils.CloseLogged(log, sh.backend+" slot", sh.closer)

	store, err := newGallery(ctx, sh.slot, characters, opts.IDGenerator, log)
	if err != nil {
		return err
	}

	runErr := tui.Run(ctx, tui.New(characters, store))

	// Anything still unsaved gets one more try before the slot closes.
	if _, err := store.Flush(context.WithoutCancel(ctx)); err != nil {
		runErr = errors.Join(runErr, err)
	}
	return runErr
}
