package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/MrSnakeDoc/codex/internal/config"
	"github.com/MrSnakeDoc/codex/internal/domain"
	"github.com/MrSnakeDoc/codex/internal/gallery"
	"github.com/MrSnakeDoc/codex/internal/logger"
)

func testCharacters() []domain.Character {
	return []domain.Character{{
		ID: "aurora-vale", Name: "Aurora Vale",
		FanArtSeeds: []domain.FanArtSeed{{ImageURL: "http://img/a1", Artist: "Mira"}},
	}}
}

func TestOpenSlotMemory(t *testing.T) {
	sh, err := openSlot(context.Background(), &config.Config{SlotBackend: config.BackendMemory}, logger.NewNop())
	if err != nil {
		t.Fatalf("openSlot() error: %v", err)
	}
	if sh.backend != config.BackendMemory || sh.pinger != nil || sh.closer != nil {
		t.Errorf("memory handle = %+v", sh)
	}
}

func TestOpenSlotUnknownBackend(t *testing.T) {
	if _, err := openSlot(context.Background(), &config.Config{SlotBackend: "etcd"}, logger.NewNop()); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestGalleryOverSQLiteSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		SlotBackend: config.BackendSQLite,
		SQLitePath:  filepath.Join(t.TempDir(), "codex.db"),
		SlotKey:     config.DefaultSlotKey,
	}
	log := logger.NewNop()

	sh, err := openSlot(ctx, cfg, log)
	if err != nil {
		t.Fatalf("openSlot() error: %v", err)
	}
	if sh.pinger == nil {
		t.Fatal("sqlite handle should be pingable")
	}
	if err := sh.pinger.Ping(ctx); err != nil {
		t.Fatalf("Ping() error: %v", err)
	}

	store, err := newGallery(ctx, sh.slot, testCharacters(), gallery.GeneratorPseudo, log)
	if err != nil {
		t.Fatalf("newGallery() error: %v", err)
	}
	if st := store.Status(); st.Source != gallery.SourceSeed || st.Backend != "sqlite" || st.IDGenerator != gallery.GeneratorPseudo {
		t.Errorf("status = %+v", st)
	}

	added, err := store.Add(ctx, domain.Submission{CharacterID: "aurora-vale", ImageURL: "http://a", Artist: "Jo", Caption: "c"})
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if err := sh.closer.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	sh, err = openSlot(ctx, cfg, log)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer sh.closer.Close()

	reloaded, err := newGallery(ctx, sh.slot, testCharacters(), "", log)
	if err != nil {
		t.Fatalf("newGallery() error: %v", err)
	}
	entries := reloaded.Entries()
	if reloaded.Status().Source != gallery.SourcePersisted || len(entries) != 2 || entries[0].ID != added.ID {
		t.Errorf("reloaded = %+v", entries)
	}
}

func TestNewGalleryRejectsUnknownGenerator(t *testing.T) {
	sh, _ := openSlot(context.Background(), &config.Config{SlotBackend: config.BackendMemory}, logger.NewNop())
	if _, err := newGallery(context.Background(), sh.slot, testCharacters(), "dice", logger.NewNop()); err == nil {
		t.Error("expected error for unknown id generator")
	}
}
