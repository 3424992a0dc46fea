// Package gallery holds the fan-art entries and persists them to a slot.
package gallery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/codex/internal/domain"
	"github.com/MrSnakeDoc/codex/internal/logger"
	"github.com/MrSnakeDoc/codex/internal/slot"
)

// ErrPersist wraps slot write failures. The entry is still in memory.
var ErrPersist = errors.New("failed to persist gallery")

const (
	SourcePersisted = "persisted"
	SourceSeed      = "seed"
)

// Store is the fan-art collection, newest first.
// It only grows: entries are never edited or removed.
type Store struct {
	mu      sync.RWMutex
	entries []domain.FanArtEntry
	known   map[string]struct{} // every id ever held

	slot   slot.Slot
	ids    IDGenerator
	now    func() time.Time
	log    logger.Logger
	source string

	lastWrite    time.Time
	lastWriteErr error
	dirty        bool // memory holds entries the slot does not
}

type Option func(*Store)

func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) { s.ids = g }
}

// WithClock sets the time source used to stamp new entries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New builds the store from the slot, or from seeds when the slot is
// absent, unreadable, malformed or holds no valid entry. Nothing is written.
func New(ctx context.Context, sl slot.Slot, seeds []domain.FanArtEntry, opts ...Option) (*Store, error) {
	if sl == nil {
		return nil, errors.New("gallery: nil slot")
	}

	s := &Store{
		slot: sl,
		ids:  UUIDGenerator{},
		now:  time.Now,
		log:  logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if persisted := s.load(ctx); len(persisted) > 0 {
		s.entries = persisted
		s.source = SourcePersisted
	} else {
		s.entries = append([]domain.FanArtEntry(nil), seeds...)
		s.source = SourceSeed
	}

	s.known = make(map[string]struct{}, len(s.entries))
	for _, e := range s.entries {
		s.known[e.ID] = struct{}{}
	}

	s.log.Info("gallery initialized",
		logger.String("source", s.source),
		logger.Int("entries", len(s.entries)),
		logger.String("id_generator", s.ids.Kind()))

	return s, nil
}

func (s *Store) load(ctx context.Context) []domain.FanArtEntry {
	text, ok, err := s.slot.Read(ctx)
	if err != nil {
		s.log.Warn("gallery slot unreadable, using seeds", logger.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	entries, report, err := Decode(text)
	if err != nil {
		s.log.Warn("gallery slot malformed, using seeds", logger.Error(err))
		return nil
	}
	if report.Dropped() > 0 {
		s.log.Warn("dropped invalid gallery records",
			logger.Int("elements", report.Elements),
			logger.Int("non_object", report.NonObject),
			logger.Int("invalid", report.Invalid))
	}
	return entries
}

// Add stamps a new entry, prepends it and writes the full collection.
// The submission must already have gone through domain.PrepareSubmission.
//
// A write failure leaves the entry in memory and returns it together with
// an error wrapping ErrPersist.
func (s *Store) Add(ctx context.Context, sub domain.Submission) (domain.FanArtEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := domain.FanArtEntry{
		ID:          s.nextIDLocked(),
		CharacterID: sub.CharacterID,
		ImageURL:    sub.ImageURL,
		Artist:      sub.Artist,
		Caption:     sub.Caption,
		CreatedAt:   domain.NormalizeTime(s.now()),
	}

	next := make([]domain.FanArtEntry, 0, len(s.entries)+1)
	next = append(next, entry)
	next = append(next, s.entries...)
	s.entries = next

	if err := s.persistLocked(ctx); err != nil {
		s.log.Error("fan art kept in memory only",
			logger.String("id", entry.ID),
			logger.String("character_id", entry.CharacterID),
			logger.Error(err))
		return entry, err
	}

	s.log.Debug("fan art added",
		logger.String("id", entry.ID),
		logger.String("character_id", entry.CharacterID),
		logger.Int("total", len(s.entries)))

	return entry, nil
}

// nextIDLocked skips ids already held, loaded ones included.
func (s *Store) nextIDLocked() string {
	for {
		id := s.ids.NewID()
		if _, dup := s.known[id]; !dup {
			s.known[id] = struct{}{}
			return id
		}
		s.log.Debug("id generator repeated a known id", logger.String("id", id))
	}
}

func (s *Store) persistLocked(ctx context.Context) error {
	text, err := Encode(s.entries)
	if err == nil {
		err = s.slot.Write(ctx, text)
	}

	s.lastWrite = s.now()
	s.lastWriteErr = err
	s.dirty = err != nil
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// Flush rewrites the slot if an earlier write failed. It reports whether
// a write was attempted.
func (s *Store) Flush(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return false, nil
	}
	if err := s.persistLocked(ctx); err != nil {
		return true, err
	}
	s.log.Info("gallery flushed to slot", logger.Int("entries", len(s.entries)))
	return true, nil
}

// Entries returns a copy of the collection, newest first.
func (s *Store) Entries() []domain.FanArtEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.FanArtEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// EntriesFor returns the entries of one character, in store order.
func (s *Store) EntriesFor(characterID string) []domain.FanArtEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.FanArtEntry{}
	for _, e := range s.entries {
		if e.CharacterID == characterID {
			out = append(out, e)
		}
	}
	return out
}

// Counts maps character id to entry count. Characters without entries are absent.
func (s *Store) Counts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, e := range s.entries {
		counts[e.CharacterID]++
	}
	return counts
}

func (s *Store) CountFor(characterID string) int {
	return s.Counts()[characterID]
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Status is a snapshot for operators.
type Status struct {
	Entries      int       `json:"entries"`
	Source       string    `json:"source"`
	Backend      string    `json:"backend"`
	IDGenerator  string    `json:"idGenerator"`
	LastWrite    time.Time `json:"lastWrite,omitzero"`
	LastWriteErr string    `json:"lastWriteError,omitempty"`
	Dirty        bool      `json:"dirty"`
}

func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		Entries:     len(s.entries),
		Source:      s.source,
		Backend:     "unknown",
		IDGenerator: s.ids.Kind(),
		LastWrite:   s.lastWrite,
		Dirty:       s.dirty,
	}
	if d, ok := s.slot.(slot.Describer); ok {
		st.Backend = d.Backend()
	}
	if s.lastWriteErr != nil {
		st.LastWriteErr = s.lastWriteErr.Error()
	}
	return st
}
