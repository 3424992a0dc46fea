package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/codex/internal/domain"
)

// RosterIndex holds the current roster in file order.
// A reload swaps the whole snapshot; readers never see a partial roster.
type RosterIndex struct {
	mu           sync.RWMutex
	characters   []domain.Character
	byID         map[string]int // ID -> position in characters
	roles        []string
	difficulties []string
	lastReload   time.Time
}

// NewRosterIndex creates an empty index
func NewRosterIndex() *RosterIndex {
	return &RosterIndex{
		byID: make(map[string]int),
	}
}

// Replace swaps in a new roster and recomputes the filter options
func (idx *RosterIndex) Replace(characters []domain.Character) {
	snapshot := append([]domain.Character(nil), characters...)
	byID := make(map[string]int, len(snapshot))
	for i, ch := range snapshot {
		byID[ch.ID] = i
	}
	roles := domain.RoleOptions(snapshot)
	difficulties := domain.DifficultyOptions(snapshot)

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.characters = snapshot
	idx.byID = byID
	idx.roles = roles
	idx.difficulties = difficulties
	idx.lastReload = time.Now()
}

// All returns the roster in file order
func (idx *RosterIndex) All() []domain.Character {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return append([]domain.Character(nil), idx.characters...)
}

// Get retrieves a character by ID
func (idx *RosterIndex) Get(id string) (domain.Character, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	i, ok := idx.byID[id]
	if !ok {
		return domain.Character{}, false
	}
	return idx.characters[i], true
}

// Roles returns "All Roles" followed by the distinct roles
func (idx *RosterIndex) Roles() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return append([]string(nil), idx.roles...)
}

// Difficulties returns "All Difficulties" followed by the distinct difficulties
func (idx *RosterIndex) Difficulties() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return append([]string(nil), idx.difficulties...)
}

// Count returns the number of characters
func (idx *RosterIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.characters)
}

// LastReload returns the time of the last Replace
func (idx *RosterIndex) LastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
