// Package slot defines the single named text slot the gallery persists to.
package slot

import (
	"context"
	"sync"
)

// Slot is a named key holding one text value.
//
// Read returns ok=false when nothing has been written yet.
// Write overwrites the previous value.
type Slot interface {
	Read(ctx context.Context) (value string, ok bool, err error)
	Write(ctx context.Context, value string) error
}

// Describer is implemented by slots that can report their backend for /infra.
type Describer interface {
	Backend() string
}

// Memory is an in-process slot. The zero value is an empty slot.
type Memory struct {
	mu     sync.RWMutex
	value  string
	set    bool
	writes int
}

// NewMemory returns a memory slot, pre-filled when initial is non-nil.
func NewMemory(initial *string) *Memory {
	m := &Memory{}
	if initial != nil {
		m.value = *initial
		m.set = true
	}
	return m
}

func (m *Memory) Read(_ context.Context) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.value, m.set, nil
}

func (m *Memory) Write(_ context.Context, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = value
	m.set = true
	m.writes++
	return nil
}

// Writes returns how many times Write was called.
func (m *Memory) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

func (m *Memory) Backend() string { return "memory" }
