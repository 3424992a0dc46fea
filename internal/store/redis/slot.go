package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Slot stores the gallery as one Redis string. Values never expire.
type Slot struct {
	client *redis.Client
	key    string
}

// NewSlot creates a Redis-backed slot named name.
func NewSlot(client *redis.Client, name string) (*Slot, error) {
	if client == nil {
		return nil, errors.New("redis slot: nil client")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("redis slot: empty name")
	}
	return &Slot{
		client: client,
		key:    SlotKey(name),
	}, nil
}

// Read returns the slot value. ok is false when the key does not exist.
func (s *Slot) Read(ctx context.Context) (string, bool, error) {
	value, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read slot %s: %w", s.key, err)
	}
	return value, true, nil
}

// Write overwrites the slot value.
func (s *Slot) Write(ctx context.Context, value string) error {
	if err := s.client.Set(ctx, s.key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", s.key, err)
	}
	return nil
}

// Ping checks the connection, for readiness probes.
func (s *Slot) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Slot) Key() string     { return s.key }
func (s *Slot) Backend() string { return "redis" }
