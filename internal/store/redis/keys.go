package redis

import (
	"fmt"
	"strings"
)

const (
	// KeyPrefixSlot namespaces slot keys so the codex can share a Redis DB.
	KeyPrefixSlot = "codex:slot:"
)

// SlotKey returns the Redis key for a named slot.
func SlotKey(name string) string {
	return KeyPrefixSlot + name
}

// ExtractSlotName extracts the slot name from a Redis key
func ExtractSlotName(key string) (string, error) {
	if !strings.HasPrefix(key, KeyPrefixSlot) || len(key) == len(KeyPrefixSlot) {
		return "", fmt.Errorf("invalid slot key: %s", key)
	}
	return key[len(KeyPrefixSlot):], nil
}
