package gallery

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrSnakeDoc/codex/internal/domain"
)

// ErrMalformedSlot is returned when slot text is not a JSON array.
var ErrMalformedSlot = errors.New("malformed gallery slot")

// isoLayout matches JavaScript's Date.toISOString: UTC, always three fractional digits.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// record is the on-disk shape of an entry.
type record struct {
	ID          string `json:"id"`
	CharacterID string `json:"characterId"`
	ImageURL    string `json:"imageUrl"`
	Artist      string `json:"artist"`
	Caption     string `json:"caption"`
	CreatedAt   string `json:"createdAt"`
}

// DecodeReport counts what Decode kept and what it threw away.
type DecodeReport struct {
	Elements  int // array length
	Kept      int
	NonObject int // numbers, strings, nulls, nested arrays
	Invalid   int // objects failing validation
}

// Dropped is the number of elements not kept.
func (r DecodeReport) Dropped() int { return r.NonObject + r.Invalid }

// Encode serializes entries into the slot format.
func Encode(entries []domain.FanArtEntry) (string, error) {
	records := make([]record, len(entries))
	for i, e := range entries {
		records[i] = record{
			ID:          e.ID,
			CharacterID: e.CharacterID,
			ImageURL:    e.ImageURL,
			Artist:      e.Artist,
			Caption:     e.Caption,
			CreatedAt:   e.CreatedAt.UTC().Format(isoLayout),
		}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to marshal gallery: %w", err)
	}
	return string(data), nil
}

// Decode parses slot text. Text that is not a JSON array yields
// ErrMalformedSlot. Non-object elements and records with a blank id,
// characterId, imageUrl or artist, or an unparseable createdAt, are dropped.
// Timestamps are truncated to milliseconds, the precision Encode writes.
func Decode(text string) ([]domain.FanArtEntry, DecodeReport, error) {
	var report DecodeReport

	trimmed := bytes.TrimSpace([]byte(text))
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, report, fmt.Errorf("%w: not an array", ErrMalformedSlot)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, report, fmt.Errorf("%w: %v", ErrMalformedSlot, err)
	}

	report.Elements = len(raw)
	entries := make([]domain.FanArtEntry, 0, len(raw))
	for _, elem := range raw {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 || elem[0] != '{' {
			report.NonObject++
			continue
		}

		entry, ok := decodeRecord(elem)
		if !ok {
			report.Invalid++
			continue
		}
		entries = append(entries, entry)
	}
	report.Kept = len(entries)

	return entries, report, nil
}

func decodeRecord(data []byte) (domain.FanArtEntry, bool) {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return domain.FanArtEntry{}, false
	}

	for _, required := range []string{r.ID, r.CharacterID, r.ImageURL, r.Artist} {
		if strings.TrimSpace(required) == "" {
			return domain.FanArtEntry{}, false
		}
	}

	createdAt, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return domain.FanArtEntry{}, false
	}

	return domain.FanArtEntry{
		ID:          r.ID,
		CharacterID: r.CharacterID,
		ImageURL:    r.ImageURL,
		Artist:      r.Artist,
		Caption:     r.Caption,
		CreatedAt:   domain.NormalizeTime(createdAt),
	}, true
}
