package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrSubmissionIncomplete is returned when a required submission field is blank.
	ErrSubmissionIncomplete = errors.New("Image URL and artist name are both required.")
	// ErrUnknownCharacter is returned when a submission targets a missing character.
	ErrUnknownCharacter = errors.New("unknown character")
)

// FanArtEntry is one fan-art submission. Entries are immutable once created.
//
// The JSON layout is the persisted slot format: any change here breaks
// previously stored data.
type FanArtEntry struct {
	ID          string    `json:"id"`
	CharacterID string    `json:"characterId"`
	ImageURL    string    `json:"imageUrl"`
	Artist      string    `json:"artist"`
	Caption     string    `json:"caption"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Submission is the validated payload handed to the gallery store.
type Submission struct {
	CharacterID string `json:"characterId"`
	ImageURL    string `json:"imageUrl"`
	Artist      string `json:"artist"`
	Caption     string `json:"caption"`
}

// DefaultCaption is used when a submission leaves the caption blank.
func DefaultCaption(characterName string) string {
	return fmt.Sprintf("Fan art tribute to %s", characterName)
}

// PrepareSubmission validates raw form input for a character.
// Fields are trimmed; image URL and artist are required; a blank caption
// becomes DefaultCaption.
func PrepareSubmission(ch Character, imageURL, artist, caption string) (Submission, error) {
	imageURL = strings.TrimSpace(imageURL)
	artist = strings.TrimSpace(artist)
	caption = strings.TrimSpace(caption)

	if imageURL == "" || artist == "" {
		return Submission{}, ErrSubmissionIncomplete
	}
	if caption == "" {
		caption = DefaultCaption(ch.Name)
	}

	return Submission{
		CharacterID: ch.ID,
		ImageURL:    imageURL,
		Artist:      artist,
		Caption:     caption,
	}, nil
}

// NormalizeTime maps t to UTC with millisecond precision, the resolution
// of the persisted ISO-8601 timestamps.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// SeedEntries flattens the roster's fan-art seeds into gallery entries.
//
// Ids are "<characterId>-seed-<index>". Each seed is dated (ordinal+1) days
// before now, ordinal being its position in the flattened list, so the
// list is newest-first and predates any live submission. Seed captions
// are kept as written, blank included.
func SeedEntries(characters []Character, now time.Time) []FanArtEntry {
	base := NormalizeTime(now)
	var entries []FanArtEntry
	ordinal := 0
	for _, ch := range characters {
		for i, seed := range ch.FanArtSeeds {
			ordinal++
			entries = append(entries, FanArtEntry{
				ID:          fmt.Sprintf("%s-seed-%d", ch.ID, i),
				CharacterID: ch.ID,
				ImageURL:    seed.ImageURL,
				Artist:      seed.Artist,
				Caption:     seed.Caption,
				CreatedAt:   base.Add(-time.Duration(ordinal) * 24 * time.Hour),
			})
		}
	}
	return entries
}
