package roster

import (
	"strings"
	"testing"
)

func TestMapperMapCharacters(t *testing.T) {
	file := File{Characters: []CharacterProps{
		{
			ID: " aurora-vale ", Name: " Aurora Vale ", Role: "Support", Difficulty: "Moderate",
			Strengths: []string{" light ", "", "shields"},
			Abilities: []AbilityProps{{Name: "Dawnline", Cooldown: "14s"}, {Name: " "}},
			Guide:     GuideProps{Overview: " Stay back. "},
			Theme:     ThemeProps{Accent: "#a78bfa"},
			FanArtSeeds: []SeedProps{
				{ImageURL: "http://a/1", Artist: "Mira", Caption: "Dawn"},
				{ImageURL: "", Artist: "Nobody"},
			},
		},
		{ID: "kael-ember", Name: "Kael Ember", Role: "Tank", Difficulty: "Easy"},
	}}

	characters, notes, err := NewMapper().MapCharacters(file)
	if err != nil {
		t.Fatalf("MapCharacters() error = %v", err)
	}

	if len(characters) != 2 {
		t.Fatalf("MapCharacters() returned %d characters, want 2", len(characters))
	}

	aurora := characters[0]
	if aurora.ID != "aurora-vale" || aurora.Name != "Aurora Vale" {
		t.Errorf("identity not trimmed: %q / %q", aurora.ID, aurora.Name)
	}
	if len(aurora.Strengths) != 2 || aurora.Strengths[0] != "light" {
		t.Errorf("strengths = %v", aurora.Strengths)
	}
	if len(aurora.Abilities) != 1 {
		t.Errorf("abilities = %v, want the unnamed one dropped", aurora.Abilities)
	}
	if aurora.Guide.Overview != "Stay back." {
		t.Errorf("overview = %q", aurora.Guide.Overview)
	}
	if len(aurora.FanArtSeeds) != 1 || aurora.FanArtSeeds[0].Caption != "Dawn" {
		t.Errorf("seeds = %+v", aurora.FanArtSeeds)
	}
	if len(notes) != 1 || !strings.Contains(notes[0], "fan art seed 1") {
		t.Errorf("notes = %v", notes)
	}
	if characters[1].ID != "kael-ember" {
		t.Errorf("order not preserved: %q", characters[1].ID)
	}
}

func TestMapperSkipsInvalidEntries(t *testing.T) {
	tests := []struct {
		name   string
		props  CharacterProps
		reason string
	}{
		{"blank id", CharacterProps{Name: "X", Role: "Tank", Difficulty: "Easy"}, "kebab-case"},
		{"uppercase id", CharacterProps{ID: "Aurora", Name: "X", Role: "Tank", Difficulty: "Easy"}, "kebab-case"},
		{"missing name", CharacterProps{ID: "x", Role: "Tank", Difficulty: "Easy"}, "missing name"},
		{"missing role", CharacterProps{ID: "x", Name: "X", Difficulty: "Easy"}, "missing role"},
		{"missing difficulty", CharacterProps{ID: "x", Name: "X", Role: "Tank"}, "missing difficulty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := File{Characters: []CharacterProps{
				tt.props,
				{ID: "kael-ember", Name: "Kael Ember", Role: "Tank", Difficulty: "Easy"},
			}}
			characters, notes, err := NewMapper().MapCharacters(file)
			if err != nil {
				t.Fatalf("MapCharacters() error = %v", err)
			}
			if len(characters) != 1 {
				t.Errorf("got %d characters, want 1", len(characters))
			}
			if len(notes) != 1 || !strings.Contains(notes[0], tt.reason) {
				t.Errorf("notes = %v, want one containing %q", notes, tt.reason)
			}
		})
	}
}

func TestMapperDuplicateIDs(t *testing.T) {
	file := File{Characters: []CharacterProps{
		{ID: "kael-ember", Name: "Kael Ember", Role: "Tank", Difficulty: "Easy"},
		{ID: "kael-ember", Name: "Impostor", Role: "Mage", Difficulty: "Hard"},
	}}

	characters, notes, err := NewMapper().MapCharacters(file)
	if err != nil {
		t.Fatalf("MapCharacters() error = %v", err)
	}
	if len(characters) != 1 || characters[0].Name != "Kael Ember" {
		t.Errorf("first occurrence should win: %+v", characters)
	}
	if len(notes) != 1 || !strings.Contains(notes[0], "duplicate") {
		t.Errorf("notes = %v", notes)
	}
}

func TestMapperMapCharactersEmptyRoster(t *testing.T) {
	if _, _, err := NewMapper().MapCharacters(File{}); err == nil {
		t.Error("MapCharacters() with empty roster should return error")
	}
}
