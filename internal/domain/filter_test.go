package domain

import "testing"

func testRoster() []Character {
	return []Character{
		{
			ID: "aurora-vale", Name: "Aurora Vale", Title: "The Dawnbreaker",
			Role: "Support", Difficulty: "Moderate",
			Description: "Bends prismatic light into shields.",
			Background:  "Raised in the glass monasteries.",
			Guide:       Guide{Overview: "Stay behind your frontline."},
		},
		{
			ID: "kael-ember", Name: "Kael Ember", Title: "Ashen Vanguard",
			Role: "Tank", Difficulty: "Easy",
			Description: "Wades into fights wrapped in cinders.",
			Background:  "Once guarded Aurora's monastery gates.",
			Guide:       Guide{Overview: "Engage first, peel second."},
		},
		{
			ID: "nyx-thorne", Name: "Nyx Thorne", Title: "Veilrunner",
			Role: "Assassin", Difficulty: "Hard",
			Description: "Strikes from the umbral rift.",
			Background:  "Nobody knows.",
			Guide:       Guide{Overview: "Wait for the AURORA flare to fade."},
		},
		{
			ID: "brannoc", Name: "Brannoc", Title: "Stonewarden",
			Role: "Tank", Difficulty: "Moderate",
			Description: "Immovable.",
			Background:  "Carved from the mountain.",
			Guide:       Guide{Overview: "Hold the line."},
		},
	}
}

func ids(chars []Character) []string {
	out := make([]string, len(chars))
	for i, c := range chars {
		out[i] = c.ID
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilter(t *testing.T) {
	roster := testRoster()

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{
			name:     "no restriction keeps everything in order",
			criteria: NewCriteria("", "", ""),
			want:     []string{"aurora-vale", "kael-ember", "nyx-thorne", "brannoc"},
		},
		{
			name:     "search aurora matches name background and overview",
			criteria: NewCriteria("aurora", AllRoles, AllDifficulties),
			want:     []string{"aurora-vale", "kael-ember", "nyx-thorne"},
		},
		{
			name:     "search is case insensitive",
			criteria: NewCriteria("VEILRUNNER", AllRoles, AllDifficulties),
			want:     []string{"nyx-thorne"},
		},
		{
			name:     "role only",
			criteria: NewCriteria("", "Tank", AllDifficulties),
			want:     []string{"kael-ember", "brannoc"},
		},
		{
			name:     "role is case sensitive",
			criteria: NewCriteria("", "tank", AllDifficulties),
			want:     []string{},
		},
		{
			name:     "role and difficulty combined",
			criteria: NewCriteria("", "Tank", "Moderate"),
			want:     []string{"brannoc"},
		},
		{
			name:     "all three criteria",
			criteria: NewCriteria("aurora", "Tank", "Easy"),
			want:     []string{"kael-ember"},
		},
		{
			name:     "no match",
			criteria: NewCriteria("zzz", AllRoles, AllDifficulties),
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(roster, tt.criteria))
			if !equalStrings(got, tt.want) {
				t.Errorf("Filter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterAuroraReturnsExactlyMatching(t *testing.T) {
	roster := testRoster()
	got := Filter(roster, Criteria{Search: "aurora", Role: AllRoles, Difficulty: AllDifficulties})

	for _, ch := range roster {
		inResult := false
		for _, r := range got {
			if r.ID == ch.ID {
				inResult = true
			}
		}
		if m := MatchesSearch(ch, "aurora"); m != inResult {
			t.Errorf("character %s: match=%v but inResult=%v", ch.ID, m, inResult)
		}
	}
}

func TestResolveActive(t *testing.T) {
	roster := testRoster()

	tests := []struct {
		name     string
		filtered []Character
		selected string
		full     []Character
		wantID   string
		wantOK   bool
	}{
		{"selected still visible", roster[1:3], "nyx-thorne", roster, "nyx-thorne", true},
		{"selected filtered out snaps to first", roster[1:3], "aurora-vale", roster, "kael-ember", true},
		{"empty filter falls back to roster", nil, "nyx-thorne", roster, "aurora-vale", true},
		{"empty roster", nil, "", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveActive(tt.filtered, tt.selected, tt.full)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got.ID != tt.wantID {
				t.Errorf("active = %q, want %q", got.ID, tt.wantID)
			}
		})
	}
}

func TestOptions(t *testing.T) {
	roster := testRoster()

	roles := RoleOptions(roster)
	wantRoles := []string{AllRoles, "Support", "Tank", "Assassin"}
	if !equalStrings(roles, wantRoles) {
		t.Errorf("RoleOptions() = %v, want %v", roles, wantRoles)
	}

	diffs := DifficultyOptions(roster)
	wantDiffs := []string{AllDifficulties, "Moderate", "Easy", "Hard"}
	if !equalStrings(diffs, wantDiffs) {
		t.Errorf("DifficultyOptions() = %v, want %v", diffs, wantDiffs)
	}
}

func TestNextOption(t *testing.T) {
	opts := []string{AllRoles, "Support", "Tank"}

	tests := []struct {
		current string
		want    string
	}{
		{AllRoles, "Support"},
		{"Support", "Tank"},
		{"Tank", AllRoles},
		{"Mage", AllRoles},
	}

	for _, tt := range tests {
		if got := NextOption(opts, tt.current); got != tt.want {
			t.Errorf("NextOption(%q) = %q, want %q", tt.current, got, tt.want)
		}
	}

	if got := NextOption(nil, "x"); got != "x" {
		t.Errorf("NextOption(nil) = %q, want unchanged", got)
	}
}

func TestFindCharacter(t *testing.T) {
	roster := testRoster()

	if ch, ok := FindCharacter(roster, "brannoc"); !ok || ch.Name != "Brannoc" {
		t.Errorf("FindCharacter(brannoc) = %+v, %v", ch, ok)
	}
	if _, ok := FindCharacter(roster, "ghost"); ok {
		t.Error("FindCharacter(ghost) should not be found")
	}
}
