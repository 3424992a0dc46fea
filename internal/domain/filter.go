package domain

import "strings"

const (
	// AllRoles disables the role restriction.
	AllRoles = "All Roles"
	// AllDifficulties disables the difficulty restriction.
	AllDifficulties = "All Difficulties"
)

// Criteria are the three user-controlled catalog filters.
type Criteria struct {
	Search     string // case-insensitive substring, empty = no restriction
	Role       string // exact role or AllRoles
	Difficulty string // exact difficulty or AllDifficulties
}

// NewCriteria builds criteria, mapping blank role/difficulty to their sentinels.
func NewCriteria(search, role, difficulty string) Criteria {
	if strings.TrimSpace(role) == "" {
		role = AllRoles
	}
	if strings.TrimSpace(difficulty) == "" {
		difficulty = AllDifficulties
	}
	return Criteria{Search: search, Role: role, Difficulty: difficulty}
}

// Filter returns the characters matching every criterion, in source order.
func Filter(characters []Character, c Criteria) []Character {
	out := make([]Character, 0, len(characters))
	for _, ch := range characters {
		if c.Role != AllRoles && ch.Role != c.Role {
			continue
		}
		if c.Difficulty != AllDifficulties && ch.Difficulty != c.Difficulty {
			continue
		}
		if !MatchesSearch(ch, c.Search) {
			continue
		}
		out = append(out, ch)
	}
	return out
}

// MatchesSearch reports whether term appears in the character's name, title,
// description, background or guide overview. An empty term matches everything.
func MatchesSearch(ch Character, term string) bool {
	if term == "" {
		return true
	}
	target := strings.ToLower(term)
	for _, field := range []string{ch.Name, ch.Title, ch.Description, ch.Background, ch.Guide.Overview} {
		if strings.Contains(strings.ToLower(field), target) {
			return true
		}
	}
	return false
}

// ResolveActive picks the character shown in the detail view.
//
// The previous selection wins while it is still visible. Otherwise the
// selection snaps to the first visible result, and when nothing is visible
// it falls back to the first character of the full roster. The bool is
// false only for an empty roster.
func ResolveActive(filtered []Character, selectedID string, full []Character) (Character, bool) {
	if len(filtered) > 0 {
		for _, ch := range filtered {
			if ch.ID == selectedID {
				return ch, true
			}
		}
		return filtered[0], true
	}
	if len(full) > 0 {
		return full[0], true
	}
	return Character{}, false
}

// RoleOptions returns AllRoles followed by each distinct role in first-seen order.
func RoleOptions(characters []Character) []string {
	return distinctOptions(AllRoles, characters, func(c Character) string { return c.Role })
}

// DifficultyOptions returns AllDifficulties followed by each distinct difficulty.
func DifficultyOptions(characters []Character) []string {
	return distinctOptions(AllDifficulties, characters, func(c Character) string { return c.Difficulty })
}

func distinctOptions(sentinel string, characters []Character, field func(Character) string) []string {
	opts := []string{sentinel}
	seen := map[string]bool{sentinel: true}
	for _, c := range characters {
		v := field(c)
		if seen[v] {
			continue
		}
		seen[v] = true
		opts = append(opts, v)
	}
	return opts
}

// NextOption cycles through opts starting after current, wrapping around.
// Unknown values restart at the first option.
func NextOption(opts []string, current string) string {
	if len(opts) == 0 {
		return current
	}
	for i, o := range opts {
		if o == current {
			return opts[(i+1)%len(opts)]
		}
	}
	return opts[0]
}
