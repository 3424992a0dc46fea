package roster

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/MrSnakeDoc/codex/internal/domain"
)

var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Mapper converts roster entries to domain.Character values
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapCharacters validates and converts the roster, keeping file order.
//
// Entries without a kebab-case id, a name, a role or a difficulty are
// skipped, as are repeated ids. Each skip is described in the returned
// notes. An empty result is an error.
func (m *Mapper) MapCharacters(file File) ([]domain.Character, []string, error) {
	var (
		characters []domain.Character
		notes      []string
		seen       = make(map[string]bool)
	)

	for i, props := range file.Characters {
		id := strings.TrimSpace(props.ID)

		if reason := invalidReason(props); reason != "" {
			notes = append(notes, fmt.Sprintf("entry %d (%q): %s", i, id, reason))
			continue
		}
		if seen[id] {
			notes = append(notes, fmt.Sprintf("entry %d (%q): duplicate id", i, id))
			continue
		}
		seen[id] = true

		ch := toCharacter(props)
		for j, seed := range props.FanArtSeeds {
			if strings.TrimSpace(seed.ImageURL) == "" || strings.TrimSpace(seed.Artist) == "" {
				notes = append(notes, fmt.Sprintf("entry %d (%q): fan art seed %d lacks imageUrl or artist", i, id, j))
				continue
			}
			ch.FanArtSeeds = append(ch.FanArtSeeds, domain.FanArtSeed{
				ImageURL: strings.TrimSpace(seed.ImageURL),
				Artist:   strings.TrimSpace(seed.Artist),
				Caption:  strings.TrimSpace(seed.Caption),
			})
		}

		characters = append(characters, ch)
	}

	if len(characters) == 0 {
		return nil, notes, fmt.Errorf("no valid characters found in roster")
	}

	return characters, notes, nil
}

func invalidReason(p CharacterProps) string {
	switch {
	case !idPattern.MatchString(strings.TrimSpace(p.ID)):
		return "id must be kebab-case"
	case strings.TrimSpace(p.Name) == "":
		return "missing name"
	case strings.TrimSpace(p.Role) == "":
		return "missing role"
	case strings.TrimSpace(p.Difficulty) == "":
		return "missing difficulty"
	}
	return ""
}

func toCharacter(p CharacterProps) domain.Character {
	ch := domain.Character{
		ID:             strings.TrimSpace(p.ID),
		Name:           strings.TrimSpace(p.Name),
		Title:          strings.TrimSpace(p.Title),
		Role:           strings.TrimSpace(p.Role),
		Difficulty:     strings.TrimSpace(p.Difficulty),
		Description:    strings.TrimSpace(p.Description),
		Background:     strings.TrimSpace(p.Background),
		SignatureQuote: strings.TrimSpace(p.SignatureQuote),
		Strengths:      trimAll(p.Strengths),
		Guide: domain.Guide{
			Overview: strings.TrimSpace(p.Guide.Overview),
			Tips:     trimAll(p.Guide.Tips),
			Combos:   trimAll(p.Guide.Combos),
		},
		Theme: domain.Theme{
			Accent:   strings.TrimSpace(p.Theme.Accent),
			Gradient: strings.TrimSpace(p.Theme.Gradient),
			Glow:     strings.TrimSpace(p.Theme.Glow),
		},
	}

	for _, a := range p.Abilities {
		if strings.TrimSpace(a.Name) == "" {
			continue
		}
		ch.Abilities = append(ch.Abilities, domain.Ability{
			Name:        strings.TrimSpace(a.Name),
			Cooldown:    strings.TrimSpace(a.Cooldown),
			Description: strings.TrimSpace(a.Description),
		})
	}

	return ch
}

func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
