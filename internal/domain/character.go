package domain

// Character is a hero dossier from the roster file.
//
// Characters are static: they are loaded from configuration and never
// mutated at runtime. A reload replaces the whole roster.
type Character struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the stable, unique identifier.
	// Example: aurora-vale
	ID string `json:"id"`

	// ─────────────────────────────
	// Filter predicates
	// ─────────────────────────────

	Name        string `json:"name"`
	Title       string `json:"title"`
	Role        string `json:"role"`
	Difficulty  string `json:"difficulty"`
	Description string `json:"description"`
	Background  string `json:"background"`
	Guide       Guide  `json:"guide"`

	// ─────────────────────────────
	// Dossier details
	// ─────────────────────────────

	SignatureQuote string    `json:"signatureQuote,omitempty"`
	Strengths      []string  `json:"strengths,omitempty"`
	Abilities      []Ability `json:"abilities,omitempty"`

	// Theme is presentation only and never used for filtering.
	Theme Theme `json:"theme"`

	// FanArtSeeds bootstrap the gallery when nothing has been persisted yet.
	FanArtSeeds []FanArtSeed `json:"-"`
}

// Ability is one entry of a character's kit.
type Ability struct {
	Name        string `json:"name"`
	Cooldown    string `json:"cooldown"`
	Description string `json:"description"`
}

// Guide holds the strategy write-up shown under the dossier.
type Guide struct {
	Overview string   `json:"overview"`
	Tips     []string `json:"tips,omitempty"`
	Combos   []string `json:"combos,omitempty"`
}

// Theme carries display colors. Accent is a hex color like "#a78bfa".
type Theme struct {
	Accent   string `json:"accent"`
	Gradient string `json:"gradient,omitempty"`
	Glow     string `json:"glow,omitempty"`
}

// FanArtSeed is a pre-populated gallery entry bundled with a character.
type FanArtSeed struct {
	ImageURL string
	Artist   string
	Caption  string
}

// FindCharacter returns the character with the given id.
func FindCharacter(characters []Character, id string) (Character, bool) {
	for _, c := range characters {
		if c.ID == id {
			return c, true
		}
	}
	return Character{}, false
}
