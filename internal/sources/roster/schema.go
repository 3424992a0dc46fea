package roster

// File is the top-level structure of characters.yaml.
type File struct {
	Characters []CharacterProps `yaml:"characters"`
}

// CharacterProps mirrors one roster entry as written in YAML.
type CharacterProps struct {
	ID             string         `yaml:"id"`
	Name           string         `yaml:"name"`
	Title          string         `yaml:"title,omitempty"`
	Role           string         `yaml:"role"`
	Difficulty     string         `yaml:"difficulty"`
	Description    string         `yaml:"description,omitempty"`
	Background     string         `yaml:"background,omitempty"`
	SignatureQuote string         `yaml:"signatureQuote,omitempty"`
	Strengths      []string       `yaml:"strengths,omitempty"`
	Abilities      []AbilityProps `yaml:"abilities,omitempty"`
	Guide          GuideProps     `yaml:"guide,omitempty"`
	Theme          ThemeProps     `yaml:"theme,omitempty"`
	FanArtSeeds    []SeedProps    `yaml:"fanArtSeeds,omitempty"`
}

type AbilityProps struct {
	Name        string `yaml:"name"`
	Cooldown    string `yaml:"cooldown,omitempty"`
	Description string `yaml:"description,omitempty"`
}

type GuideProps struct {
	Overview string   `yaml:"overview,omitempty"`
	Tips     []string `yaml:"tips,omitempty"`
	Combos   []string `yaml:"combos,omitempty"`
}

type ThemeProps struct {
	Accent   string `yaml:"accent,omitempty"`
	Gradient string `yaml:"gradient,omitempty"`
	Glow     string `yaml:"glow,omitempty"`
}

type SeedProps struct {
	ImageURL string `yaml:"imageUrl"`
	Artist   string `yaml:"artist"`
	Caption  string `yaml:"caption,omitempty"`
}
