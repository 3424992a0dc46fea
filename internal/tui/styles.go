package tui

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Base palette, Prismfall night sky
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f4f4fb")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a78bfa")).
			Bold(true)

	quoteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c8a84c")).
			Italic(true)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878")).
				Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ade80"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#1e1e2a")).
			Padding(0, 1)

	// Role colors
	roleColors = map[string]lipgloss.Color{
		"Support":  lipgloss.Color("#a78bfa"),
		"Tank":     lipgloss.Color("#f97316"),
		"Assassin": lipgloss.Color("#22d3ee"),
		"Mage":     lipgloss.Color("#eab308"),
	}

	difficultyColors = map[string]lipgloss.Color{
		"Easy":     lipgloss.Color("#4ade80"),
		"Moderate": lipgloss.Color("#facc15"),
		"Hard":     lipgloss.Color("#f87171"),
	}
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// accentStyle returns a bold style in the character's theme accent.
// Invalid accents fall back to the title color.
func accentStyle(accent string) lipgloss.Style {
	if !hexColor.MatchString(accent) {
		return titleStyle
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true)
}

func roleStyle(role string) lipgloss.Style {
	if c, ok := roleColors[role]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return dimStyle
}

func difficultyStyle(difficulty string) lipgloss.Style {
	if c, ok := difficultyColors[difficulty]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return dimStyle
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}
