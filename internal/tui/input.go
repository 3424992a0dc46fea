package tui

import (
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// maxInputLen is the maximum number of runes allowed in search and form inputs.
const maxInputLen = 500

// editText applies a keystroke to an inline text input.
// Handles backspace (rune-aware), space and typed or pasted runes.
// Other keys leave the text unchanged. Input is clamped to maxInputLen runes.
func editText(text string, msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyBackspace:
		if text == "" {
			return text
		}
		runes := []rune(text)
		return string(runes[:len(runes)-1])
	case tea.KeySpace:
		return appendClamped(text, []rune{' '})
	case tea.KeyRunes:
		return appendClamped(text, msg.Runes)
	}
	return text
}

func appendClamped(text string, add []rune) string {
	room := maxInputLen - utf8.RuneCountInString(text)
	if room <= 0 {
		return text
	}
	if len(add) > room {
		add = add[:room]
	}
	return text + string(add)
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}
