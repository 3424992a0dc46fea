package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrSnakeDoc/codex/internal/domain"
)

type formField int

const (
	fieldImageURL formField = iota
	fieldArtist
	fieldCaption
	numFields
)

var fieldLabels = [numFields]string{"image url", "artist", "caption"}

// formModel is the fan-art submission form. It only edits text; the root
// model validates and submits.
type formModel struct {
	fields     [numFields]string
	focus      formField
	err        string
	submitting bool
}

func (f formModel) value(field formField) string { return f.fields[field] }

// updateKeys handles focus movement and text editing.
func (f formModel) updateKeys(msg tea.KeyMsg) formModel {
	f.err = ""
	switch msg.String() {
	case "tab", "down":
		f.focus = (f.focus + 1) % numFields
	case "shift+tab", "up":
		f.focus = (f.focus - 1 + numFields) % numFields
	case "enter":
		if f.focus < numFields-1 {
			f.focus++
		}
	default:
		f.fields[f.focus] = editText(f.fields[f.focus], msg)
	}
	return f
}

func (f formModel) onLastField() bool { return f.focus == numFields-1 }

func (f formModel) View(ch domain.Character) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", accentStyle(ch.Theme.Accent).Render("Submit Fan Art for "+ch.Name))

	placeholders := [numFields]string{
		"https://…",
		"@your-handle",
		fmt.Sprintf("Why do you love %s?", ch.Name),
	}

	for i := formField(0); i < numFields; i++ {
		cursor := " "
		style := metaStyle
		if i == f.focus {
			cursor = ">"
			style = selectedStyle
		}

		value := f.fields[i]
		switch {
		case i == f.focus:
			value += "█"
		case value == "":
			value = inputPlaceholderStyle.Render(placeholders[i])
		}
		fmt.Fprintf(&b, "%s %s: %s\n", cursor, style.Render(fieldLabels[i]), value)
	}

	b.WriteString("\n")
	switch {
	case f.submitting:
		b.WriteString(dimStyle.Render("archiving..."))
	case f.err != "":
		b.WriteString(errorStyle.Render(f.err))
	default:
		b.WriteString(helpEntry("ctrl+s", "submit") + "  " + helpEntry("tab", "next field") + "  " + helpEntry("esc", "cancel"))
	}
	return b.String()
}
