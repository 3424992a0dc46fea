package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MrSnakeDoc/codex/internal/domain"
)

const (
	emptyResults   = "No heroes match that query. Try resetting your filters."
	listPaneWidth  = 44
	sideBySideMinW = 100
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("P R I S M F A L L   C O D E X"))
	b.WriteString("  " + dimStyle.Render("Agentic Playbook"))
	b.WriteString("\n\n")

	list := m.listView()
	detail := m.detailView()

	if m.width >= sideBySideMinW {
		left := paneStyle.Width(listPaneWidth).Render(list)
		right := paneStyle.Width(m.width - listPaneWidth - 6).Render(detail)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	} else {
		b.WriteString(list)
		b.WriteString("\n")
		b.WriteString(detail)
	}
	b.WriteString("\n")

	if m.status != "" {
		style := okStyle
		if m.statusErr {
			style = errorStyle
		}
		b.WriteString(style.Render(m.status) + "\n")
	}

	b.WriteString(metaStyle.Render(fmt.Sprintf("Built for the Prismfall community • %d pieces of fan art archived", m.gallery.Len())))
	b.WriteString("\n")
	b.WriteString(m.helpBar())
	return b.String()
}

func (m Model) listView() string {
	var b strings.Builder

	search := m.criteria.Search
	switch {
	case m.mode == modeSearch:
		search += "█"
	case search == "":
		search = inputPlaceholderStyle.Render("Search heroes, abilities, tactics...")
	}
	fmt.Fprintf(&b, "%s %s\n", helpKeyStyle.Render("/"), search)
	fmt.Fprintf(&b, "%s %s   %s %s\n",
		metaStyle.Render("role"), normalStyle.Render(m.criteria.Role),
		metaStyle.Render("difficulty"), normalStyle.Render(m.criteria.Difficulty))

	fmt.Fprintf(&b, "%s\n\n", sectionHeaderStyle.Render(resultLabel(len(m.filtered))))

	if len(m.filtered) == 0 {
		b.WriteString(dimStyle.Render(emptyResults))
		b.WriteString("\n")
		return b.String()
	}

	active, _ := m.active()
	for _, ch := range m.filtered {
		prefix := "  "
		name := normalStyle.Render(ch.Name)
		if ch.ID == active.ID {
			prefix = accentStyle(ch.Theme.Accent).Render("> ")
			name = selectedStyle.Render(ch.Name)
		}
		fmt.Fprintf(&b, "%s%s %s\n", prefix, name, metaStyle.Render(truncStr(ch.Title, 24)))
		fmt.Fprintf(&b, "    %s · %s · %s\n",
			roleStyle(ch.Role).Render(ch.Role),
			difficultyStyle(ch.Difficulty).Render(ch.Difficulty),
			dimStyle.Render(fmt.Sprintf("%d art", m.gallery.CountFor(ch.ID))))
	}
	return b.String()
}

func resultLabel(n int) string {
	if n == 1 {
		return "1 Result"
	}
	return fmt.Sprintf("%d Results", n)
}

func (m Model) detailView() string {
	ch, ok := m.active()
	if !ok {
		return dimStyle.Render("The roster is empty.")
	}
	if m.mode == modeForm {
		return m.dossierHeader(ch) + "\n" + m.form.View(ch)
	}

	var b strings.Builder
	b.WriteString(m.dossierHeader(ch))

	if ch.SignatureQuote != "" {
		fmt.Fprintf(&b, "\n%s\n", quoteStyle.Render("“"+ch.SignatureQuote+"”"))
	}
	fmt.Fprintf(&b, "\n%s\n", normalStyle.Render(ch.Description))
	if ch.Background != "" {
		fmt.Fprintf(&b, "\n%s\n%s\n", sectionHeaderStyle.Render("Background"), dimStyle.Render(ch.Background))
	}

	if len(ch.Strengths) > 0 {
		fmt.Fprintf(&b, "\n%s\n", sectionHeaderStyle.Render("Strengths"))
		for _, s := range ch.Strengths {
			fmt.Fprintf(&b, "  • %s\n", normalStyle.Render(s))
		}
	}

	if len(ch.Abilities) > 0 {
		fmt.Fprintf(&b, "\n%s\n", sectionHeaderStyle.Render("Abilities"))
		for _, a := range ch.Abilities {
			fmt.Fprintf(&b, "  %s %s\n    %s\n",
				selectedStyle.Render(a.Name), metaStyle.Render("("+a.Cooldown+")"), dimStyle.Render(a.Description))
		}
	}

	if ch.Guide.Overview != "" || len(ch.Guide.Tips) > 0 {
		fmt.Fprintf(&b, "\n%s\n", sectionHeaderStyle.Render("Guide"))
		if ch.Guide.Overview != "" {
			fmt.Fprintf(&b, "  %s\n", normalStyle.Render(ch.Guide.Overview))
		}
		for _, tip := range ch.Guide.Tips {
			fmt.Fprintf(&b, "  - %s\n", dimStyle.Render(tip))
		}
		for _, combo := range ch.Guide.Combos {
			fmt.Fprintf(&b, "  combo: %s\n", dimStyle.Render(combo))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.galleryView(ch))
	return b.String()
}

func (m Model) dossierHeader(ch domain.Character) string {
	return fmt.Sprintf("%s  %s\n%s · %s · %s\n",
		accentStyle(ch.Theme.Accent).Render(ch.Name),
		dimStyle.Render(ch.Title),
		roleStyle(ch.Role).Render(ch.Role),
		difficultyStyle(ch.Difficulty).Render(ch.Difficulty),
		dimStyle.Render(fmt.Sprintf("%d fan art", m.gallery.CountFor(ch.ID))))
}

func (m Model) galleryView(ch domain.Character) string {
	var b strings.Builder
	entries := m.gallery.EntriesFor(ch.ID)
	fmt.Fprintf(&b, "%s\n", sectionHeaderStyle.Render(fmt.Sprintf("Fan Art Gallery (%d)", len(entries))))

	if len(entries) == 0 {
		fmt.Fprintf(&b, "  %s\n", dimStyle.Render(fmt.Sprintf("Nothing here yet. Be the first to share art for %s!", ch.Name)))
		return b.String()
	}

	for i, e := range entries {
		prefix := "  "
		caption := normalStyle.Render(e.Caption)
		if i == m.artCursor {
			prefix = accentStyle(ch.Theme.Accent).Render("> ")
			caption = selectedStyle.Render(e.Caption)
		}
		fmt.Fprintf(&b, "%s%s\n    %s %s\n    %s\n",
			prefix, caption,
			metaStyle.Render("by "+e.Artist),
			metaStyle.Render(e.CreatedAt.Format("2006-01-02")),
			dimStyle.Render(e.ImageURL))
	}
	return b.String()
}

func (m Model) helpBar() string {
	var items []string
	switch m.mode {
	case modeSearch:
		items = []string{helpEntry("enter", "done"), helpEntry("esc", "clear")}
	case modeForm:
		items = []string{helpEntry("ctrl+s", "submit"), helpEntry("esc", "cancel")}
	default:
		items = []string{
			helpEntry("/", "search"),
			helpEntry("r", "role"),
			helpEntry("d", "difficulty"),
			helpEntry("x", "reset"),
			helpEntry("j/k", "hero"),
			helpEntry("[/]", "art"),
			helpEntry("c", "copy url"),
			helpEntry("n", "submit art"),
			helpEntry("q", "quit"),
		}
	}
	return strings.Join(items, "  ")
}
