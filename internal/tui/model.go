// Package tui is the terminal catalog browser: filter the roster, read a
// dossier, browse and submit fan art.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrSnakeDoc/codex/internal/domain"
	"github.com/MrSnakeDoc/codex/internal/gallery"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeForm
)

// Gallery is the part of gallery.Store the browser needs.
type Gallery interface {
	Add(ctx context.Context, sub domain.Submission) (domain.FanArtEntry, error)
	EntriesFor(characterID string) []domain.FanArtEntry
	CountFor(characterID string) int
	Len() int
}

// fanArtAddedMsg carries the result of a submission.
type fanArtAddedMsg struct {
	entry domain.FanArtEntry
	err   error
}

// copyResultMsg carries the result of a clipboard copy.
type copyResultMsg struct {
	err error
}

// Model is the root Bubbletea model.
type Model struct {
	roster   []domain.Character
	gallery  Gallery
	copyText func(string) error

	roleOpts []string
	diffOpts []string
	criteria domain.Criteria
	filtered []domain.Character

	selectedID string // last character the user moved to; may be filtered out
	cursor     int    // index into filtered
	artCursor  int    // index into the active character's fan art

	mode      mode
	form      formModel
	status    string
	statusErr bool

	width  int
	height int
}

type Option func(*Model)

// WithClipboard replaces the system clipboard writer.
func WithClipboard(fn func(string) error) Option {
	return func(m *Model) { m.copyText = fn }
}

// New builds the browser over a roster snapshot and a gallery.
func New(characters []domain.Character, g Gallery, opts ...Option) Model {
	m := Model{
		roster:   characters,
		gallery:  g,
		copyText: clipboard.WriteAll,
		roleOpts: domain.RoleOptions(characters),
		diffOpts: domain.DifficultyOptions(characters),
		criteria: domain.NewCriteria("", "", ""),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if len(characters) > 0 {
		m.selectedID = characters[0].ID
	}
	m.refilter()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// active is the character shown in the detail pane.
func (m Model) active() (domain.Character, bool) {
	return domain.ResolveActive(m.filtered, m.selectedID, m.roster)
}

// refilter recomputes the visible list and moves the cursor onto the active character.
func (m *Model) refilter() {
	prev, _ := m.active()
	m.filtered = domain.Filter(m.roster, m.criteria)

	m.cursor = 0
	cur, ok := m.active()
	if !ok {
		return
	}
	for i, ch := range m.filtered {
		if ch.ID == cur.ID {
			m.cursor = i
			break
		}
	}
	if cur.ID != prev.ID {
		m.artCursor = 0
	}
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case fanArtAddedMsg:
		return m.handleAdded(msg), nil

	case copyResultMsg:
		if msg.err != nil {
			m.setStatus("clipboard unavailable: "+msg.err.Error(), true)
		} else {
			m.setStatus("image url copied", false)
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg), nil
		case modeForm:
			return m.updateForm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.mode = modeSearch
	case "r":
		m.criteria.Role = domain.NextOption(m.roleOpts, m.criteria.Role)
		m.refilter()
	case "d":
		m.criteria.Difficulty = domain.NextOption(m.diffOpts, m.criteria.Difficulty)
		m.refilter()
	case "x":
		m.criteria = domain.NewCriteria("", "", "")
		m.refilter()
		m.setStatus("filters reset", false)
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "]", "l":
		m.moveArtCursor(1)
	case "[", "h":
		m.moveArtCursor(-1)
	case "c":
		return m, m.copySelectedArt()
	case "n":
		if _, ok := m.active(); ok {
			m.mode = modeForm
			m.form = formModel{}
		}
	case "esc":
		m.setStatus("", false)
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	if len(m.filtered) == 0 {
		return
	}
	next := min(max(m.cursor+delta, 0), len(m.filtered)-1)
	if m.filtered[next].ID != m.selectedID {
		m.artCursor = 0
	}
	m.cursor = next
	m.selectedID = m.filtered[next].ID
}

func (m *Model) moveArtCursor(delta int) {
	ch, ok := m.active()
	if !ok {
		return
	}
	n := m.gallery.CountFor(ch.ID)
	if n == 0 {
		return
	}
	m.artCursor = min(max(m.artCursor+delta, 0), n-1)
}

func (m *Model) copySelectedArt() tea.Cmd {
	ch, ok := m.active()
	if !ok {
		return nil
	}
	entries := m.gallery.EntriesFor(ch.ID)
	if m.artCursor >= len(entries) {
		m.setStatus("no fan art to copy", true)
		return nil
	}
	url := entries[m.artCursor].ImageURL
	copyText := m.copyText
	return func() tea.Msg {
		return copyResultMsg{err: copyText(url)}
	}
}

func (m Model) updateSearch(msg tea.KeyMsg) Model {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = modeBrowse
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.criteria.Search = ""
		m.refilter()
	default:
		m.criteria.Search = editText(m.criteria.Search, msg)
		m.refilter()
	}
	return m
}

func (m Model) updateForm(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.form.submitting {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.form = formModel{}
		return m, nil
	case "ctrl+s":
		return m.submit()
	case "enter":
		if m.form.onLastField() {
			return m.submit()
		}
	}
	m.form = m.form.updateKeys(msg)
	return m, nil
}

func (m Model) submit() (Model, tea.Cmd) {
	ch, ok := m.active()
	if !ok {
		return m, nil
	}
	sub, err := domain.PrepareSubmission(ch,
		m.form.value(fieldImageURL),
		m.form.value(fieldArtist),
		m.form.value(fieldCaption))
	if err != nil {
		m.form.err = err.Error()
		return m, nil
	}

	m.form.submitting = true
	g := m.gallery
	return m, func() tea.Msg {
		entry, err := g.Add(context.Background(), sub)
		return fanArtAddedMsg{entry: entry, err: err}
	}
}

func (m Model) handleAdded(msg fanArtAddedMsg) Model {
	m.form.submitting = false
	switch {
	case msg.err == nil:
		m.setStatus(fmt.Sprintf("fan art archived for %s", m.nameOf(msg.entry.CharacterID)), false)
	case errors.Is(msg.err, gallery.ErrPersist):
		m.setStatus("fan art added but not saved to disk: "+msg.err.Error(), true)
	default:
		m.form.err = msg.err.Error()
		return m
	}
	m.mode = modeBrowse
	m.form = formModel{}
	m.artCursor = 0 // new entries are listed first
	return m
}

func (m Model) nameOf(id string) string {
	if ch, ok := domain.FindCharacter(m.roster, id); ok {
		return ch.Name
	}
	return id
}

// Run starts the full-screen program and blocks until the user quits or ctx ends.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
