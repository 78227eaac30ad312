// Package ui provides terminal user interface components for the taskpad app.
package ui

import (
	"fmt"
	"strings"

	"taskpad/internal/config"
	"taskpad/internal/storage"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// NotesPane shows free-form notes, most recently touched first.
type NotesPane struct {
	storage *storage.Storage
	styles  *Styles

	notes   []storage.Note
	cursor  int
	focused bool
	width   int
	height  int

	adding    bool
	editingID string
	input     textinput.Model

	keys      ItemKeyMap
	inputKeys InputKeyMap
}

// NewNotesPane creates a new notes pane.
func NewNotesPane(st *storage.Storage, styles *Styles) *NotesPane {
	return NewNotesPaneWithKeys(st, styles, &config.KeysConfig{})
}

// NewNotesPaneWithKeys creates a new notes pane with custom key bindings.
func NewNotesPaneWithKeys(st *storage.Storage, styles *Styles, keyCfg *config.KeysConfig) *NotesPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	ti := textinput.New()
	ti.Placeholder = "Write a note"
	ti.CharLimit = 2000
	ti.Width = 40

	p := &NotesPane{
		storage:   st,
		styles:    styles,
		input:     ti,
		keys:      NewItemKeyMap(keyCfg),
		inputKeys: NewInputKeyMap(keyCfg),
	}
	p.reload()
	return p
}

// reload refreshes the cached note list from disk.
func (p *NotesPane) reload() {
	doc, err := p.storage.LoadNotes()
	if err != nil && doc == nil {
		p.notes = []storage.Note{}
		return
	}
	p.notes = storage.SortNotes(doc.Notes)
	if p.cursor >= len(p.notes) {
		p.cursor = max(0, len(p.notes)-1)
	}
}

// SetSize sets the pane dimensions.
func (p *NotesPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(10, width-4)
}

// SetFocused sets whether this pane is focused.
func (p *NotesPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsAdding returns whether the add or edit input is open.
func (p *NotesPane) IsAdding() bool {
	return p.adding
}

// SelectedNote returns the note under the cursor, if any.
func (p *NotesPane) SelectedNote() (storage.Note, bool) {
	if len(p.notes) == 0 || p.cursor < 0 || p.cursor >= len(p.notes) {
		return storage.Note{}, false
	}
	return p.notes[p.cursor], true
}

// submit saves the open input as a new note or an edit.
func (p *NotesPane) submit() tea.Cmd {
	text := strings.TrimSpace(p.input.Value())
	editing := p.editingID
	p.adding = false
	p.editingID = ""
	p.input.Reset()
	if text == "" {
		return nil
	}

	var err error
	if editing != "" {
		err = p.storage.UpdateNote(editing, text)
	} else {
		_, err = p.storage.AddNote(text)
	}
	if err != nil {
		return errStatusCmd("Save note", err)
	}
	return notesChangedCmd()
}

// Update handles messages for the notes pane.
func (p *NotesPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg.(type) {
	case notesChangedMsg, clearedAllMsg:
		p.reload()
		return nil
	}

	if p.adding {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch {
			case key.Matches(msg, p.inputKeys.Confirm):
				return p.submit()

			case key.Matches(msg, p.inputKeys.Cancel):
				p.adding = false
				p.editingID = ""
				p.input.Reset()
				return nil
			}
		}

		p.input, cmd = p.input.Update(msg)
		return cmd
	}

	if !p.focused {
		return nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Down):
			if len(p.notes) > 0 {
				p.cursor = min(p.cursor+1, len(p.notes)-1)
			}

		case key.Matches(msg, p.keys.Up):
			if len(p.notes) > 0 {
				p.cursor = max(p.cursor-1, 0)
			}

		case key.Matches(msg, p.keys.Top):
			p.cursor = 0

		case key.Matches(msg, p.keys.Bottom):
			if len(p.notes) > 0 {
				p.cursor = len(p.notes) - 1
			}

		case key.Matches(msg, p.keys.Add):
			p.adding = true
			p.editingID = ""
			p.input.Reset()
			p.input.Focus()
			return textinput.Blink

		case key.Matches(msg, p.keys.Edit):
			if n, ok := p.SelectedNote(); ok {
				p.adding = true
				p.editingID = n.ID
				p.input.SetValue(n.Text)
				p.input.CursorEnd()
				p.input.Focus()
				return textinput.Blink
			}

		case key.Matches(msg, p.keys.Delete):
			if n, ok := p.SelectedNote(); ok {
				if err := p.storage.DeleteNote(n.ID); err != nil {
					return tea.Batch(errStatusCmd("Delete note", err), notesChangedCmd())
				}
				return notesChangedCmd()
			}
		}
	}

	return nil
}

// View renders the notes pane.
func (p *NotesPane) View() string {
	var b strings.Builder

	title := p.styles.PaneTitleStyle.Render("✎ NOTES")
	b.WriteString(title)
	b.WriteString("\n")

	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorMuted).Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	if len(p.notes) == 0 && !p.adding {
		b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorTextMuted).Italic(true).Render("  No notes yet. Press 'a' to add one."))
		b.WriteString("\n")
	} else {
		maxItems := p.height - 7
		if maxItems < 3 {
			maxItems = 5
		}

		startIdx := 0
		if p.cursor >= maxItems {
			startIdx = p.cursor - maxItems + 1
		}

		for i, n := range p.notes {
			if i < startIdx || i >= startIdx+maxItems {
				continue
			}

			when := n.UpdatedAt.Format("Jan 2")
			whenWidth := lipgloss.Width(when)

			availableWidth := p.width - 4 - 3 - whenWidth - 1
			if availableWidth < 5 {
				availableWidth = 5
			}
			// Notes keep their text verbatim; only the display is flattened.
			text := strings.ReplaceAll(n.Text, "\n", " ")
			text = runewidth.Truncate(text, availableWidth, "..")
			padding := max(1, availableWidth-runewidth.StringWidth(text))

			if i == p.cursor && p.focused && !p.adding {
				line := fmt.Sprintf("· %s%s%s", text, strings.Repeat(" ", padding), when)
				b.WriteString(p.styles.TaskSelectedStyle.Render(" " + line + " "))
			} else {
				b.WriteString(fmt.Sprintf(" · %s%s%s",
					p.styles.NoteStyle.Render(text),
					strings.Repeat(" ", padding),
					p.styles.NoteDateStyle.Render(when)))
			}
			b.WriteString("\n")
		}

		b.WriteString("\n")
		stats := p.styles.StatLabelStyle.Render(fmt.Sprintf("%d notes", len(p.notes)))
		b.WriteString("  " + stats)
		b.WriteString("\n")
	}

	if p.adding {
		b.WriteString("\n")
		prompt := p.styles.InputPromptStyle.Render("+ ")
		if p.editingID != "" {
			prompt = p.styles.InputPromptStyle.Render("✎ ")
		}
		b.WriteString(prompt + p.input.View())
		b.WriteString("\n")
	}

	return p.styles.PaneStyle.Width(p.width).Height(p.height).Render(b.String())
}
