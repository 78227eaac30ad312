// Package ui provides terminal user interface components for the taskpad app.
package ui

import (
	"fmt"
	"strings"

	"taskpad/internal/config"
	"taskpad/internal/storage"
	"taskpad/internal/task"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// DonePane shows the completed history, newest first. Removing an entry here
// only edits the history; the canonical task keeps its completed mark.
type DonePane struct {
	store  *task.Store
	styles *Styles

	cursor  int
	focused bool
	width   int
	height  int

	keys ItemKeyMap
}

// NewDonePane creates a new done pane.
func NewDonePane(store *task.Store, styles *Styles) *DonePane {
	return NewDonePaneWithKeys(store, styles, &config.KeysConfig{})
}

// NewDonePaneWithKeys creates a new done pane with custom key bindings.
func NewDonePaneWithKeys(store *task.Store, styles *Styles, keyCfg *config.KeysConfig) *DonePane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	return &DonePane{
		store:  store,
		styles: styles,
		keys:   NewItemKeyMap(keyCfg),
	}
}

// SetSize sets the pane dimensions.
func (p *DonePane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets whether this pane is focused.
func (p *DonePane) SetFocused(focused bool) {
	p.focused = focused
}

// IsAdding always returns false; the history has no add flow.
func (p *DonePane) IsAdding() bool {
	return false
}

// Entries returns the history newest first.
func (p *DonePane) Entries() []storage.Task {
	entries := p.store.Completed()
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries
}

// SelectedEntry returns the history entry under the cursor, if any.
func (p *DonePane) SelectedEntry() (storage.Task, bool) {
	entries := p.Entries()
	if len(entries) == 0 || p.cursor < 0 || p.cursor >= len(entries) {
		return storage.Task{}, false
	}
	return entries[p.cursor], true
}

func (p *DonePane) clampCursor() {
	n := len(p.Entries())
	if p.cursor >= n {
		p.cursor = max(0, n-1)
	}
}

// Update handles messages for the done pane.
func (p *DonePane) Update(msg tea.Msg) tea.Cmd {
	switch msg.(type) {
	case tasksChangedMsg, settingsChangedMsg, clearedAllMsg:
		p.clampCursor()
		return nil
	}

	if !p.focused {
		return nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		entries := p.Entries()
		switch {
		case key.Matches(msg, p.keys.Down):
			if len(entries) > 0 {
				p.cursor = min(p.cursor+1, len(entries)-1)
			}

		case key.Matches(msg, p.keys.Up):
			if len(entries) > 0 {
				p.cursor = max(p.cursor-1, 0)
			}

		case key.Matches(msg, p.keys.Top):
			p.cursor = 0

		case key.Matches(msg, p.keys.Bottom):
			if len(entries) > 0 {
				p.cursor = len(entries) - 1
			}

		case key.Matches(msg, p.keys.Delete):
			if e, ok := p.SelectedEntry(); ok {
				if err := p.store.DeleteCompleted(e.ID); err != nil {
					return tea.Batch(errStatusCmd("Delete entry", err), tasksChangedCmd())
				}
				return tasksChangedCmd()
			}
		}
	}

	return nil
}

// View renders the done pane.
func (p *DonePane) View() string {
	var b strings.Builder

	title := p.styles.PaneTitleStyle.Render("✔ DONE")
	b.WriteString(title)
	b.WriteString("\n")

	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorMuted).Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	entries := p.Entries()

	if len(entries) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorTextMuted).Italic(true).Render("  Nothing completed yet."))
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

		for i, e := range entries {
			if i < startIdx || i >= startIdx+maxItems {
				continue
			}

			when := ""
			if e.CompletedAt != nil {
				when = e.CompletedAt.Format("Jan 2 15:04")
			}
			whenWidth := lipgloss.Width(when)

			availableWidth := p.width - 4 - 3 - whenWidth - 1
			if availableWidth < 5 {
				availableWidth = 5
			}
			titleText := runewidth.Truncate(e.Title, availableWidth, "..")
			padding := max(1, availableWidth-runewidth.StringWidth(titleText))

			if i == p.cursor && p.focused {
				line := fmt.Sprintf("✓ %s%s%s", titleText, strings.Repeat(" ", padding), when)
				b.WriteString(p.styles.TaskSelectedStyle.Render(" " + line + " "))
			} else {
				b.WriteString(fmt.Sprintf(" %s %s%s%s",
					p.styles.SettingOnStyle.Render("✓"),
					p.styles.TaskDoneStyle.Render(titleText),
					strings.Repeat(" ", padding),
					p.styles.NoteDateStyle.Render(when)))
			}
			b.WriteString("\n")
		}

		b.WriteString("\n")
		stats := p.styles.StatLabelStyle.Render(fmt.Sprintf("%d completed", len(entries)))
		b.WriteString("  " + stats)
		b.WriteString("\n")
	}

	return p.styles.PaneStyle.Width(p.width).Height(p.height).Render(b.String())
}
