// Package ui provides terminal user interface components for the taskpad app.
// This file contains tea.Cmd factories. Mutations happen synchronously in
// Update because the task store has a single logical writer; these commands
// only deliver follow-up messages back into the event loop.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickCmd returns a command that sends a tick every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// statusCmd delivers a transient status line message.
func statusCmd(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// errStatusCmd delivers an error on the status line, or nil when err is nil.
func errStatusCmd(prefix string, err error) tea.Cmd {
	if err == nil {
		return nil
	}
	return statusCmd(prefix+": "+err.Error(), true)
}

// tasksChangedCmd notifies every pane that the task collections changed.
func tasksChangedCmd() tea.Cmd {
	return func() tea.Msg {
		return tasksChangedMsg{}
	}
}

// notesChangedCmd notifies the notes pane that the note collection changed.
func notesChangedCmd() tea.Cmd {
	return func() tea.Msg {
		return notesChangedMsg{}
	}
}

// settingsChangedCmd notifies panes that settings changed.
func settingsChangedCmd() tea.Cmd {
	return func() tea.Msg {
		return settingsChangedMsg{}
	}
}
