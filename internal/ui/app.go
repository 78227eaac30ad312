// Package ui provides terminal user interface components for the taskpad app.
// This file contains the main App model which coordinates all panes and
// routes messages using the Bubble Tea architecture.
package ui

import (
	"fmt"
	"strings"
	"time"

	"taskpad/internal/config"
	"taskpad/internal/settings"
	"taskpad/internal/storage"
	"taskpad/internal/task"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// PaneID identifies each pane in the application.
type PaneID int

const (
	PaneTasks PaneID = iota
	PaneCalendar
	PaneDone
	PaneNotes
)

// AppConfig holds user configuration for the app behavior.
type AppConfig struct {
	Keys *config.KeysConfig
}

// App is the main application model. One pane is visible at a time behind a
// tab bar; settings, help, and delete confirmation render as overlays.
type App struct {
	tasks    *task.Store
	storage  *storage.Storage
	settings *settings.Manager
	styles   *Styles
	config   *AppConfig

	taskPane     *TaskPane
	calendarPane *CalendarPane
	donePane     *DonePane
	notesPane    *NotesPane
	settingsPane *SettingsPane
	helpOverlay  *HelpOverlay

	confirmDel   *confirmState
	activePane   PaneID
	showHelp     bool
	showSettings bool
	width        int
	height       int
	status       string
	statusErr    bool
	statusUntil  time.Time
	quitting     bool

	// Key bindings
	keys     GlobalKeyMap
	helpKeys HelpKeyMap
}

type confirmState struct {
	title string
	body  string
	cmd   tea.Cmd
}

// NewApp creates a new application. The task store must already be loaded.
func NewApp(tasks *task.Store, st *storage.Storage, mgr *settings.Manager, styles *Styles, cfg *AppConfig) *App {
	if cfg == nil {
		cfg = &AppConfig{Keys: &config.KeysConfig{}}
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}

	settingsFn := func() storage.Settings { return mgr.Current() }

	taskPane := NewTaskPaneWithKeys(tasks, settingsFn, styles, cfg.Keys)
	calendarPane := NewCalendarPaneWithKeys(tasks, st, settingsFn, styles, cfg.Keys)
	donePane := NewDonePaneWithKeys(tasks, styles, cfg.Keys)
	notesPane := NewNotesPaneWithKeys(st, styles, cfg.Keys)
	settingsPane := NewSettingsPaneWithKeys(mgr, styles, cfg.Keys)
	helpOverlay := NewHelpOverlay(styles)

	app := &App{
		tasks:        tasks,
		storage:      st,
		settings:     mgr,
		styles:       styles,
		config:       cfg,
		taskPane:     taskPane,
		calendarPane: calendarPane,
		donePane:     donePane,
		notesPane:    notesPane,
		settingsPane: settingsPane,
		helpOverlay:  helpOverlay,
		activePane:   PaneTasks,
		keys:         NewGlobalKeyMap(cfg.Keys),
		helpKeys:     DefaultHelpKeyMap(),
	}

	taskPane.SetFocused(true)
	calendarPane.SetFocused(false)
	donePane.SetFocused(false)
	notesPane.SetFocused(false)

	return app
}

// Init starts the per-second tick.
func (a *App) Init() tea.Cmd {
	return tickCmd()
}

// Update handles all messages and routes them appropriately.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		a.SetStatus(msg.text, msg.isErr)
		return a, nil

	case tasksChangedMsg, settingsChangedMsg, clearedAllMsg:
		// Broadcast so every projection-backed pane clamps its cursor.
		a.taskPane.Update(msg)
		a.calendarPane.Update(msg)
		a.donePane.Update(msg)
		a.notesPane.Update(msg)
		return a, nil

	case notesChangedMsg:
		a.notesPane.Update(msg)
		return a, nil

	case requestClearAllMsg:
		a.showSettings = false
		a.confirmDel = &confirmState{
			title: "Clear all task data?",
			body:  "Every task, the calendar, and the history will be removed.",
			cmd:   a.clearAllCmd(),
		}
		return a, nil

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tickMsg:
		if a.status != "" && !a.statusUntil.IsZero() && time.Now().After(a.statusUntil) {
			a.status = ""
			a.statusErr = false
			a.statusUntil = time.Time{}
		}
		return a, tickCmd()

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Forward everything else (textinput blinks etc.) to the active surface.
	if a.showSettings {
		return a, a.settingsPane.Update(msg)
	}
	return a, a.activePaneUpdate(msg)
}

// handleKey routes key presses through the overlay stack before the panes.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.confirmDel != nil {
		switch msg.String() {
		case "y", "Y", "enter":
			cmd := a.confirmDel.cmd
			a.confirmDel = nil
			return a, cmd
		case "n", "N", "esc":
			a.confirmDel = nil
			a.SetStatus("Canceled", false)
			return a, nil
		default:
			return a, nil
		}
	}

	if a.showHelp {
		if key.Matches(msg, a.helpKeys.Close) {
			a.showHelp = false
		}
		return a, nil
	}

	if a.showSettings {
		switch {
		case key.Matches(msg, a.keys.Settings), msg.String() == "esc", msg.String() == "q":
			a.showSettings = false
			return a, nil
		}
		return a, a.settingsPane.Update(msg)
	}

	inInputMode := a.paneIsAdding()

	if !inInputMode {
		// Deletions are intercepted here when confirmation is enabled.
		if a.settings.Current().ConfirmDelete {
			if confirm := a.maybeConfirmDelete(msg); confirm != nil {
				a.confirmDel = confirm
				return a, nil
			}
		}

		switch {
		case key.Matches(msg, a.keys.Quit):
			a.quitting = true
			return a, tea.Quit

		case key.Matches(msg, a.keys.Help):
			a.showHelp = true
			return a, nil

		case key.Matches(msg, a.keys.Settings):
			a.showSettings = true
			return a, nil

		case key.Matches(msg, a.keys.NextPane):
			a.setActivePane((a.activePane + 1) % 4)
			return a, nil

		case key.Matches(msg, a.keys.Pane1):
			a.setActivePane(PaneTasks)
			return a, nil

		case key.Matches(msg, a.keys.Pane2):
			a.setActivePane(PaneCalendar)
			return a, nil

		case key.Matches(msg, a.keys.Pane3):
			a.setActivePane(PaneDone)
			return a, nil

		case key.Matches(msg, a.keys.Pane4):
			a.setActivePane(PaneNotes)
			return a, nil
		}
	}

	return a, a.activePaneUpdate(msg)
}

// maybeConfirmDelete builds the confirmation overlay when the pressed key is
// the active pane's delete and something is selected.
func (a *App) maybeConfirmDelete(msg tea.KeyMsg) *confirmState {
	switch a.activePane {
	case PaneTasks:
		if key.Matches(msg, a.taskPane.keys.Delete) {
			t, ok := a.taskPane.SelectedTask()
			if !ok {
				return nil
			}
			return &confirmState{
				title: "Delete task?",
				body:  truncateText(t.Title, 60),
				cmd:   a.deleteTaskCmd(t.ID),
			}
		}
	case PaneCalendar:
		if key.Matches(msg, a.calendarPane.keys.Delete) {
			t, ok := a.calendarPane.SelectedTask()
			if !ok {
				return nil
			}
			return &confirmState{
				title: "Delete task?",
				body:  truncateText(t.Title, 60),
				cmd:   a.deleteTaskCmd(t.ID),
			}
		}
	case PaneDone:
		if key.Matches(msg, a.donePane.keys.Delete) {
			e, ok := a.donePane.SelectedEntry()
			if !ok {
				return nil
			}
			return &confirmState{
				title: "Remove from history?",
				body:  truncateText(e.Title, 60),
				cmd:   a.deleteCompletedCmd(e.ID),
			}
		}
	case PaneNotes:
		if key.Matches(msg, a.notesPane.keys.Delete) {
			n, ok := a.notesPane.SelectedNote()
			if !ok {
				return nil
			}
			return &confirmState{
				title: "Delete note?",
				body:  truncateText(n.Text, 60),
				cmd:   a.deleteNoteCmd(n.ID),
			}
		}
	}
	return nil
}

// Confirmed mutations run inside the returned command, still on the event
// loop's single writer.
func (a *App) deleteTaskCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if err := a.tasks.Delete(id); err != nil {
			return statusMsg{text: "Delete task: " + err.Error(), isErr: true}
		}
		return tasksChangedMsg{}
	}
}

func (a *App) deleteCompletedCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if err := a.tasks.DeleteCompleted(id); err != nil {
			return statusMsg{text: "Remove entry: " + err.Error(), isErr: true}
		}
		return tasksChangedMsg{}
	}
}

func (a *App) deleteNoteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if err := a.storage.DeleteNote(id); err != nil {
			return statusMsg{text: "Delete note: " + err.Error(), isErr: true}
		}
		return notesChangedMsg{}
	}
}

func (a *App) clearAllCmd() tea.Cmd {
	return func() tea.Msg {
		if err := a.tasks.ClearAll(); err != nil {
			return statusMsg{text: "Clear all: " + err.Error(), isErr: true}
		}
		return clearedAllMsg{}
	}
}

// paneIsAdding reports whether the active pane has an input open.
func (a *App) paneIsAdding() bool {
	switch a.activePane {
	case PaneTasks:
		return a.taskPane.IsAdding()
	case PaneCalendar:
		return a.calendarPane.IsAdding()
	case PaneNotes:
		return a.notesPane.IsAdding()
	}
	return false
}

// activePaneUpdate forwards a message to the active pane.
func (a *App) activePaneUpdate(msg tea.Msg) tea.Cmd {
	switch a.activePane {
	case PaneTasks:
		return a.taskPane.Update(msg)
	case PaneCalendar:
		return a.calendarPane.Update(msg)
	case PaneDone:
		return a.donePane.Update(msg)
	case PaneNotes:
		return a.notesPane.Update(msg)
	}
	return nil
}

// setActivePane sets the active pane and updates focus states.
func (a *App) setActivePane(pane PaneID) {
	a.activePane = pane

	a.taskPane.SetFocused(pane == PaneTasks)
	a.calendarPane.SetFocused(pane == PaneCalendar)
	a.donePane.SetFocused(pane == PaneDone)
	a.notesPane.SetFocused(pane == PaneNotes)
}

// updateLayout recalculates pane sizes from the terminal dimensions.
func (a *App) updateLayout() {
	// Title bar (1) + tab bar (1) + help bar (1) + spacing (2)
	contentHeight := a.height - 5
	if contentHeight < 8 {
		contentHeight = 8
	}

	paneWidth := a.width - 4
	if paneWidth < 20 {
		paneWidth = 20
	}

	a.taskPane.SetSize(paneWidth, contentHeight)
	a.calendarPane.SetSize(paneWidth, contentHeight)
	a.donePane.SetSize(paneWidth, contentHeight)
	a.notesPane.SetSize(paneWidth, contentHeight)
	a.settingsPane.SetSize(a.width, a.height)
	a.helpOverlay.SetSize(a.width, a.height)
}

// View renders the entire app.
func (a *App) View() string {
	if a.quitting {
		return a.renderGoodbye()
	}

	if a.confirmDel != nil {
		return a.renderConfirmDelete()
	}

	if a.showHelp {
		return a.helpOverlay.View()
	}

	if a.showSettings {
		return a.settingsPane.View()
	}

	var b strings.Builder

	b.WriteString(a.renderTitleBar())
	b.WriteString("\n")
	b.WriteString(a.renderPaneTabs())
	b.WriteString("\n")

	switch a.activePane {
	case PaneTasks:
		b.WriteString(a.taskPane.View())
	case PaneCalendar:
		b.WriteString(a.calendarPane.View())
	case PaneDone:
		b.WriteString(a.donePane.View())
	case PaneNotes:
		b.WriteString(a.notesPane.View())
	}
	b.WriteString("\n")

	b.WriteString(a.renderHelpBar())

	return b.String()
}

func (a *App) renderConfirmDelete() string {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorDanger).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorDanger).
		MarginBottom(1)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	hintStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render(a.confirmDel.title))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render(a.confirmDel.body))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("[y/enter] confirm    [n/esc] cancel"))

	content := overlayStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

// renderPaneTabs renders a tab bar showing available panes.
func (a *App) renderPaneTabs() string {
	tabs := []struct {
		id    PaneID
		label string
	}{
		{PaneTasks, "Tasks"},
		{PaneCalendar, "Calendar"},
		{PaneDone, "Done"},
		{PaneNotes, "Notes"},
	}

	var parts []string
	for _, tab := range tabs {
		label := tab.label
		if tab.id == a.activePane {
			label = a.styles.TabActiveStyle.Render("[" + label + "]")
		} else {
			label = a.styles.TabInactiveStyle.Render(" " + label + " ")
		}
		parts = append(parts, label)
	}

	tabBar := strings.Join(parts, "  ")
	padding := (a.width - lipgloss.Width(tabBar)) / 2
	if padding > 0 {
		tabBar = strings.Repeat(" ", padding) + tabBar
	}

	return tabBar
}

// renderGoodbye shows an exit message with a small day summary.
func (a *App) renderGoodbye() string {
	remaining := a.tasks.Remaining()
	doneToday := 0
	todayKey := time.Now().Format(storage.DateKeyFormat)
	for _, t := range a.tasks.Completed() {
		if t.CompletedAt != nil && t.CompletedAt.Format(storage.DateKeyFormat) == todayKey {
			doneToday++
		}
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  See you later!\n")
	b.WriteString("\n")

	if remaining > 0 || doneToday > 0 {
		b.WriteString("  Today's progress:\n")
		b.WriteString(fmt.Sprintf("     Done:      %d\n", doneToday))
		b.WriteString(fmt.Sprintf("     Remaining: %d\n", remaining))
		b.WriteString("\n")
	}

	return b.String()
}

// renderTitleBar creates the top title bar with the task counter and clock.
func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render(" taskpad ")

	var counter string
	if a.settings.Current().ShowTaskCounter {
		counter = a.styles.StatLabelStyle.Render(fmt.Sprintf("%d remaining", a.tasks.Remaining()))
	}

	now := time.Now()
	date := a.styles.DateStyle.Render(now.Format("Mon Jan 2 · 15:04"))

	titleWidth := lipgloss.Width(title)
	counterWidth := lipgloss.Width(counter)
	dateWidth := lipgloss.Width(date)

	spacerWidth := a.width - titleWidth - counterWidth - dateWidth - 4
	if spacerWidth < 2 {
		spacerWidth = 2
	}

	var parts []string
	parts = append(parts, title)
	if counter != "" {
		parts = append(parts, "  "+counter)
	}
	parts = append(parts, strings.Repeat(" ", spacerWidth))
	parts = append(parts, date)

	return strings.Join(parts, "")
}

// renderHelpBar creates the bottom help bar with context-sensitive hints.
func (a *App) renderHelpBar() string {
	if a.status != "" {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}

	if a.paneIsAdding() {
		if a.activePane == PaneTasks {
			return a.styles.RenderHelp(
				"enter", "save",
				"tab", "field",
				"h/l", "change",
				"esc", "cancel",
			)
		}
		return a.styles.RenderHelp(
			"enter", "save",
			"esc", "cancel",
		)
	}

	switch a.activePane {
	case PaneTasks:
		return a.styles.RenderHelp(
			"a", "add",
			"d", "done",
			"x", "del",
			"j/k", "nav",
			"tab", "pane",
			"?", "help",
		)
	case PaneCalendar:
		return a.styles.RenderHelp(
			"h/l", "day",
			"a", "add",
			"d", "toggle",
			"x", "del",
			"tab", "pane",
			"?", "help",
		)
	case PaneDone:
		return a.styles.RenderHelp(
			"x", "remove",
			"j/k", "nav",
			"tab", "pane",
			"?", "help",
		)
	case PaneNotes:
		return a.styles.RenderHelp(
			"a", "add",
			"e", "edit",
			"x", "del",
			"j/k", "nav",
			"tab", "pane",
			"?", "help",
		)
	}

	return ""
}

// SetStatus sets a status message to display to the user.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := 5 * time.Second
	if isErr {
		ttl = 8 * time.Second
	}
	a.statusUntil = time.Now().Add(ttl)
}

// truncateText trims s to at most width display cells.
func truncateText(s string, width int) string {
	return runewidth.Truncate(s, width, "..")
}

// Run starts the Bubble Tea program.
func Run(tasks *task.Store, st *storage.Storage, mgr *settings.Manager, styles *Styles, cfg *AppConfig) error {
	app := NewApp(tasks, st, mgr, styles, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
