// Package ui provides terminal user interface components for the taskpad app.
package ui

import (
	"fmt"
	"strings"
	"time"

	"taskpad/internal/config"
	"taskpad/internal/storage"
	"taskpad/internal/task"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// CalendarPane shows one day's tasks, completed ones marked in place. The
// selected day is persisted so it survives restarts.
type CalendarPane struct {
	store    *task.Store
	storage  *storage.Storage
	settings func() storage.Settings
	styles   *Styles

	selected string // date key
	cursor   int
	focused  bool
	width    int
	height   int

	adding bool
	input  textinput.Model

	keys      CalendarKeyMap
	inputKeys InputKeyMap
}

// NewCalendarPane creates a new calendar pane.
func NewCalendarPane(store *task.Store, st *storage.Storage, settings func() storage.Settings, styles *Styles) *CalendarPane {
	return NewCalendarPaneWithKeys(store, st, settings, styles, &config.KeysConfig{})
}

// NewCalendarPaneWithKeys creates a new calendar pane with custom key bindings.
// The persisted day selection is restored; a missing or stale one falls back
// to today.
func NewCalendarPaneWithKeys(store *task.Store, st *storage.Storage, settings func() storage.Settings, styles *Styles, keyCfg *config.KeysConfig) *CalendarPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	if settings == nil {
		settings = func() storage.Settings { return storage.DefaultSettings() }
	}
	ti := textinput.New()
	ti.Placeholder = "Task for this day"
	ti.CharLimit = 200
	ti.Width = 40

	selected := time.Now().Format(storage.DateKeyFormat)
	if view, err := st.LoadCalendarView(); err == nil && view.SelectedDate != "" {
		if storage.ValidateDateKey(view.SelectedDate) == nil {
			selected = view.SelectedDate
		}
	}

	return &CalendarPane{
		store:     store,
		storage:   st,
		settings:  settings,
		styles:    styles,
		selected:  selected,
		focused:   false,
		input:     ti,
		keys:      NewCalendarKeyMap(keyCfg),
		inputKeys: NewInputKeyMap(keyCfg),
	}
}

// SetSize sets the pane dimensions.
func (p *CalendarPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(10, width-4)
}

// SetFocused sets whether this pane is focused.
func (p *CalendarPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsAdding returns whether the add input is open.
func (p *CalendarPane) IsAdding() bool {
	return p.adding
}

// SelectedDate returns the currently selected date key.
func (p *CalendarPane) SelectedDate() string {
	return p.selected
}

// Tasks returns the selected day's projection.
func (p *CalendarPane) Tasks() []storage.Task {
	return p.store.ForDate(p.selected)
}

// SelectedTask returns the task under the cursor, if any.
func (p *CalendarPane) SelectedTask() (storage.Task, bool) {
	tasks := p.Tasks()
	if len(tasks) == 0 || p.cursor < 0 || p.cursor >= len(tasks) {
		return storage.Task{}, false
	}
	return tasks[p.cursor], true
}

func (p *CalendarPane) clampCursor() {
	n := len(p.Tasks())
	if p.cursor >= n {
		p.cursor = max(0, n-1)
	}
}

// shiftDay moves the selection by delta days and persists it. The view
// document is cosmetic state, so a persist failure is ignored.
func (p *CalendarPane) shiftDay(delta int) {
	day, err := time.ParseInLocation(storage.DateKeyFormat, p.selected, time.Local)
	if err != nil {
		day = time.Now()
	}
	p.selected = day.AddDate(0, 0, delta).Format(storage.DateKeyFormat)
	p.cursor = 0
	_ = p.storage.SaveCalendarView(&storage.CalendarView{SelectedDate: p.selected})
}

// submitAdd creates a task for the selected day at the default reminder time.
func (p *CalendarPane) submitAdd() tea.Cmd {
	title := strings.TrimSpace(p.input.Value())
	p.adding = false
	p.input.Reset()
	if title == "" {
		return nil
	}

	_, err := p.store.Create(title, p.selected, p.settings().DefaultReminderTime, task.OriginCalendar)
	if err != nil {
		return errStatusCmd("Add task", err)
	}
	return tasksChangedCmd()
}

// Update handles messages for the calendar pane.
func (p *CalendarPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg.(type) {
	case tasksChangedMsg, settingsChangedMsg, clearedAllMsg:
		p.clampCursor()
		return nil
	}

	if p.adding {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch {
			case key.Matches(msg, p.inputKeys.Confirm):
				return p.submitAdd()

			case key.Matches(msg, p.inputKeys.Cancel):
				p.adding = false
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
		tasks := p.Tasks()
		switch {
		case key.Matches(msg, p.keys.PrevDay):
			p.shiftDay(-1)

		case key.Matches(msg, p.keys.NextDay):
			p.shiftDay(1)

		case key.Matches(msg, p.keys.Down):
			if len(tasks) > 0 {
				p.cursor = min(p.cursor+1, len(tasks)-1)
			}

		case key.Matches(msg, p.keys.Up):
			if len(tasks) > 0 {
				p.cursor = max(p.cursor-1, 0)
			}

		case key.Matches(msg, p.keys.Top):
			p.cursor = 0

		case key.Matches(msg, p.keys.Bottom):
			if len(tasks) > 0 {
				p.cursor = len(tasks) - 1
			}

		case key.Matches(msg, p.keys.Add):
			p.adding = true
			p.input.Focus()
			return textinput.Blink

		case key.Matches(msg, p.keys.Toggle):
			if t, ok := p.SelectedTask(); ok {
				if err := p.store.Toggle(t.ID); err != nil {
					return tea.Batch(errStatusCmd("Toggle task", err), tasksChangedCmd())
				}
				return tasksChangedCmd()
			}

		case key.Matches(msg, p.keys.Delete):
			if t, ok := p.SelectedTask(); ok {
				if err := p.store.Delete(t.ID); err != nil {
					return tea.Batch(errStatusCmd("Delete task", err), tasksChangedCmd())
				}
				return tasksChangedCmd()
			}
		}
	}

	return nil
}

// View renders the calendar pane.
func (p *CalendarPane) View() string {
	var b strings.Builder

	title := p.styles.PaneTitleStyle.Render("📅 CALENDAR")
	b.WriteString(title)
	b.WriteString("\n")

	day, err := time.ParseInLocation(storage.DateKeyFormat, p.selected, time.Local)
	header := p.selected
	if err == nil {
		header = day.Format("Monday, Jan 2")
		if p.selected == time.Now().Format(storage.DateKeyFormat) {
			header += "  (today)"
		}
	}
	b.WriteString("  " + p.styles.FieldActiveStyle.Render("‹ ") +
		p.styles.StatValueStyle.Render(header) +
		p.styles.FieldActiveStyle.Render(" ›"))
	b.WriteString("\n")

	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorMuted).Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	tasks := p.Tasks()

	if len(tasks) == 0 && !p.adding {
		b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorTextMuted).Italic(true).Render("  Nothing scheduled. Press 'a' to add."))
		b.WriteString("\n")
	} else {
		maxItems := p.height - 8
		if maxItems < 3 {
			maxItems = 5
		}

		startIdx := 0
		if p.cursor >= maxItems {
			startIdx = p.cursor - maxItems + 1
		}

		doneCount := 0
		for i, t := range tasks {
			if t.Completed {
				doneCount++
			}
			if i < startIdx || i >= startIdx+maxItems {
				continue
			}
			b.WriteString(p.renderTaskLine(t, i == p.cursor && p.focused && !p.adding))
			b.WriteString("\n")
		}

		b.WriteString("\n")
		stats := p.styles.StatLabelStyle.Render(fmt.Sprintf("%d/%d complete", doneCount, len(tasks)))
		b.WriteString("  " + stats)
		b.WriteString("\n")
	}

	if p.adding {
		b.WriteString("\n")
		prompt := p.styles.InputPromptStyle.Render("+ ")
		b.WriteString(prompt + p.input.View())
		b.WriteString("\n")
	}

	return p.styles.PaneStyle.Width(p.width).Height(p.height).Render(b.String())
}

// renderTaskLine renders one task row for the selected day.
func (p *CalendarPane) renderTaskLine(t storage.Task, selected bool) string {
	checkbox := p.styles.TaskCheckboxPending
	if t.Completed {
		checkbox = p.styles.TaskCheckboxDone
	}

	badge := t.ReminderTime
	badgeWidth := lipgloss.Width(badge)

	fixedWidth := 5 + badgeWidth + 1
	availableWidth := p.width - 4 - fixedWidth
	if availableWidth < 5 {
		availableWidth = 5
	}

	titleText := runewidth.Truncate(t.Title, availableWidth, "..")
	titleWidth := runewidth.StringWidth(titleText)
	padding := max(1, availableWidth-titleWidth)

	if selected {
		line := fmt.Sprintf("%s %s%s%s", checkbox, titleText, strings.Repeat(" ", padding), badge)
		return p.styles.TaskSelectedStyle.Render(" " + line + " ")
	}

	styledTitle := p.styles.TaskPendingStyle.Render(titleText)
	if t.Completed {
		styledTitle = p.styles.TaskDoneStyle.Render(titleText)
	}
	styledBadge := p.styles.ReminderStyle.Render(badge)
	return fmt.Sprintf(" %s %s%s%s", checkbox, styledTitle, strings.Repeat(" ", padding), styledBadge)
}
