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

// addField identifies which field of the add form has focus.
type addField int

const (
	fieldTitle addField = iota
	fieldDate
	fieldTime
)

// addDateSpan is how many days ahead the date selector offers.
const addDateSpan = 8

// TaskPane shows the main list: incomplete tasks that belong to today's
// surface. The list itself is a projection read from the task store on every
// render, so the pane never holds a stale copy.
type TaskPane struct {
	store    *task.Store
	settings func() storage.Settings
	styles   *Styles

	cursor  int
	focused bool
	width   int
	height  int

	adding  bool
	input   textinput.Model
	field   addField
	dateIdx int
	timeIdx int
	times   []string

	keys      ItemKeyMap
	inputKeys InputKeyMap
}

// NewTaskPane creates a new task pane.
func NewTaskPane(store *task.Store, settings func() storage.Settings, styles *Styles) *TaskPane {
	return NewTaskPaneWithKeys(store, settings, styles, &config.KeysConfig{})
}

// NewTaskPaneWithKeys creates a new task pane with custom key bindings.
func NewTaskPaneWithKeys(store *task.Store, settings func() storage.Settings, styles *Styles, keyCfg *config.KeysConfig) *TaskPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	if settings == nil {
		settings = func() storage.Settings { return storage.DefaultSettings() }
	}
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 200
	ti.Width = 40

	return &TaskPane{
		store:     store,
		settings:  settings,
		styles:    styles,
		focused:   true,
		input:     ti,
		times:     reminderTimeOptions(),
		keys:      NewItemKeyMap(keyCfg),
		inputKeys: NewInputKeyMap(keyCfg),
	}
}

// reminderTimeOptions returns the selectable reminder clocks, half-hour steps
// from 06:00 through 22:00.
func reminderTimeOptions() []string {
	var out []string
	for h := 6; h <= 22; h++ {
		out = append(out, fmt.Sprintf("%02d:00", h))
		if h < 22 {
			out = append(out, fmt.Sprintf("%02d:30", h))
		}
	}
	return out
}

// SetSize sets the pane dimensions.
func (p *TaskPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(10, width-4)
}

// SetFocused sets whether this pane is focused.
func (p *TaskPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsAdding returns whether the add form is open.
func (p *TaskPane) IsAdding() bool {
	return p.adding
}

// Tasks returns the current main-list projection.
func (p *TaskPane) Tasks() []storage.Task {
	return p.store.Active()
}

// SelectedTask returns the task under the cursor, if any.
func (p *TaskPane) SelectedTask() (storage.Task, bool) {
	tasks := p.Tasks()
	if len(tasks) == 0 || p.cursor < 0 || p.cursor >= len(tasks) {
		return storage.Task{}, false
	}
	return tasks[p.cursor], true
}

// clampCursor keeps the cursor inside the current projection.
func (p *TaskPane) clampCursor() {
	n := len(p.Tasks())
	if p.cursor >= n {
		p.cursor = max(0, n-1)
	}
}

// openAdd resets and opens the add form with the default reminder time.
func (p *TaskPane) openAdd() tea.Cmd {
	p.adding = true
	p.field = fieldTitle
	p.dateIdx = 0
	p.timeIdx = indexOfTime(p.times, p.settings().DefaultReminderTime)
	p.input.Reset()
	p.input.Focus()
	return textinput.Blink
}

// indexOfTime returns the index of clock in options, or the 09:00 slot.
func indexOfTime(options []string, clock string) int {
	for i, o := range options {
		if o == clock {
			return i
		}
	}
	for i, o := range options {
		if o == "09:00" {
			return i
		}
	}
	return 0
}

// submitAdd creates the task from the form state.
func (p *TaskPane) submitAdd() tea.Cmd {
	title := strings.TrimSpace(p.input.Value())
	p.adding = false
	p.input.Reset()
	if title == "" {
		return nil
	}

	dateKey := time.Now().AddDate(0, 0, p.dateIdx).Format(storage.DateKeyFormat)
	_, err := p.store.Create(title, dateKey, p.times[p.timeIdx], task.OriginHome)
	if err != nil {
		return errStatusCmd("Add task", err)
	}
	return tasksChangedCmd()
}

// Update handles messages for the task pane.
func (p *TaskPane) Update(msg tea.Msg) tea.Cmd {
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

			case key.Matches(msg, p.inputKeys.NextField):
				p.field = (p.field + 1) % 3
				if p.field == fieldTitle {
					p.input.Focus()
					return textinput.Blink
				}
				p.input.Blur()
				return nil
			}

			// Left/right cycle the focused selector field.
			if p.field != fieldTitle {
				switch msg.String() {
				case "left", "h":
					p.cycleField(-1)
					return nil
				case "right", "l", " ":
					p.cycleField(1)
					return nil
				}
			}
		}

		if p.field == fieldTitle {
			p.input, cmd = p.input.Update(msg)
			return cmd
		}
		return nil
	}

	if !p.focused {
		return nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		tasks := p.Tasks()
		switch {
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
			return p.openAdd()

		case key.Matches(msg, p.keys.Toggle):
			if t, ok := p.SelectedTask(); ok {
				if err := p.store.Complete(t.ID); err != nil {
					return tea.Batch(errStatusCmd("Complete task", err), tasksChangedCmd())
				}
				return tasksChangedCmd()
			}

		case key.Matches(msg, p.keys.Delete):
			// Deletion goes through the app so the confirm overlay can
			// intercept it; reaching here means confirmation is off.
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

// cycleField steps the focused selector by delta.
func (p *TaskPane) cycleField(delta int) {
	switch p.field {
	case fieldDate:
		p.dateIdx = (p.dateIdx + delta + addDateSpan) % addDateSpan
	case fieldTime:
		n := len(p.times)
		p.timeIdx = (p.timeIdx + delta + n) % n
	}
}

// dateLabel renders a date selector option.
func dateLabel(offset int) string {
	switch offset {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return time.Now().AddDate(0, 0, offset).Format("Mon Jan 2")
	}
}

// View renders the task pane.
func (p *TaskPane) View() string {
	var b strings.Builder

	title := p.styles.PaneTitleStyle.Render("☑ TASKS")
	b.WriteString(title)
	b.WriteString("\n")

	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorMuted).Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	tasks := p.Tasks()

	if len(tasks) == 0 && !p.adding {
		b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorTextMuted).Italic(true).Render("  No tasks for today. Press 'a' to add one."))
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

		for i, t := range tasks {
			if i < startIdx || i >= startIdx+maxItems {
				continue
			}
			b.WriteString(p.renderTaskLine(t, i == p.cursor && p.focused && !p.adding))
			b.WriteString("\n")
		}

		b.WriteString("\n")
		stats := p.styles.StatLabelStyle.Render(fmt.Sprintf("%d remaining", len(tasks)))
		b.WriteString("  " + stats)
		b.WriteString("\n")
	}

	if p.adding {
		b.WriteString("\n")
		b.WriteString(p.renderAddForm())
	}

	return p.styles.PaneStyle.Width(p.width).Height(p.height).Render(b.String())
}

// renderTaskLine renders one task row with checkbox, title, and reminder.
func (p *TaskPane) renderTaskLine(t storage.Task, selected bool) string {
	checkbox := p.styles.TaskCheckboxPending
	if t.Completed {
		checkbox = p.styles.TaskCheckboxDone
	}

	badge := t.ReminderTime
	if t.DateCreated != time.Now().Format(storage.DateKeyFormat) {
		badge = t.DateCreated + " " + t.ReminderTime
	}
	badgeWidth := lipgloss.Width(badge)

	// Layout: [space][checkbox][space][title][space][badge]
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

// renderAddForm renders the three-field add form.
func (p *TaskPane) renderAddForm() string {
	var b strings.Builder

	prompt := p.styles.InputPromptStyle.Render("+ ")
	b.WriteString(prompt + p.input.View())
	b.WriteString("\n")

	dateField := dateLabel(p.dateIdx)
	timeField := p.times[p.timeIdx]

	dateStyled := p.styles.InputLabelStyle.Render("date: ") + p.fieldValue(dateField, p.field == fieldDate)
	timeStyled := p.styles.InputLabelStyle.Render("time: ") + p.fieldValue(timeField, p.field == fieldTime)

	b.WriteString("  " + dateStyled + "   " + timeStyled)
	return b.String()
}

// fieldValue highlights a selector value when it has focus.
func (p *TaskPane) fieldValue(value string, active bool) string {
	if active {
		return p.styles.FieldActiveStyle.Render("‹" + value + "›")
	}
	return p.styles.SettingValueStyle.Render(value)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
