// Package ui provides terminal user interface components for the taskpad app.
package ui

import (
	"fmt"
	"strings"

	"taskpad/internal/config"
	"taskpad/internal/settings"
	"taskpad/internal/storage"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// settingKind classifies how a settings row is edited.
type settingKind int

const (
	kindBool settingKind = iota
	kindEnum
	kindClock
	kindAction
)

// settingRow is one line of the settings overlay.
type settingRow struct {
	key     string
	label   string
	kind    settingKind
	options []string
}

// settingsRows defines the overlay contents, in display order.
func settingsRows() []settingRow {
	return []settingRow{
		{key: settings.KeyNotifications, label: "Notifications", kind: kindBool},
		{key: settings.KeySoundEnabled, label: "Sound", kind: kindBool},
		{key: settings.KeyVibrationEnabled, label: "Vibration", kind: kindBool},
		{key: settings.KeyDefaultReminderTime, label: "Default reminder time", kind: kindClock},
		{key: settings.KeyAutoDeleteCompleted, label: "Auto-delete completed", kind: kindBool},
		{key: settings.KeyDarkMode, label: "Dark mode", kind: kindBool},
		{key: settings.KeyFontSize, label: "Font size", kind: kindEnum,
			options: []string{storage.FontSizeSmall, storage.FontSizeMedium, storage.FontSizeLarge}},
		{key: settings.KeyTaskSorting, label: "Task sorting", kind: kindEnum,
			options: []string{storage.SortByDate, storage.SortByAlphabetical, storage.SortByPriority}},
		{key: settings.KeyShowTaskCounter, label: "Show task counter", kind: kindBool},
		{key: settings.KeyConfirmDelete, label: "Confirm deletions", kind: kindBool},
		{key: settings.KeyWeekStartsOn, label: "Week starts on", kind: kindEnum,
			options: []string{storage.WeekStartSunday, storage.WeekStartMonday}},
		{key: "reset", label: "Reset to defaults", kind: kindAction},
		{key: "clearAll", label: "Clear all task data", kind: kindAction},
	}
}

// SettingsPane is the settings overlay. Every edit goes through the settings
// manager, which validates, persists, and keeps the notification channel in
// sync.
type SettingsPane struct {
	manager *settings.Manager
	styles  *Styles

	rows   []settingRow
	cursor int
	width  int
	height int

	keys      ItemKeyMap
	inputKeys InputKeyMap
}

// NewSettingsPane creates the settings overlay.
func NewSettingsPane(manager *settings.Manager, styles *Styles) *SettingsPane {
	return NewSettingsPaneWithKeys(manager, styles, &config.KeysConfig{})
}

// NewSettingsPaneWithKeys creates the settings overlay with custom key bindings.
func NewSettingsPaneWithKeys(manager *settings.Manager, styles *Styles, keyCfg *config.KeysConfig) *SettingsPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	return &SettingsPane{
		manager:   manager,
		styles:    styles,
		rows:      settingsRows(),
		keys:      NewItemKeyMap(keyCfg),
		inputKeys: NewInputKeyMap(keyCfg),
	}
}

// SetSize sets the overlay dimensions.
func (p *SettingsPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Update handles messages for the settings overlay.
func (p *SettingsPane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Down):
			p.cursor = min(p.cursor+1, len(p.rows)-1)

		case key.Matches(msg, p.keys.Up):
			p.cursor = max(p.cursor-1, 0)

		case key.Matches(msg, p.keys.Top):
			p.cursor = 0

		case key.Matches(msg, p.keys.Bottom):
			p.cursor = len(p.rows) - 1

		case key.Matches(msg, p.keys.Toggle):
			return p.apply(1)

		default:
			switch msg.String() {
			case "left", "h":
				return p.apply(-1)
			case "right", "l":
				return p.apply(1)
			case "r":
				if err := p.manager.Reset(); err != nil {
					return tea.Batch(errStatusCmd("Reset settings", err), settingsChangedCmd())
				}
				return tea.Batch(statusCmd("Settings reset", false), settingsChangedCmd())
			}
		}
	}
	return nil
}

// apply edits the row under the cursor. delta picks the cycle direction for
// enum and clock rows.
func (p *SettingsPane) apply(delta int) tea.Cmd {
	row := p.rows[p.cursor]
	current := p.manager.Current()

	switch row.kind {
	case kindAction:
		switch row.key {
		case "reset":
			if err := p.manager.Reset(); err != nil {
				return tea.Batch(errStatusCmd("Reset settings", err), settingsChangedCmd())
			}
			return tea.Batch(statusCmd("Settings reset", false), settingsChangedCmd())
		case "clearAll":
			return func() tea.Msg { return requestClearAllMsg{} }
		}
		return nil

	case kindBool:
		next := !p.boolValue(current, row.key)
		if err := p.manager.Update(row.key, next); err != nil {
			return errStatusCmd("Update setting", err)
		}
		return settingsChangedCmd()

	case kindEnum:
		value := p.stringValue(current, row.key)
		idx := 0
		for i, o := range row.options {
			if o == value {
				idx = i
				break
			}
		}
		n := len(row.options)
		next := row.options[(idx+delta+n)%n]
		if err := p.manager.Update(row.key, next); err != nil {
			return errStatusCmd("Update setting", err)
		}
		return settingsChangedCmd()

	case kindClock:
		options := reminderTimeOptions()
		idx := indexOfTime(options, current.DefaultReminderTime)
		n := len(options)
		next := options[(idx+delta+n)%n]
		if err := p.manager.Update(row.key, next); err != nil {
			return errStatusCmd("Update setting", err)
		}
		return settingsChangedCmd()
	}

	return nil
}

func (p *SettingsPane) boolValue(s storage.Settings, key string) bool {
	switch key {
	case settings.KeyNotifications:
		return s.Notifications
	case settings.KeySoundEnabled:
		return s.SoundEnabled
	case settings.KeyVibrationEnabled:
		return s.VibrationEnabled
	case settings.KeyAutoDeleteCompleted:
		return s.AutoDeleteCompleted
	case settings.KeyDarkMode:
		return s.DarkMode
	case settings.KeyShowTaskCounter:
		return s.ShowTaskCounter
	case settings.KeyConfirmDelete:
		return s.ConfirmDelete
	}
	return false
}

func (p *SettingsPane) stringValue(s storage.Settings, key string) string {
	switch key {
	case settings.KeyDefaultReminderTime:
		return s.DefaultReminderTime
	case settings.KeyFontSize:
		return s.FontSize
	case settings.KeyTaskSorting:
		return s.TaskSorting
	case settings.KeyWeekStartsOn:
		return s.WeekStartsOn
	}
	return ""
}

// View renders the settings overlay centered in the terminal.
func (p *SettingsPane) View() string {
	overlayWidth := 54
	if p.width > 0 {
		overlayWidth = min(54, max(30, p.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(p.styles.ColorPrimary).
		MarginBottom(1)

	mutedStyle := lipgloss.NewStyle().
		Foreground(p.styles.ColorTextMuted).
		Italic(true)

	current := p.manager.Current()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n\n")

	labelWidth := 24
	for i, row := range p.rows {
		marker := "  "
		if i == p.cursor {
			marker = p.styles.FieldActiveStyle.Render("› ")
		}

		label := p.styles.SettingKeyStyle.Render(fmt.Sprintf("%-*s", labelWidth, row.label))
		value := p.renderValue(current, row)

		b.WriteString(marker + label + value)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("space toggles · h/l cycles · r resets · esc closes"))

	content := overlayStyle.Render(b.String())
	return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, content)
}

// renderValue renders a row's current value.
func (p *SettingsPane) renderValue(current storage.Settings, row settingRow) string {
	switch row.kind {
	case kindBool:
		if p.boolValue(current, row.key) {
			return p.styles.SettingOnStyle.Render("on")
		}
		return p.styles.SettingOffStyle.Render("off")
	case kindEnum, kindClock:
		return p.styles.SettingValueStyle.Render(p.stringValue(current, row.key))
	case kindAction:
		return p.styles.SettingValueStyle.Render("↵")
	}
	return ""
}
