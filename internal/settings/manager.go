// Package settings owns the persisted settings object. Every mutation goes
// through Manager.Update, which is also the one place a settings change is
// pushed into the notification channel.
package settings

import (
	"fmt"

	"taskpad/internal/storage"
)

// Setting keys, matching the persisted JSON field names.
const (
	KeyNotifications       = "notifications"
	KeySoundEnabled        = "soundEnabled"
	KeyVibrationEnabled    = "vibrationEnabled"
	KeyDefaultReminderTime = "defaultReminderTime"
	KeyAutoDeleteCompleted = "autoDeleteCompleted"
	KeyDarkMode            = "darkMode"
	KeyFontSize            = "fontSize"
	KeyTaskSorting         = "taskSorting"
	KeyShowTaskCounter     = "showTaskCounter"
	KeyConfirmDelete       = "confirmDelete"
	KeyWeekStartsOn        = "weekStartsOn"
)

// Channel is the slice of the reminder scheduler the manager reconfigures.
type Channel interface {
	Configure(sound, vibration bool)
}

// Manager holds the current settings and keeps the scheduler's delivery
// channel in sync with the sound and vibration toggles.
type Manager struct {
	storage *storage.Storage
	channel Channel
	current storage.Settings
}

// NewManager loads settings from disk (a corrupt document degrades to
// defaults) and pushes the initial channel configuration. The returned
// error reports recovery; the manager is usable either way.
func NewManager(st *storage.Storage, channel Channel) (*Manager, error) {
	loaded, err := st.LoadSettings()

	m := &Manager{
		storage: st,
		channel: channel,
		current: *loaded,
	}
	if channel != nil {
		channel.Configure(m.current.SoundEnabled, m.current.VibrationEnabled)
	}
	return m, err
}

// Current returns a snapshot of the settings object.
func (m *Manager) Current() storage.Settings {
	return m.current
}

// Update replaces one field, persists the full document, and for the sound
// and vibration toggles synchronously reconfigures the notification channel.
// The in-memory change and the channel reconfiguration happen even when the
// persist fails; the error reports the persistence problem only.
func (m *Manager) Update(key string, value any) error {
	next := m.current

	switch key {
	case KeyNotifications:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("setting %s requires a bool", key)
		}
		next.Notifications = b
	case KeySoundEnabled:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("setting %s requires a bool", key)
		}
		next.SoundEnabled = b
	case KeyVibrationEnabled:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("setting %s requires a bool", key)
		}
		next.VibrationEnabled = b
	case KeyAutoDeleteCompleted:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("setting %s requires a bool", key)
		}
		next.AutoDeleteCompleted = b
	case KeyDarkMode:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("setting %s requires a bool", key)
		}
		next.DarkMode = b
	case KeyShowTaskCounter:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("setting %s requires a bool", key)
		}
		next.ShowTaskCounter = b
	case KeyConfirmDelete:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("setting %s requires a bool", key)
		}
		next.ConfirmDelete = b
	case KeyDefaultReminderTime:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("setting %s requires a string", key)
		}
		if err := storage.ValidateClock(s); err != nil {
			return err
		}
		next.DefaultReminderTime = s
	case KeyFontSize:
		s, ok := value.(string)
		if !ok || !oneOf(s, storage.FontSizeSmall, storage.FontSizeMedium, storage.FontSizeLarge) {
			return fmt.Errorf("setting %s must be small, medium, or large", key)
		}
		next.FontSize = s
	case KeyTaskSorting:
		s, ok := value.(string)
		if !ok || !oneOf(s, storage.SortByDate, storage.SortByAlphabetical, storage.SortByPriority) {
			return fmt.Errorf("setting %s must be date, alphabetical, or priority", key)
		}
		next.TaskSorting = s
	case KeyWeekStartsOn:
		s, ok := value.(string)
		if !ok || !oneOf(s, storage.WeekStartSunday, storage.WeekStartMonday) {
			return fmt.Errorf("setting %s must be sunday or monday", key)
		}
		next.WeekStartsOn = s
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	m.current = next
	m.syncChannel(key)

	return m.storage.SaveSettings(&m.current)
}

// Reset restores the defaults and persists them.
func (m *Manager) Reset() error {
	m.current = storage.DefaultSettings()
	if m.channel != nil {
		m.channel.Configure(m.current.SoundEnabled, m.current.VibrationEnabled)
	}
	return m.storage.SaveSettings(&m.current)
}

func (m *Manager) syncChannel(key string) {
	if m.channel == nil {
		return
	}
	if key == KeySoundEnabled || key == KeyVibrationEnabled {
		m.channel.Configure(m.current.SoundEnabled, m.current.VibrationEnabled)
	}
}

func oneOf(s string, options ...string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}
