package storage

import "time"

// Task represents a single to-do item. The JSON field names and the lexical
// formats of DateCreated (YYYY-MM-DD) and ReminderTime (HH:MM, 24-hour) are
// part of the on-disk contract: they are used for display and as the sole
// source for computing notification trigger instants.
type Task struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Completed      bool       `json:"completed"`
	DateCreated    string     `json:"dateCreated"`
	ReminderTime   string     `json:"reminderTime"`
	NotificationID string     `json:"notificationId,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`

	// Provenance: which surface created the task. Decides whether the task
	// belongs on the main list in addition to its calendar day.
	FromCalendar   bool `json:"fromCalendar,omitempty"`
	FromHomeScreen bool `json:"fromHomeScreen,omitempty"`
}

// TaskStore holds the main-list view of tasks.
type TaskStore struct {
	Tasks []Task `json:"tasks"`
}

// CompletedStore holds the append-only history of completed tasks.
type CompletedStore struct {
	Tasks []Task `json:"tasks"`
}

// CalendarStore holds tasks grouped by their YYYY-MM-DD date key. Completed
// tasks stay in their day, marked in place. A key never maps to an empty
// sequence.
type CalendarStore struct {
	Days map[string][]Task `json:"days"`
}

// CalendarView mirrors the calendar surface's transient selection so it
// survives restarts. Used only by the calendar pane.
type CalendarView struct {
	SelectedDate string `json:"selectedDate"`
}

// Note is a free-form text note, unrelated to tasks.
type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteStore holds all notes.
type NoteStore struct {
	Notes []Note `json:"notes"`
}

// Settings is the flat application settings object. Field names mirror the
// persisted JSON keys.
type Settings struct {
	Notifications       bool   `json:"notifications"`
	SoundEnabled        bool   `json:"soundEnabled"`
	VibrationEnabled    bool   `json:"vibrationEnabled"`
	DefaultReminderTime string `json:"defaultReminderTime"`
	AutoDeleteCompleted bool   `json:"autoDeleteCompleted"`
	DarkMode            bool   `json:"darkMode"`
	FontSize            string `json:"fontSize"`
	TaskSorting         string `json:"taskSorting"`
	ShowTaskCounter     bool   `json:"showTaskCounter"`
	ConfirmDelete       bool   `json:"confirmDelete"`
	WeekStartsOn        string `json:"weekStartsOn"`
}

// Recognized values for the enumerated settings.
const (
	FontSizeSmall  = "small"
	FontSizeMedium = "medium"
	FontSizeLarge  = "large"

	SortByDate         = "date"
	SortByAlphabetical = "alphabetical"
	SortByPriority     = "priority"

	WeekStartSunday = "sunday"
	WeekStartMonday = "monday"
)

// DefaultSettings returns the settings used until the user changes anything.
func DefaultSettings() Settings {
	return Settings{
		Notifications:       true,
		SoundEnabled:        true,
		VibrationEnabled:    true,
		DefaultReminderTime: "09:00",
		AutoDeleteCompleted: false,
		DarkMode:            true,
		FontSize:            FontSizeMedium,
		TaskSorting:         SortByDate,
		ShowTaskCounter:     true,
		ConfirmDelete:       true,
		WeekStartsOn:        WeekStartSunday,
	}
}
