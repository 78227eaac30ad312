package settings

import (
	"os"
	"path/filepath"
	"testing"

	"taskpad/internal/storage"
)

type recordingChannel struct {
	calls []channelConfig
}

type channelConfig struct {
	sound     bool
	vibration bool
}

func (r *recordingChannel) Configure(sound, vibration bool) {
	r.calls = append(r.calls, channelConfig{sound: sound, vibration: vibration})
}

func newTestManager(t *testing.T) (*Manager, *recordingChannel, *storage.Storage) {
	t.Helper()
	st, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	ch := &recordingChannel{}
	m, err := NewManager(st, ch)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return m, ch, st
}

func TestNewManager_PushesInitialChannelConfig(t *testing.T) {
	_, ch, _ := newTestManager(t)

	if len(ch.calls) != 1 {
		t.Fatalf("len(Configure calls) = %d, want 1", len(ch.calls))
	}
	if !ch.calls[0].sound || !ch.calls[0].vibration {
		t.Errorf("initial channel config = %+v, want defaults (true, true)", ch.calls[0])
	}
}

func TestNewManager_CorruptDocumentDegradesToDefaults(t *testing.T) {
	dir := t.TempDir()
	st, err := storage.New(dir)
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, storage.FileSettings), []byte("nope"), 0600); err != nil {
		t.Fatalf("corrupt settings: %v", err)
	}
	_ = os.Remove(filepath.Join(dir, storage.FileSettings) + ".bak")

	m, err := NewManager(st, &recordingChannel{})
	if err == nil {
		t.Fatal("NewManager() expected recovery error")
	}
	if m.Current() != storage.DefaultSettings() {
		t.Errorf("Current() = %+v, want defaults", m.Current())
	}
}

func TestUpdate_PersistsFullDocument(t *testing.T) {
	m, _, st := newTestManager(t)

	if err := m.Update(KeyNotifications, false); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if err := m.Update(KeyDefaultReminderTime, "18:30"); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	loaded, err := st.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if loaded.Notifications {
		t.Error("Notifications = true on disk, want false")
	}
	if loaded.DefaultReminderTime != "18:30" {
		t.Errorf("DefaultReminderTime = %q, want %q", loaded.DefaultReminderTime, "18:30")
	}
	// Untouched fields survive.
	if !loaded.ConfirmDelete {
		t.Error("ConfirmDelete lost its default")
	}
}

func TestUpdate_SoundAndVibrationReconfigureChannel(t *testing.T) {
	m, ch, _ := newTestManager(t)
	initial := len(ch.calls)

	if err := m.Update(KeySoundEnabled, false); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(ch.calls) != initial+1 {
		t.Fatalf("Configure not called for soundEnabled")
	}
	last := ch.calls[len(ch.calls)-1]
	if last.sound || !last.vibration {
		t.Errorf("channel config = %+v, want sound off, vibration on", last)
	}

	if err := m.Update(KeyVibrationEnabled, false); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	last = ch.calls[len(ch.calls)-1]
	if last.sound || last.vibration {
		t.Errorf("channel config = %+v, want both off", last)
	}

	// Other keys leave the channel alone.
	before := len(ch.calls)
	if err := m.Update(KeyDarkMode, false); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(ch.calls) != before {
		t.Error("Configure called for a non-channel setting")
	}
}

func TestUpdate_Validation(t *testing.T) {
	m, _, _ := newTestManager(t)

	tests := []struct {
		name  string
		key   string
		value any
	}{
		{name: "unknown key", key: "volume", value: true},
		{name: "bool key with string value", key: KeyNotifications, value: "true"},
		{name: "bad reminder time", key: KeyDefaultReminderTime, value: "9am"},
		{name: "bad font size", key: KeyFontSize, value: "huge"},
		{name: "bad sorting mode", key: KeyTaskSorting, value: "newest"},
		{name: "bad week start", key: KeyWeekStartsOn, value: "friday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := m.Current()
			if err := m.Update(tt.key, tt.value); err == nil {
				t.Fatal("Update() expected validation error")
			}
			if m.Current() != before {
				t.Error("rejected update mutated the settings")
			}
		})
	}
}

func TestUpdate_EnumeratedValues(t *testing.T) {
	m, _, _ := newTestManager(t)

	if err := m.Update(KeyFontSize, storage.FontSizeLarge); err != nil {
		t.Fatalf("Update(fontSize) error = %v", err)
	}
	if err := m.Update(KeyTaskSorting, storage.SortByAlphabetical); err != nil {
		t.Fatalf("Update(taskSorting) error = %v", err)
	}
	if err := m.Update(KeyWeekStartsOn, storage.WeekStartMonday); err != nil {
		t.Fatalf("Update(weekStartsOn) error = %v", err)
	}

	cur := m.Current()
	if cur.FontSize != storage.FontSizeLarge || cur.TaskSorting != storage.SortByAlphabetical ||
		cur.WeekStartsOn != storage.WeekStartMonday {
		t.Errorf("Current() = %+v", cur)
	}
}

func TestReset(t *testing.T) {
	m, ch, st := newTestManager(t)

	m.Update(KeySoundEnabled, false)
	m.Update(KeyTaskSorting, storage.SortByAlphabetical)

	if err := m.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	if m.Current() != storage.DefaultSettings() {
		t.Errorf("Current() = %+v, want defaults", m.Current())
	}

	last := ch.calls[len(ch.calls)-1]
	if !last.sound || !last.vibration {
		t.Errorf("channel config after reset = %+v, want defaults", last)
	}

	loaded, _ := st.LoadSettings()
	if *loaded != storage.DefaultSettings() {
		t.Errorf("persisted settings = %+v, want defaults", *loaded)
	}
}
