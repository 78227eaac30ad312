package ui

import (
	"strings"
	"testing"

	"taskpad/internal/storage"
)

// cursorTo moves the settings cursor to the row with the given key.
func cursorTo(t *testing.T, pane *SettingsPane, key string) {
	t.Helper()
	for i, row := range pane.rows {
		if row.key == key {
			pane.cursor = i
			return
		}
	}
	t.Fatalf("no settings row %q", key)
}

func TestSettingsPane_ToggleBool(t *testing.T) {
	setupTest(t)
	f := newFixture(t)

	pane := NewSettingsPane(f.manager, f.styles)
	cursorTo(t, pane, "notifications")

	if !f.manager.Current().Notifications {
		t.Fatal("notifications not on by default")
	}

	pane.Update(keyRune(' '))
	if f.manager.Current().Notifications {
		t.Error("toggle did not turn notifications off")
	}

	// The full document was persisted.
	persisted, err := f.storage.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if persisted.Notifications {
		t.Error("persisted settings still have notifications on")
	}
}

func TestSettingsPane_CycleEnum(t *testing.T) {
	setupTest(t)
	f := newFixture(t)

	pane := NewSettingsPane(f.manager, f.styles)
	cursorTo(t, pane, "taskSorting")

	pane.Update(keyRune('l'))
	if got := f.manager.Current().TaskSorting; got != storage.SortByAlphabetical {
		t.Errorf("TaskSorting after cycle = %q, want alphabetical", got)
	}

	pane.Update(keyRune('h'))
	if got := f.manager.Current().TaskSorting; got != storage.SortByDate {
		t.Errorf("TaskSorting after cycle back = %q, want date", got)
	}
}

func TestSettingsPane_CycleClock(t *testing.T) {
	setupTest(t)
	f := newFixture(t)

	pane := NewSettingsPane(f.manager, f.styles)
	cursorTo(t, pane, "defaultReminderTime")

	pane.Update(keyRune('l'))
	if got := f.manager.Current().DefaultReminderTime; got != "09:30" {
		t.Errorf("DefaultReminderTime = %q, want 09:30", got)
	}
}

func TestSettingsPane_Reset(t *testing.T) {
	setupTest(t)
	f := newFixture(t)

	if err := f.manager.Update("darkMode", false); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	pane := NewSettingsPane(f.manager, f.styles)
	pane.Update(keyRune('r'))

	if !f.manager.Current().DarkMode {
		t.Error("reset did not restore darkMode default")
	}
}

func TestSettingsPane_ClearAllRequestsConfirmation(t *testing.T) {
	setupTest(t)
	f := newFixture(t)

	pane := NewSettingsPane(f.manager, f.styles)
	cursorTo(t, pane, "clearAll")

	cmd := pane.Update(keyRune(' '))
	if cmd == nil {
		t.Fatal("clearAll row returned no command")
	}
	if _, ok := cmd().(requestClearAllMsg); !ok {
		t.Error("clearAll row did not request confirmation")
	}
}

func TestSettingsPaneView(t *testing.T) {
	setupTest(t)
	f := newFixture(t)

	pane := NewSettingsPane(f.manager, f.styles)
	pane.SetSize(80, 30)

	output := pane.View()
	for _, want := range []string{"Settings", "Notifications", "Default reminder time", "Week starts on", "Clear all task data"} {
		if !strings.Contains(output, want) {
			t.Errorf("view missing %q:\n%s", want, output)
		}
	}
	if !strings.Contains(output, "09:00") {
		t.Errorf("view missing default reminder value:\n%s", output)
	}
}
