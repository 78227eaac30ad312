package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestApp(t *testing.T) (*App, *fixture) {
	t.Helper()
	f := newFixture(t)
	app := NewApp(f.tasks, f.storage, f.manager, f.styles, nil)
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return app, f
}

func TestApp_PaneSwitching(t *testing.T) {
	setupTest(t)
	app, _ := newTestApp(t)

	if app.activePane != PaneTasks {
		t.Fatalf("initial pane = %d, want tasks", app.activePane)
	}

	app.Update(keyType(tea.KeyTab))
	if app.activePane != PaneCalendar {
		t.Errorf("pane after tab = %d, want calendar", app.activePane)
	}

	app.Update(keyRune('4'))
	if app.activePane != PaneNotes {
		t.Errorf("pane after '4' = %d, want notes", app.activePane)
	}
	if !app.notesPane.focused || app.taskPane.focused {
		t.Error("focus flags not updated with pane switch")
	}

	app.Update(keyRune('1'))
	if app.activePane != PaneTasks {
		t.Errorf("pane after '1' = %d, want tasks", app.activePane)
	}
}

func TestApp_HelpOverlay(t *testing.T) {
	setupTest(t)
	app, _ := newTestApp(t)

	app.Update(keyRune('?'))
	if !app.showHelp {
		t.Fatal("help not shown after '?'")
	}
	if !strings.Contains(app.View(), "Keyboard Shortcuts") {
		t.Error("help view missing title")
	}

	app.Update(keyType(tea.KeyEsc))
	if app.showHelp {
		t.Error("help still shown after esc")
	}
}

func TestApp_SettingsOverlay(t *testing.T) {
	setupTest(t)
	app, _ := newTestApp(t)

	app.Update(keyRune('s'))
	if !app.showSettings {
		t.Fatal("settings not shown after 's'")
	}
	if !strings.Contains(app.View(), "Settings") {
		t.Error("settings view missing title")
	}

	app.Update(keyType(tea.KeyEsc))
	if app.showSettings {
		t.Error("settings still shown after esc")
	}
}

func TestApp_ConfirmDelete(t *testing.T) {
	setupTest(t)
	app, f := newTestApp(t)

	f.addTask(t, "Protected", todayKey())

	// Deleting with confirmation on opens the overlay instead of deleting.
	app.Update(keyRune('x'))
	if app.confirmDel == nil {
		t.Fatal("no confirmation overlay after 'x'")
	}
	if len(f.tasks.Active()) != 1 {
		t.Fatal("task deleted before confirmation")
	}
	if !strings.Contains(app.View(), "Delete task?") {
		t.Error("overlay view missing title")
	}

	_, cmd := app.Update(keyRune('y'))
	runCmd(t, app, cmd)
	if len(f.tasks.Active()) != 0 {
		t.Error("task survived confirmed delete")
	}
}

func TestApp_ConfirmDelete_Cancel(t *testing.T) {
	setupTest(t)
	app, f := newTestApp(t)

	f.addTask(t, "Keep me", todayKey())

	app.Update(keyRune('x'))
	app.Update(keyRune('n'))

	if app.confirmDel != nil {
		t.Error("overlay still open after cancel")
	}
	if len(f.tasks.Active()) != 1 {
		t.Error("task deleted despite cancel")
	}
}

func TestApp_DeleteSkipsConfirmWhenDisabled(t *testing.T) {
	setupTest(t)
	app, f := newTestApp(t)

	if err := f.manager.Update("confirmDelete", false); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	f.addTask(t, "Fast path", todayKey())

	_, cmd := app.Update(keyRune('x'))
	runCmd(t, app, cmd)

	if app.confirmDel != nil {
		t.Error("overlay shown despite confirmDelete off")
	}
	if len(f.tasks.Active()) != 0 {
		t.Error("task survived unconfirmed delete")
	}
}

func TestApp_ClearAllFlow(t *testing.T) {
	setupTest(t)
	app, f := newTestApp(t)

	f.addTask(t, "Doomed", todayKey())

	_, cmd := app.Update(requestClearAllMsg{})
	if app.confirmDel == nil {
		t.Fatal("clear-all did not open confirmation")
	}
	runCmd(t, app, cmd)

	_, cmd = app.Update(keyType(tea.KeyEnter))
	runCmd(t, app, cmd)

	if len(f.tasks.Active()) != 0 || len(f.tasks.Completed()) != 0 {
		t.Error("clear all left tasks behind")
	}
}

func TestApp_TitleBarCounter(t *testing.T) {
	setupTest(t)
	app, f := newTestApp(t)

	f.addTask(t, "One", todayKey())
	f.addTask(t, "Two", todayKey())

	bar := app.renderTitleBar()
	if !strings.Contains(bar, "2 remaining") {
		t.Errorf("title bar missing counter: %q", bar)
	}

	if err := f.manager.Update("showTaskCounter", false); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	bar = app.renderTitleBar()
	if strings.Contains(bar, "remaining") {
		t.Errorf("title bar shows counter despite setting off: %q", bar)
	}
}

func TestApp_StatusLifecycle(t *testing.T) {
	setupTest(t)
	app, _ := newTestApp(t)

	app.Update(statusMsg{text: "saved", isErr: false})
	if app.status != "saved" {
		t.Fatalf("status = %q, want saved", app.status)
	}
	if !strings.Contains(app.renderHelpBar(), "saved") {
		t.Error("help bar not showing status")
	}
}

func TestApp_Quit(t *testing.T) {
	setupTest(t)
	app, _ := newTestApp(t)

	_, cmd := app.Update(keyRune('q'))
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if !app.quitting {
		t.Error("quitting flag not set")
	}
	if !strings.Contains(app.View(), "See you later") {
		t.Error("goodbye view missing")
	}
}

func TestApp_InputModeBlocksGlobalKeys(t *testing.T) {
	setupTest(t)
	app, _ := newTestApp(t)

	app.Update(keyRune('a'))
	if !app.taskPane.IsAdding() {
		t.Fatal("task pane not in add mode")
	}

	// 'q' should type into the title, not quit.
	app.Update(keyRune('q'))
	if app.quitting {
		t.Error("quit fired while typing")
	}

	if got := app.taskPane.input.Value(); got != "q" {
		t.Errorf("input value = %q, want q", got)
	}
}

func TestApp_ViewContainsTabsAndPane(t *testing.T) {
	setupTest(t)
	app, f := newTestApp(t)

	f.addTask(t, "Visible task", todayKey())

	view := app.View()
	for _, want := range []string{"[Tasks]", "Calendar", "Done", "Notes", "Visible task", "taskpad"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
