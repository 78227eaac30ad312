package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestTaskPaneView_Empty(t *testing.T) {
	setupTest(t)
	f := newFixture(t)

	pane := NewTaskPane(f.tasks, nil, f.styles)
	pane.SetSize(50, 20)
	pane.SetFocused(true)

	output := pane.View()
	if !strings.Contains(output, "No tasks for today") {
		t.Errorf("empty pane missing placeholder:\n%s", output)
	}
}

func TestTaskPaneView_ShowsTasks(t *testing.T) {
	setupTest(t)
	f := newFixture(t)

	f.addTask(t, "Buy groceries", todayKey())
	f.addTask(t, "Write tests", todayKey())

	pane := NewTaskPane(f.tasks, nil, f.styles)
	pane.SetSize(50, 20)
	pane.SetFocused(true)

	output := pane.View()
	if !strings.Contains(output, "Buy groceries") || !strings.Contains(output, "Write tests") {
		t.Errorf("pane missing tasks:\n%s", output)
	}
	if !strings.Contains(output, "2 remaining") {
		t.Errorf("pane missing remaining count:\n%s", output)
	}
}

func TestTaskPane_AddFlow(t *testing.T) {
	setupTest(t)
	f := newFixture(t)

	pane := NewTaskPane(f.tasks, nil, f.styles)
	pane.SetSize(50, 20)
	pane.SetFocused(true)

	pane.Update(keyRune('a'))
	if !pane.IsAdding() {
		t.Fatal("pane not in add mode after 'a'")
	}

	pane.input.SetValue("Call dentist")
	cmd := pane.Update(keyType(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("submit returned no command")
	}
	if pane.IsAdding() {
		t.Error("pane still in add mode after submit")
	}

	tasks := f.tasks.Active()
	if len(tasks) != 1 || tasks[0].Title != "Call dentist" {
		t.Fatalf("Active() = %+v, want one task 'Call dentist'", tasks)
	}
	if tasks[0].DateCreated != todayKey() {
		t.Errorf("DateCreated = %q, want today", tasks[0].DateCreated)
	}
}

func TestTaskPane_AddFlow_BlankTitleIsDropped(t *testing.T) {
	setupTest(t)
	f := newFixture(t)

	pane := NewTaskPane(f.tasks, nil, f.styles)
	pane.Update(keyRune('a'))
	pane.input.SetValue("   ")
	pane.Update(keyType(tea.KeyEnter))

	if len(f.tasks.Active()) != 0 {
		t.Error("blank title created a task")
	}
}

func TestTaskPane_AddFlow_Cancel(t *testing.T) {
	setupTest(t)
	f := newFixture(t)

	pane := NewTaskPane(f.tasks, nil, f.styles)
	pane.Update(keyRune('a'))
	pane.input.SetValue("discard me")
	pane.Update(keyType(tea.KeyEsc))

	if pane.IsAdding() {
		t.Error("pane still in add mode after esc")
	}
	if len(f.tasks.Active()) != 0 {
		t.Error("cancel created a task")
	}
}

func TestTaskPane_AddFlow_FieldCycling(t *testing.T) {
	setupTest(t)
	f := newFixture(t)

	pane := NewTaskPane(f.tasks, nil, f.styles)
	pane.Update(keyRune('a'))

	if pane.field != fieldTitle {
		t.Fatalf("initial field = %d, want title", pane.field)
	}

	pane.Update(keyType(tea.KeyTab))
	if pane.field != fieldDate {
		t.Fatalf("field after tab = %d, want date", pane.field)
	}

	pane.Update(keyRune('l'))
	if pane.dateIdx != 1 {
		t.Errorf("dateIdx after 'l' = %d, want 1", pane.dateIdx)
	}
	pane.Update(keyRune('h'))
	if pane.dateIdx != 0 {
		t.Errorf("dateIdx after 'h' = %d, want 0", pane.dateIdx)
	}

	pane.Update(keyType(tea.KeyTab))
	if pane.field != fieldTime {
		t.Fatalf("field after second tab = %d, want time", pane.field)
	}

	before := pane.timeIdx
	pane.Update(keyRune('l'))
	if pane.timeIdx != before+1 {
		t.Errorf("timeIdx after 'l' = %d, want %d", pane.timeIdx, before+1)
	}
}

func TestTaskPane_CompleteRemovesFromList(t *testing.T) {
	setupTest(t)
	f := newFixture(t)

	created := f.addTask(t, "Finish report", todayKey())

	pane := NewTaskPane(f.tasks, nil, f.styles)
	pane.SetFocused(true)

	cmd := pane.Update(keyRune('d'))
	if cmd == nil {
		t.Fatal("complete returned no command")
	}

	if len(f.tasks.Active()) != 0 {
		t.Error("completed task still on main list")
	}
	history := f.tasks.Completed()
	if len(history) != 1 || history[0].ID != created.ID {
		t.Fatalf("history = %+v, want the completed task", history)
	}
}

func TestTaskPane_DeleteWithoutConfirm(t *testing.T) {
	setupTest(t)
	f := newFixture(t)

	f.addTask(t, "Temporary", todayKey())

	pane := NewTaskPane(f.tasks, nil, f.styles)
	pane.SetFocused(true)

	pane.Update(keyRune('x'))
	if len(f.tasks.Active()) != 0 {
		t.Error("task survived delete")
	}
}

func TestTaskPane_NavigationClamps(t *testing.T) {
	setupTest(t)
	f := newFixture(t)

	f.addTask(t, "One", todayKey())
	f.addTask(t, "Two", todayKey())

	pane := NewTaskPane(f.tasks, nil, f.styles)
	pane.SetFocused(true)

	pane.Update(keyRune('j'))
	if pane.cursor != 1 {
		t.Errorf("cursor after 'j' = %d, want 1", pane.cursor)
	}
	pane.Update(keyRune('j'))
	if pane.cursor != 1 {
		t.Errorf("cursor clamped = %d, want 1", pane.cursor)
	}
	pane.Update(keyRune('g'))
	if pane.cursor != 0 {
		t.Errorf("cursor after 'g' = %d, want 0", pane.cursor)
	}
	pane.Update(keyRune('G'))
	if pane.cursor != 1 {
		t.Errorf("cursor after 'G' = %d, want 1", pane.cursor)
	}
}

func TestTaskPane_CursorClampsAfterChange(t *testing.T) {
	setupTest(t)
	f := newFixture(t)

	one := f.addTask(t, "One", todayKey())
	f.addTask(t, "Two", todayKey())

	pane := NewTaskPane(f.tasks, nil, f.styles)
	pane.SetFocused(true)
	pane.cursor = 1

	if err := f.tasks.Delete(one.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	pane.Update(tasksChangedMsg{})

	if pane.cursor != 0 {
		t.Errorf("cursor after shrink = %d, want 0", pane.cursor)
	}
}

func TestReminderTimeOptions(t *testing.T) {
	options := reminderTimeOptions()
	if options[0] != "06:00" {
		t.Errorf("first option = %q, want 06:00", options[0])
	}
	if options[len(options)-1] != "22:00" {
		t.Errorf("last option = %q, want 22:00", options[len(options)-1])
	}
	if idx := indexOfTime(options, "09:00"); options[idx] != "09:00" {
		t.Errorf("indexOfTime(09:00) points at %q", options[idx])
	}
	// Unknown clocks fall back to the 09:00 slot.
	if idx := indexOfTime(options, "09:17"); options[idx] != "09:00" {
		t.Errorf("fallback points at %q, want 09:00", options[idx])
	}
}

func TestDateLabel(t *testing.T) {
	if dateLabel(0) != "Today" {
		t.Errorf("dateLabel(0) = %q", dateLabel(0))
	}
	if dateLabel(1) != "Tomorrow" {
		t.Errorf("dateLabel(1) = %q", dateLabel(1))
	}
	if dateLabel(3) == "" {
		t.Error("dateLabel(3) is empty")
	}
}
