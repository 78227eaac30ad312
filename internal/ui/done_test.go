package ui

import (
	"strings"
	"testing"
)

func TestDonePane_EntriesNewestFirst(t *testing.T) {
	setupTest(t)
	f := newFixture(t)

	first := f.addTask(t, "First done", todayKey())
	second := f.addTask(t, "Second done", todayKey())

	if err := f.tasks.Complete(first.ID); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if err := f.tasks.Complete(second.ID); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	pane := NewDonePane(f.tasks, f.styles)
	entries := pane.Entries()
	if len(entries) != 2 {
		t.Fatalf("len(Entries()) = %d, want 2", len(entries))
	}
	if entries[0].ID != second.ID {
		t.Errorf("first entry = %q, want most recent completion", entries[0].Title)
	}
}

func TestDonePane_DeleteLeavesCanonicalAlone(t *testing.T) {
	setupTest(t)
	f := newFixture(t)

	created := f.addTask(t, "Ephemeral", todayKey())
	if err := f.tasks.Complete(created.ID); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	pane := NewDonePane(f.tasks, f.styles)
	pane.SetFocused(true)
	pane.Update(keyRune('x'))

	if len(f.tasks.Completed()) != 0 {
		t.Error("history entry survived delete")
	}
	// The canonical task keeps its completed mark on its calendar day.
	day := f.tasks.ForDate(todayKey())
	if len(day) != 1 || !day[0].Completed {
		t.Errorf("day after history delete = %+v, want completed task", day)
	}
}

func TestDonePaneView(t *testing.T) {
	setupTest(t)
	f := newFixture(t)

	pane := NewDonePane(f.tasks, f.styles)
	pane.SetSize(50, 20)

	output := pane.View()
	if !strings.Contains(output, "Nothing completed yet") {
		t.Errorf("empty view missing placeholder:\n%s", output)
	}

	created := f.addTask(t, "Ship release", todayKey())
	if err := f.tasks.Complete(created.ID); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	output = pane.View()
	if !strings.Contains(output, "Ship release") {
		t.Errorf("view missing completed task:\n%s", output)
	}
	if !strings.Contains(output, "1 completed") {
		t.Errorf("view missing count:\n%s", output)
	}
}
