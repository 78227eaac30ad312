package ui

import (
	"testing"
	"time"

	"taskpad/internal/config"
	"taskpad/internal/settings"
	"taskpad/internal/storage"
	"taskpad/internal/task"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// setupTest prepares the test environment for deterministic rendering.
// It disables colors to ensure consistent output across environments.
func setupTest(t *testing.T) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
}

// fakeScheduler is a scheduler stand-in that never fires.
type fakeScheduler struct {
	scheduled []string
	cancelled []string
	seq       int
}

func (f *fakeScheduler) Schedule(title string, at time.Time, sound bool) string {
	if !at.After(time.Now()) {
		return ""
	}
	f.seq++
	f.scheduled = append(f.scheduled, title)
	return "sched_test_" + time.Now().Format("150405") + "_" + string(rune('a'+f.seq%26))
}

func (f *fakeScheduler) Cancel(id string) {
	f.cancelled = append(f.cancelled, id)
}

// fixture bundles the wired-up application state for UI tests.
type fixture struct {
	storage *storage.Storage
	tasks   *task.Store
	manager *settings.Manager
	sched   *fakeScheduler
	styles  *Styles
}

// newFixture creates storage, task store, and settings manager over a
// temporary directory.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}

	sched := &fakeScheduler{}
	mgr, err := settings.NewManager(st, nil)
	if err != nil {
		t.Fatalf("settings.NewManager() error = %v", err)
	}

	store := task.New(st, sched, func() storage.Settings { return mgr.Current() })
	if err := store.Load(); err != nil {
		t.Fatalf("task store Load() error = %v", err)
	}

	return &fixture{
		storage: st,
		tasks:   store,
		manager: mgr,
		sched:   sched,
		styles:  NewStylesFromTheme(&config.ThemeConfig{}),
	}
}

// todayKey returns today's date key.
func todayKey() string {
	return time.Now().Format(storage.DateKeyFormat)
}

// addTask creates a task directly on the store.
func (f *fixture) addTask(t *testing.T, title, dateKey string) storage.Task {
	t.Helper()
	created, err := f.tasks.Create(title, dateKey, "09:00", task.OriginHome)
	if err != nil {
		t.Fatalf("Create(%q) error = %v", title, err)
	}
	return *created
}

// keyRune builds a KeyMsg for a printable key.
func keyRune(r rune) tea.KeyMsg {
	if r == ' ' {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// keyType builds a KeyMsg for a special key.
func keyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// runCmd executes a command and feeds resulting messages back into the model
// until the command chain settles. Batch commands are not produced by the
// code under test.
func runCmd(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()
	for i := 0; cmd != nil && i < 10; i++ {
		msg := cmd()
		if msg == nil {
			return
		}
		_, cmd = app.Update(msg)
	}
}
