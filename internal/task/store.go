// Package task owns the canonical task collection. Tasks live in a single
// insertion-ordered sequence with completed ones marked in place; the main
// list and the per-day calendar are projections computed on read, so the
// views can never drift apart. The completed history is a separate
// append-only sequence because reverse toggles must not erase it.
package task

import (
	"errors"
	"sort"
	"strings"
	"time"

	"taskpad/internal/storage"
)

// Scheduler is the slice of the reminder scheduler the store needs.
type Scheduler interface {
	// Schedule returns an opaque handle, or "" when nothing was scheduled.
	Schedule(title string, at time.Time, sound bool) string
	// Cancel is a no-op for unknown or already-fired handles.
	Cancel(id string)
}

// Origin identifies which surface created a task. Calendar-created tasks
// appear on the main list only when created for the current day.
type Origin int

const (
	OriginHome Origin = iota
	OriginCalendar
)

// Store holds the canonical task sequence and the completed history.
// All mutations apply in memory first; each affected document is then
// persisted independently, and persistence failures never roll back the
// in-memory change.
type Store struct {
	storage  *storage.Storage
	sched    Scheduler
	settings func() storage.Settings

	tasks []storage.Task // canonical, insertion-ordered
	done  []storage.Task // completed history, append-only
}

// New creates a Store. The settings func supplies the current settings
// snapshot for scheduling decisions; nil means defaults.
func New(st *storage.Storage, sched Scheduler, settings func() storage.Settings) *Store {
	if settings == nil {
		settings = func() storage.Settings { return storage.DefaultSettings() }
	}
	return &Store{
		storage:  st,
		sched:    sched,
		settings: settings,
		tasks:    []storage.Task{},
		done:     []storage.Task{},
	}
}

// Load rebuilds the canonical sequence from disk. The calendar document is
// the superset (it holds completed-in-place tasks too), so it is the primary
// source; the main-list document is merged in to recover any ids the
// calendar document lost. A partially unreadable disk state still yields a
// usable store; the returned error describes what was recovered.
func (s *Store) Load() error {
	var errs []error

	cal, err := s.storage.LoadCalendar()
	if err != nil {
		errs = append(errs, err)
	}
	main, err := s.storage.LoadTasks()
	if err != nil {
		errs = append(errs, err)
	}
	completed, err := s.storage.LoadCompleted()
	if err != nil {
		errs = append(errs, err)
	}

	seen := map[string]bool{}
	canonical := []storage.Task{}

	dates := make([]string, 0, len(cal.Days))
	for date := range cal.Days {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	for _, date := range dates {
		for _, t := range cal.Days[date] {
			if t.ID == "" || seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			canonical = append(canonical, t)
		}
	}
	for _, t := range main.Tasks {
		if t.ID == "" || seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		canonical = append(canonical, t)
	}

	sort.SliceStable(canonical, func(i, j int) bool {
		return canonical[i].CreatedAt.Before(canonical[j].CreatedAt)
	})

	s.tasks = canonical
	s.done = completed.Tasks

	return errors.Join(errs...)
}

// RearmReminders re-schedules in-process timers after a restart for tasks
// that had a reminder handle and whose trigger is still in the future.
// Handles are process-local, so the persisted ones are stale by definition.
func (s *Store) RearmReminders() error {
	cfg := s.settings()
	changed := false

	for i := range s.tasks {
		t := &s.tasks[i]
		if t.Completed || t.NotificationID == "" {
			continue
		}
		t.NotificationID = ""
		if cfg.Notifications {
			if at, err := triggerAt(t.DateCreated, t.ReminderTime); err == nil {
				t.NotificationID = s.sched.Schedule(t.Title, at, cfg.SoundEnabled)
			}
		}
		changed = true
	}

	if !changed {
		return nil
	}
	return errors.Join(s.persistActive(), s.persistCalendar())
}

// Create appends a new task. A blank title is rejected without mutation.
// A reminder is scheduled only when notifications are enabled and the
// trigger instant is strictly in the future; otherwise the task carries no
// handle, which is not an error.
func (s *Store) Create(title, dateKey, reminderTime string, origin Origin) (*storage.Task, error) {
	title = strings.TrimSpace(title)
	if err := storage.ValidateTaskTitle(title); err != nil {
		return nil, err
	}
	if err := storage.ValidateDateKey(dateKey); err != nil {
		return nil, err
	}
	if err := storage.ValidateClock(reminderTime); err != nil {
		return nil, err
	}

	id, err := storage.NewID("t")
	if err != nil {
		return nil, err
	}

	cfg := s.settings()
	notifID := ""
	if cfg.Notifications {
		if at, terr := triggerAt(dateKey, reminderTime); terr == nil {
			// The scheduler returns "" for non-future triggers.
			notifID = s.sched.Schedule(title, at, cfg.SoundEnabled)
		}
	}

	t := storage.Task{
		ID:             id,
		Title:          title,
		DateCreated:    dateKey,
		ReminderTime:   reminderTime,
		NotificationID: notifID,
		CreatedAt:      s.storage.Now(),
		FromHomeScreen: origin == OriginHome,
		FromCalendar:   origin == OriginCalendar,
	}

	s.tasks = append(s.tasks, t)

	if err := errors.Join(s.persistActive(), s.persistCalendar()); err != nil {
		return &t, err
	}
	return &t, nil
}

// Complete marks a task completed, forward only. The reminder is cancelled
// first, then the task is marked in place with a fresh completedAt and a
// copy is appended to the history. Unknown or already-completed ids are
// silent no-ops.
func (s *Store) Complete(id string) error {
	i := s.index(id)
	if i < 0 || s.tasks[i].Completed {
		return nil
	}
	return s.complete(i)
}

// Toggle flips a task's completed flag, the calendar surface's semantics.
// Forward transitions behave like Complete; reverse transitions only clear
// the flag and completedAt, leaving the history entry in place.
func (s *Store) Toggle(id string) error {
	i := s.index(id)
	if i < 0 {
		return nil
	}

	if !s.tasks[i].Completed {
		return s.complete(i)
	}

	s.tasks[i].Completed = false
	s.tasks[i].CompletedAt = nil

	return errors.Join(s.persistActive(), s.persistCalendar())
}

func (s *Store) complete(i int) error {
	t := &s.tasks[i]

	if t.NotificationID != "" {
		s.sched.Cancel(t.NotificationID)
		t.NotificationID = ""
	}

	now := s.storage.Now()
	t.Completed = true
	t.CompletedAt = &now

	s.done = append(s.done, *t)

	return errors.Join(s.persistActive(), s.persistCalendar(), s.persistCompleted())
}

// Delete removes a task from the canonical sequence, cancelling its
// reminder if one was scheduled. Unknown ids are silent no-ops, so calling
// it twice is harmless.
func (s *Store) Delete(id string) error {
	i := s.index(id)
	if i < 0 {
		return nil
	}

	if s.tasks[i].NotificationID != "" {
		s.sched.Cancel(s.tasks[i].NotificationID)
	}

	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)

	return errors.Join(s.persistActive(), s.persistCalendar())
}

// DeleteCompleted removes one entry from the completed history. Unknown ids
// are silent no-ops.
func (s *Store) DeleteCompleted(id string) error {
	for i := range s.done {
		if s.done[i].ID == id {
			s.done = append(s.done[:i], s.done[i+1:]...)
			return s.persistCompleted()
		}
	}
	return nil
}

// ClearAll empties the canonical sequence and the history and removes their
// persisted documents. Outstanding reminders are not cancelled; a cleared
// task's reminder may still fire.
func (s *Store) ClearAll() error {
	s.tasks = []storage.Task{}
	s.done = []storage.Task{}

	return s.storage.RemoveDocuments(
		storage.FileTasks,
		storage.FileCompleted,
		storage.FileCalendar,
		storage.FileCalendarView,
	)
}

// ============================================================================
// Projections
// ============================================================================

/// Active returns the main-list view: incomplete tasks created from the home
// surface, plus calendar tasks created for the same day they were created
// on. Ordered per the taskSorting setting.
func (s *Store) Active() []storage.Task {
	out := []storage.Task{}
	for _, t := range s.tasks {
		if s.onMainList(t) {
			out = append(out, t)
		}
	}
	return storage.SortTasks(out, s.settings().TaskSorting)
}

func (s *Store) onMainList(t storage.Task) bool {
	if t.Completed {
		return false
	}
	return t.FromHomeScreen || t.DateCreated == t.CreatedAt.Format(storage.DateKeyFormat)
}

// ForDate returns the tasks scheduled for one date key, completed ones
// included and marked in place, in creation order.
func (s *Store) ForDate(dateKey string) []storage.Task {
	out := []storage.Task{}
	for _, t := range s.tasks {
		if t.DateCreated == dateKey {
			out = append(out, t)
		}
	}
	return out
}

// Calendar returns all tasks grouped by date key. Because grouping happens
// on read, a key with no tasks simply does not exist in the result.
func (s *Store) Calendar() map[string][]storage.Task {
	out := map[string][]storage.Task{}
	for _, t := range s.tasks {
		out[t.DateCreated] = append(out[t.DateCreated], t)
	}
	return out
}

// Dates returns the date keys that currently have tasks, ascending.
func (s *Store) Dates() []string {
	seen := map[string]bool{}
	out := []string{}
	for _, t := range s.tasks {
		if !seen[t.DateCreated] {
			seen[t.DateCreated] = true
			out = append(out, t.DateCreated)
		}
	}
	sort.Strings(out)
	return out
}

// Completed returns the history, oldest first.
func (s *Store) Completed() []storage.Task {
	out := make([]storage.Task, len(s.done))
	copy(out, s.done)
	return out
}

// Get returns the task with the given id from the canonical sequence.
func (s *Store) Get(id string) (storage.Task, bool) {
	if i := s.index(id); i >= 0 {
		return s.tasks[i], true
	}
	return storage.Task{}, false
}

// Remaining counts incomplete tasks on the main list, for the title-bar
// counter.
func (s *Store) Remaining() int {
	n := 0
	for _, t := range s.tasks {
		if s.onMainList(t) {
			n++
		}
	}
	return n
}

// ============================================================================
// Internals
// ============================================================================

func (s *Store) index(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persistActive() error {
	doc := storage.TaskStore{Tasks: []storage.Task{}}
	for _, t := range s.tasks {
		if s.onMainList(t) {
			doc.Tasks = append(doc.Tasks, t)
		}
	}
	return s.storage.SaveTasks(&doc)
}

func (s *Store) persistCalendar() error {
	return s.storage.SaveCalendar(&storage.CalendarStore{Days: s.Calendar()})
}

func (s *Store) persistCompleted() error {
	return s.storage.SaveCompleted(&storage.CompletedStore{Tasks: s.done})
}

// triggerAt combines a date key and a clock into the local trigger instant.
func triggerAt(dateKey, clock string) (time.Time, error) {
	t, err := time.ParseInLocation(storage.DateKeyFormat+" "+storage.ClockFormat, dateKey+" "+clock, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
