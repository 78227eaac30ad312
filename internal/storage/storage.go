// Package storage persists each collection as an independent JSON document
// in the data directory. Documents are written atomically with best-effort
// .bak copies; a corrupt document degrades to that collection's empty
// default rather than failing the app.
package storage

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"taskpad/internal/fsutil"
)

// Document filenames. Each one is loaded and saved independently so the
// loss of one never takes the others with it.
const (
	FileTasks        = "tasks.json"
	FileCompleted    = "completed.json"
	FileCalendar     = "calendar.json"
	FileNotes        = "notes.json"
	FileSettings     = "settings.json"
	FileCalendarView = "calendarview.json"
)

// Lexical formats shared by storage, display, and trigger computation.
const (
	DateKeyFormat = "2006-01-02"
	ClockFormat   = "15:04"
)

const (
	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600

	maxTaskTitleLen = 200
	maxNoteTextLen  = 2000
)

// Storage handles all file I/O for the data directory.
type Storage struct {
	dataDir string
	now     func() time.Time // injectable clock for deterministic tests
}

// New creates a Storage rooted at dataDir, creating the directory and the
// default documents if they don't exist.
func New(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Storage{dataDir: dataDir, now: time.Now}

	if err := s.initFiles(); err != nil {
		return nil, err
	}

	return s, nil
}

// SetNowFunc overrides the clock used by time-dependent operations.
// Passing nil resets it to time.Now.
func (s *Storage) SetNowFunc(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// Now returns the current time according to the storage clock.
func (s *Storage) Now() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// GetDataDir returns the path to the data directory.
func (s *Storage) GetDataDir() string {
	return s.dataDir
}

// DataFiles lists every document filename the app persists.
func DataFiles() []string {
	return []string{
		FileTasks,
		FileCompleted,
		FileCalendar,
		FileNotes,
		FileSettings,
		FileCalendarView,
	}
}

// initFiles creates default JSON documents if they don't exist.
func (s *Storage) initFiles() error {
	if !fileExists(s.path(FileTasks)) {
		if err := s.SaveTasks(&TaskStore{Tasks: []Task{}}); err != nil {
			return err
		}
	}
	if !fileExists(s.path(FileCompleted)) {
		if err := s.SaveCompleted(&CompletedStore{Tasks: []Task{}}); err != nil {
			return err
		}
	}
	if !fileExists(s.path(FileCalendar)) {
		if err := s.SaveCalendar(&CalendarStore{Days: map[string][]Task{}}); err != nil {
			return err
		}
	}
	if !fileExists(s.path(FileNotes)) {
		if err := s.SaveNotes(&NoteStore{Notes: []Note{}}); err != nil {
			return err
		}
	}
	if !fileExists(s.path(FileSettings)) {
		defaults := DefaultSettings()
		if err := s.SaveSettings(&defaults); err != nil {
			return err
		}
	}
	return nil
}

func (s *Storage) path(filename string) string {
	return filepath.Join(s.dataDir, filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}

// NewID generates an identifier of the form prefix_<unixMilli>_<hex>.
// IDs are unique and never reused; the timestamp keeps them roughly
// sortable by creation time.
func NewID(prefix string) (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), hex.EncodeToString(b[:])), nil
}

func (s *Storage) writeJSONAtomic(filename string, v any) error {
	path := s.path(filename)
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize %s: %w", filename, err)
	}

	// Keep a best-effort backup before overwriting.
	fsutil.BestEffortBackup(path, dataFilePerm)

	if err := fsutil.WriteFileAtomic(path, data, dataFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}

	return nil
}

func (s *Storage) loadJSONWithRecovery(filename string, v any) error {
	path := s.path(filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := s.writeJSONAtomic(filename, v); err != nil {
				return err
			}
			return nil
		}
		return fmt.Errorf("read %s: %w", filename, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s.recoverCorruptJSON(filename, v, fmt.Errorf("%s is empty", filename))
	}

	if err := json.Unmarshal(data, v); err == nil {
		return nil
	}
	return s.recoverCorruptJSON(filename, v, fmt.Errorf("parse %s: %w", filename, err))
}

func (s *Storage) recoverCorruptJSON(filename string, v any, cause error) error {
	path := s.path(filename)

	// Try backup first.
	bakData, bakErr := os.ReadFile(path + ".bak")
	if bakErr == nil && len(bytes.TrimSpace(bakData)) > 0 {
		if err := json.Unmarshal(bakData, v); err == nil {
			corruptPath := fmt.Sprintf("%s.corrupt.%s", path, time.Now().Format("20060102-150405"))
			_ = os.Rename(path, corruptPath)
			_ = s.writeJSONAtomic(filename, v)
			return fmt.Errorf("%s (recovered from %s.bak)", cause.Error(), filename)
		}
	}

	// No usable backup: preserve the broken file (best effort) and reset.
	corruptPath := fmt.Sprintf("%s.corrupt.%s", path, time.Now().Format("20060102-150405"))
	_ = os.Rename(path, corruptPath)
	_ = s.writeJSONAtomic(filename, v)
	return fmt.Errorf("%s (reset to defaults; original moved to %s)", cause.Error(), corruptPath)
}

// RemoveDocuments deletes the named documents and their .bak files.
// Missing files are not an error.
func (s *Storage) RemoveDocuments(filenames ...string) error {
	var firstErr error
	for _, name := range filenames {
		for _, path := range []string{s.path(name), s.path(name) + ".bak"} {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				if firstErr == nil {
					firstErr = fmt.Errorf("remove %s: %w", name, err)
				}
			}
		}
	}
	return firstErr
}

// ============================================================================
// Task documents
// ============================================================================

// LoadTasks reads the main-list document from disk.
func (s *Storage) LoadTasks() (*TaskStore, error) {
	store := TaskStore{Tasks: []Task{}}
	err := s.loadJSONWithRecovery(FileTasks, &store)
	return &store, err
}

// SaveTasks writes the main-list document to disk.
func (s *Storage) SaveTasks(store *TaskStore) error {
	return s.writeJSONAtomic(FileTasks, store)
}

// LoadCompleted reads the completed-history document from disk.
func (s *Storage) LoadCompleted() (*CompletedStore, error) {
	store := CompletedStore{Tasks: []Task{}}
	err := s.loadJSONWithRecovery(FileCompleted, &store)
	return &store, err
}

// SaveCompleted writes the completed-history document to disk.
func (s *Storage) SaveCompleted(store *CompletedStore) error {
	return s.writeJSONAtomic(FileCompleted, store)
}

// LoadCalendar reads the date-keyed calendar document from disk.
func (s *Storage) LoadCalendar() (*CalendarStore, error) {
	store := CalendarStore{Days: map[string][]Task{}}
	err := s.loadJSONWithRecovery(FileCalendar, &store)
	if store.Days == nil {
		store.Days = map[string][]Task{}
	}
	return &store, err
}

// SaveCalendar writes the calendar document to disk.
func (s *Storage) SaveCalendar(store *CalendarStore) error {
	return s.writeJSONAtomic(FileCalendar, store)
}

// LoadCalendarView reads the calendar surface's selection mirror.
func (s *Storage) LoadCalendarView() (*CalendarView, error) {
	view := CalendarView{}
	err := s.loadJSONWithRecovery(FileCalendarView, &view)
	return &view, err
}

// SaveCalendarView writes the calendar surface's selection mirror.
func (s *Storage) SaveCalendarView(view *CalendarView) error {
	return s.writeJSONAtomic(FileCalendarView, view)
}

// ValidateTaskTitle checks a title the way every task-creating surface must.
func ValidateTaskTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("task title is required")
	}
	if len(title) > maxTaskTitleLen {
		return fmt.Errorf("task title too long (max %d)", maxTaskTitleLen)
	}
	return nil
}

// ValidateDateKey checks the YYYY-MM-DD date key format.
func ValidateDateKey(key string) error {
	if _, err := time.Parse(DateKeyFormat, key); err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", key)
	}
	return nil
}

// ValidateClock checks the HH:MM 24-hour time format.
func ValidateClock(clock string) error {
	if _, err := time.Parse(ClockFormat, clock); err != nil {
		return fmt.Errorf("invalid time %q: expected HH:MM", clock)
	}
	return nil
}

// SortTasks orders a task list for display according to the taskSorting
// setting. "alphabetical" sorts by title; everything else (including the
// legacy "priority" value, which has no backing field) falls back to
// creation order.
func SortTasks(tasks []Task, mode string) []Task {
	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)

	switch mode {
	case SortByAlphabetical:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Title) < strings.ToLower(sorted[j].Title)
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		})
	}

	return sorted
}

// ============================================================================
// Notes
// ============================================================================

// LoadNotes reads notes from disk.
func (s *Storage) LoadNotes() (*NoteStore, error) {
	store := NoteStore{Notes: []Note{}}
	err := s.loadJSONWithRecovery(FileNotes, &store)
	return &store, err
}

// SaveNotes writes notes to disk.
func (s *Storage) SaveNotes(store *NoteStore) error {
	return s.writeJSONAtomic(FileNotes, store)
}

// AddNote creates a new note.
func (s *Storage) AddNote(text string) (*Note, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("note text is required")
	}
	if len(text) > maxNoteTextLen {
		return nil, fmt.Errorf("note text too long (max %d)", maxNoteTextLen)
	}

	store, err := s.LoadNotes()
	if err != nil {
		return nil, err
	}

	id, err := NewID("n")
	if err != nil {
		return nil, err
	}

	now := s.Now()
	note := Note{
		ID:        id,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}

	store.Notes = append(store.Notes, note)

	if err := s.SaveNotes(store); err != nil {
		return nil, err
	}

	return &note, nil
}

// UpdateNote replaces a note's text and bumps its updatedAt stamp.
func (s *Storage) UpdateNote(id, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("note text is required")
	}
	if len(text) > maxNoteTextLen {
		return fmt.Errorf("note text too long (max %d)", maxNoteTextLen)
	}

	store, err := s.LoadNotes()
	if err != nil {
		return err
	}

	for i := range store.Notes {
		if store.Notes[i].ID == id {
			store.Notes[i].Text = text
			store.Notes[i].UpdatedAt = s.Now()
			return s.SaveNotes(store)
		}
	}

	return fmt.Errorf("note not found: %s", id)
}

// DeleteNote removes a note.
func (s *Storage) DeleteNote(id string) error {
	store, err := s.LoadNotes()
	if err != nil {
		return err
	}

	for i := range store.Notes {
		if store.Notes[i].ID == id {
			store.Notes = append(store.Notes[:i], store.Notes[i+1:]...)
			return s.SaveNotes(store)
		}
	}

	return fmt.Errorf("note not found: %s", id)
}

// SortNotes returns notes ordered most-recently-updated first, the display
// order of the notes pane.
func SortNotes(notes []Note) []Note {
	sorted := make([]Note, len(notes))
	copy(sorted, notes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})
	return sorted
}

// ============================================================================
// Settings
// ============================================================================

// LoadSettings reads the settings document, falling back to defaults for a
// missing or unreadable file.
func (s *Storage) LoadSettings() (*Settings, error) {
	settings := DefaultSettings()
	err := s.loadJSONWithRecovery(FileSettings, &settings)
	return &settings, err
}

// SaveSettings writes the full settings document to disk.
func (s *Storage) SaveSettings(settings *Settings) error {
	return s.writeJSONAtomic(FileSettings, settings)
}
