package reports

import (
	"strings"
	"testing"
	"time"

	"taskpad/internal/storage"
)

// seedStorage writes a calendar with tasks across three days of the week of
// Sunday 2026-03-08 plus one note.
func seedStorage(t *testing.T) (*storage.Storage, time.Time) {
	t.Helper()

	st, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}

	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.Local)
	mondayDone := sunday.AddDate(0, 0, 1).Add(10 * time.Hour)

	days := map[string][]storage.Task{
		"2026-03-08": {
			{ID: "t_1", Title: "Sunday open", DateCreated: "2026-03-08", ReminderTime: "09:00",
				CreatedAt: sunday.Add(8 * time.Hour)},
		},
		"2026-03-09": {
			{ID: "t_2", Title: "Monday done", DateCreated: "2026-03-09", ReminderTime: "09:00",
				CreatedAt: sunday.Add(9 * time.Hour), Completed: true, CompletedAt: &mondayDone},
			{ID: "t_3", Title: "Monday open", DateCreated: "2026-03-09", ReminderTime: "14:00",
				CreatedAt: mondayDone},
		},
	}
	if err := st.SaveCalendar(&storage.CalendarStore{Days: days}); err != nil {
		t.Fatalf("SaveCalendar() error = %v", err)
	}

	st.SetNowFunc(func() time.Time { return mondayDone })
	if _, err := st.AddNote("week note"); err != nil {
		t.Fatalf("AddNote() error = %v", err)
	}
	st.SetNowFunc(nil)

	return st, sunday
}

func TestGenerateDaily(t *testing.T) {
	st, sunday := seedStorage(t)
	gen := NewGenerator(st)

	monday := sunday.AddDate(0, 0, 1)
	report, err := gen.GenerateDaily(monday)
	if err != nil {
		t.Fatalf("GenerateDaily() error = %v", err)
	}

	if report.Tasks.ScheduledCount != 2 {
		t.Errorf("ScheduledCount = %d, want 2", report.Tasks.ScheduledCount)
	}
	if report.Tasks.CompletedCount != 1 {
		t.Errorf("CompletedCount = %d, want 1", report.Tasks.CompletedCount)
	}
	// t_3 was created Monday; t_2 was created Sunday.
	if report.Tasks.AddedCount != 1 {
		t.Errorf("AddedCount = %d, want 1", report.Tasks.AddedCount)
	}
	if report.Tasks.CompletionRate != 50 {
		t.Errorf("CompletionRate = %v, want 50", report.Tasks.CompletionRate)
	}
	if report.Notes.CreatedCount != 1 {
		t.Errorf("Notes.CreatedCount = %d, want 1", report.Notes.CreatedCount)
	}
}

func TestGenerateDaily_EmptyDay(t *testing.T) {
	st, sunday := seedStorage(t)
	gen := NewGenerator(st)

	report, err := gen.GenerateDaily(sunday.AddDate(0, 0, 20))
	if err != nil {
		t.Fatalf("GenerateDaily() error = %v", err)
	}
	if report.Tasks.ScheduledCount != 0 || report.Tasks.CompletedCount != 0 {
		t.Errorf("empty day has counts: %+v", report.Tasks)
	}
	if report.Tasks.CompletionRate != 0 {
		t.Errorf("CompletionRate = %v, want 0", report.Tasks.CompletionRate)
	}
}

func TestGenerateWeekly(t *testing.T) {
	st, sunday := seedStorage(t)
	gen := NewGenerator(st)

	// Any day inside the week aligns back to Sunday.
	report, err := gen.GenerateWeekly(sunday.AddDate(0, 0, 3))
	if err != nil {
		t.Fatalf("GenerateWeekly() error = %v", err)
	}

	if !report.StartDate.Equal(sunday) {
		t.Errorf("StartDate = %v, want %v", report.StartDate, sunday)
	}
	if report.Tasks.TotalScheduled != 3 {
		t.Errorf("TotalScheduled = %d, want 3", report.Tasks.TotalScheduled)
	}
	if report.Tasks.TotalCompleted != 1 {
		t.Errorf("TotalCompleted = %d, want 1", report.Tasks.TotalCompleted)
	}
	if len(report.Tasks.ByDay) != 7 {
		t.Fatalf("len(ByDay) = %d, want 7", len(report.Tasks.ByDay))
	}
	if report.Tasks.ByDay[1].Completed != 1 {
		t.Errorf("Monday completed = %d, want 1", report.Tasks.ByDay[1].Completed)
	}
	if report.Notes.CreatedCount != 1 {
		t.Errorf("Notes.CreatedCount = %d, want 1", report.Notes.CreatedCount)
	}
}

func TestGenerateWeekly_MondayWeekStart(t *testing.T) {
	st, sunday := seedStorage(t)

	settings, _ := st.LoadSettings()
	settings.WeekStartsOn = storage.WeekStartMonday
	if err := st.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	gen := NewGenerator(st)
	monday := sunday.AddDate(0, 0, 1)

	report, err := gen.GenerateWeekly(monday.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("GenerateWeekly() error = %v", err)
	}

	if !report.StartDate.Equal(monday) {
		t.Errorf("StartDate = %v, want Monday %v", report.StartDate, monday)
	}
	// The Sunday task falls outside a Monday-start week.
	if report.Tasks.TotalScheduled != 2 {
		t.Errorf("TotalScheduled = %d, want 2", report.Tasks.TotalScheduled)
	}
}

func TestMarkdownFormatting(t *testing.T) {
	st, sunday := seedStorage(t)
	gen := NewGenerator(st)

	daily, err := gen.GenerateDaily(sunday.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("GenerateDaily() error = %v", err)
	}
	md := FormatDailyMarkdown(daily)
	if !strings.Contains(md, "# Daily Report") {
		t.Error("daily markdown missing title")
	}
	if !strings.Contains(md, "[x] Monday done") {
		t.Errorf("daily markdown missing completed checkbox:\n%s", md)
	}
	if !strings.Contains(md, "[ ] Monday open") {
		t.Errorf("daily markdown missing open checkbox:\n%s", md)
	}

	weekly, err := gen.GenerateWeekly(sunday)
	if err != nil {
		t.Fatalf("GenerateWeekly() error = %v", err)
	}
	md = FormatWeeklyMarkdown(weekly)
	if !strings.Contains(md, "# Weekly Report") {
		t.Error("weekly markdown missing title")
	}
	if !strings.Contains(md, "| Day |") {
		t.Error("weekly markdown missing by-day table")
	}
}

func TestJSONFormatting(t *testing.T) {
	st, sunday := seedStorage(t)
	gen := NewGenerator(st)

	daily, _ := gen.GenerateDaily(sunday)
	data, err := FormatDailyJSON(daily)
	if err != nil {
		t.Fatalf("FormatDailyJSON() error = %v", err)
	}
	if !strings.Contains(string(data), `"scheduled_count"`) {
		t.Error("daily JSON missing scheduled_count field")
	}

	weekly, _ := gen.GenerateWeekly(sunday)
	data, err = FormatWeeklyJSON(weekly)
	if err != nil {
		t.Fatalf("FormatWeeklyJSON() error = %v", err)
	}
	if !strings.Contains(string(data), `"by_day"`) {
		t.Error("weekly JSON missing by_day field")
	}
}
