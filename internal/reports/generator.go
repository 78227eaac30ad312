// Package reports provides daily and weekly report generation for the taskpad app.
package reports

import (
	"time"

	"taskpad/internal/storage"
)

// Generator creates reports from storage data.
type Generator struct {
	store *storage.Storage
}

// NewGenerator creates a new report generator.
func NewGenerator(store *storage.Storage) *Generator {
	return &Generator{store: store}
}

// GenerateDaily generates a report for a specific date.
func (g *Generator) GenerateDaily(date time.Time) (*DailyReport, error) {
	date = startOfDay(date)
	end := date.AddDate(0, 0, 1)

	tasks, err := g.getTaskSummary(date, end)
	if err != nil {
		return nil, err
	}

	notes, err := g.getNoteSummary(date, end)
	if err != nil {
		return nil, err
	}

	return &DailyReport{
		Date:        date,
		Tasks:       tasks,
		Notes:       notes,
		GeneratedAt: time.Now(),
	}, nil
}

// GenerateWeekly generates a report for the week containing the given date.
// The week starts on Sunday or Monday per the weekStartsOn setting.
func (g *Generator) GenerateWeekly(date time.Time) (*WeeklyReport, error) {
	settings, err := g.store.LoadSettings()
	if err != nil {
		// Recovered settings are still usable; keep going with what we got.
		settings = &storage.Settings{WeekStartsOn: storage.WeekStartSunday}
	}

	start := startOfWeek(date, settings.WeekStartsOn)
	end := start.AddDate(0, 0, 7)

	byDay := make([]DayTaskCount, 7)
	totals := WeeklyTasks{}

	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		summary, err := g.getTaskSummary(day, day.AddDate(0, 0, 1))
		if err != nil {
			return nil, err
		}

		byDay[i] = DayTaskCount{
			Date:      day.Format(storage.DateKeyFormat),
			DayOfWeek: day.Format("Mon"),
			Scheduled: summary.ScheduledCount,
			Completed: summary.CompletedCount,
			Added:     summary.AddedCount,
		}
		totals.TotalScheduled += summary.ScheduledCount
		totals.TotalCompleted += summary.CompletedCount
		totals.TotalAdded += summary.AddedCount
	}

	if totals.TotalScheduled > 0 {
		totals.CompletionRate = float64(totals.TotalCompleted) / float64(totals.TotalScheduled) * 100
	}
	totals.ByDay = byDay

	notes, err := g.getNoteSummary(start, end)
	if err != nil {
		return nil, err
	}

	return &WeeklyReport{
		StartDate:   start,
		EndDate:     end.Add(-time.Nanosecond), // End of last day
		Tasks:       totals,
		Notes:       notes,
		GeneratedAt: time.Now(),
	}, nil
}

// getTaskSummary returns task statistics for a date range. Scheduled tasks
// come from the calendar document (the superset); completions are counted by
// completedAt stamp so a task scheduled last week but finished today counts
// for today.
func (g *Generator) getTaskSummary(start, end time.Time) (TaskSummary, error) {
	cal, err := g.store.LoadCalendar()
	if err != nil {
		return TaskSummary{}, err
	}

	var scheduled, completed []storage.Task
	addedCount := 0

	for _, day := range cal.Days {
		for _, task := range day {
			if key, kerr := time.ParseInLocation(storage.DateKeyFormat, task.DateCreated, start.Location()); kerr == nil {
				if !key.Before(start) && key.Before(end) {
					scheduled = append(scheduled, task)
				}
			}

			if !task.CreatedAt.Before(start) && task.CreatedAt.Before(end) {
				addedCount++
			}

			if task.Completed && task.CompletedAt != nil {
				if !task.CompletedAt.Before(start) && task.CompletedAt.Before(end) {
					completed = append(completed, task)
				}
			}
		}
	}

	rate := 0.0
	if len(scheduled) > 0 {
		done := 0
		for _, t := range scheduled {
			if t.Completed {
				done++
			}
		}
		rate = float64(done) / float64(len(scheduled)) * 100
	}

	return TaskSummary{
		Scheduled:      scheduled,
		Completed:      completed,
		ScheduledCount: len(scheduled),
		CompletedCount: len(completed),
		AddedCount:     addedCount,
		CompletionRate: rate,
	}, nil
}

// getNoteSummary returns note activity for a date range.
func (g *Generator) getNoteSummary(start, end time.Time) (NoteSummary, error) {
	notes, err := g.store.LoadNotes()
	if err != nil {
		return NoteSummary{}, err
	}

	summary := NoteSummary{}
	for _, note := range notes.Notes {
		if !note.CreatedAt.Before(start) && note.CreatedAt.Before(end) {
			summary.CreatedCount++
		}
		if !note.UpdatedAt.Before(start) && note.UpdatedAt.Before(end) {
			summary.UpdatedCount++
		}
	}

	return summary, nil
}

// Helper functions

// startOfDay returns the start of the day (midnight).
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the start of the week containing t.
func startOfWeek(t time.Time, weekStartsOn string) time.Time {
	t = startOfDay(t)
	weekday := int(t.Weekday())
	if weekStartsOn == storage.WeekStartMonday {
		// Shift so Monday is day 0.
		weekday = (weekday + 6) % 7
	}
	return t.AddDate(0, 0, -weekday)
}
