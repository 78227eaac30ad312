// Package reports provides daily and weekly report generation for the taskpad app.
package reports

import (
	"fmt"
	"strings"
)

// FormatDailyMarkdown formats a daily report as human-readable Markdown.
func FormatDailyMarkdown(report *DailyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Daily Report: %s\n\n", report.Date.Format("Monday, January 2, 2006"))

	fmt.Fprintf(&b, "## Tasks\n\n")
	fmt.Fprintf(&b, "- Scheduled: %d\n", report.Tasks.ScheduledCount)
	fmt.Fprintf(&b, "- Completed: %d\n", report.Tasks.CompletedCount)
	fmt.Fprintf(&b, "- Added: %d\n", report.Tasks.AddedCount)
	fmt.Fprintf(&b, "- Completion rate: %.0f%%\n\n", report.Tasks.CompletionRate)

	if len(report.Tasks.Scheduled) > 0 {
		fmt.Fprintf(&b, "### Scheduled\n\n")
		for _, t := range report.Tasks.Scheduled {
			mark := " "
			if t.Completed {
				mark = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s (%s)\n", mark, t.Title, t.ReminderTime)
		}
		b.WriteString("\n")
	}

	if report.Notes.CreatedCount > 0 || report.Notes.UpdatedCount > 0 {
		fmt.Fprintf(&b, "## Notes\n\n")
		fmt.Fprintf(&b, "- Created: %d\n", report.Notes.CreatedCount)
		fmt.Fprintf(&b, "- Updated: %d\n\n", report.Notes.UpdatedCount)
	}

	fmt.Fprintf(&b, "_Generated %s_\n", report.GeneratedAt.Format("2006-01-02 15:04"))

	return b.String()
}

// FormatWeeklyMarkdown formats a weekly report as human-readable Markdown.
func FormatWeeklyMarkdown(report *WeeklyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Weekly Report: %s to %s\n\n",
		report.StartDate.Format("Jan 2"), report.EndDate.Format("Jan 2, 2006"))

	fmt.Fprintf(&b, "## Tasks\n\n")
	fmt.Fprintf(&b, "- Scheduled: %d\n", report.Tasks.TotalScheduled)
	fmt.Fprintf(&b, "- Completed: %d\n", report.Tasks.TotalCompleted)
	fmt.Fprintf(&b, "- Added: %d\n", report.Tasks.TotalAdded)
	fmt.Fprintf(&b, "- Completion rate: %.0f%%\n\n", report.Tasks.CompletionRate)

	fmt.Fprintf(&b, "| Day | Scheduled | Completed | Added |\n")
	fmt.Fprintf(&b, "|-----|-----------|-----------|-------|\n")
	for _, day := range report.Tasks.ByDay {
		fmt.Fprintf(&b, "| %s %s | %d | %d | %d |\n",
			day.DayOfWeek, day.Date, day.Scheduled, day.Completed, day.Added)
	}
	b.WriteString("\n")

	if report.Notes.CreatedCount > 0 || report.Notes.UpdatedCount > 0 {
		fmt.Fprintf(&b, "## Notes\n\n")
		fmt.Fprintf(&b, "- Created: %d\n", report.Notes.CreatedCount)
		fmt.Fprintf(&b, "- Updated: %d\n\n", report.Notes.UpdatedCount)
	}

	fmt.Fprintf(&b, "_Generated %s_\n", report.GeneratedAt.Format("2006-01-02 15:04"))

	return b.String()
}
