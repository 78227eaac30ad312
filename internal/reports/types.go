// Package reports provides daily and weekly activity report generation for
// the taskpad app. Reports aggregate the task collections and notes.
package reports

import (
	"time"

	"taskpad/internal/storage"
)

// DailyReport contains aggregated data for a single day.
type DailyReport struct {
	Date        time.Time   `json:"date"`
	Tasks       TaskSummary `json:"tasks"`
	Notes       NoteSummary `json:"notes"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// WeeklyReport contains aggregated data for a week.
type WeeklyReport struct {
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	Tasks       WeeklyTasks `json:"tasks"`
	Notes       NoteSummary `json:"notes"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// TaskSummary contains task statistics for a single day.
type TaskSummary struct {
	Scheduled      []storage.Task `json:"scheduled"`
	Completed      []storage.Task `json:"completed"`
	ScheduledCount int            `json:"scheduled_count"`
	CompletedCount int            `json:"completed_count"`
	AddedCount     int            `json:"added_count"`
	CompletionRate float64        `json:"completion_rate"`
}

// WeeklyTasks contains task statistics for a week.
type WeeklyTasks struct {
	TotalScheduled int            `json:"total_scheduled"`
	TotalCompleted int            `json:"total_completed"`
	TotalAdded     int            `json:"total_added"`
	CompletionRate float64        `json:"completion_rate"`
	ByDay          []DayTaskCount `json:"by_day"`
}

// DayTaskCount represents task counts for a specific day.
type DayTaskCount struct {
	Date      string `json:"date"`
	DayOfWeek string `json:"day_of_week"`
	Scheduled int    `json:"scheduled"`
	Completed int    `json:"completed"`
	Added     int    `json:"added"`
}

// NoteSummary contains note activity for a period.
type NoteSummary struct {
	CreatedCount int `json:"created_count"`
	UpdatedCount int `json:"updated_count"`
}
