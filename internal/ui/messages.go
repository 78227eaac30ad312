// Package ui provides terminal user interface components for the taskpad app.
// This file defines the message types flowing through the Bubble Tea event
// loop. The task store is a single-writer store, so mutations run directly on
// the event loop inside Update; messages carry results and cross-pane
// refresh notifications rather than deferred I/O.
package ui

import "time"

// tickMsg is sent periodically for time updates and status expiry.
type tickMsg time.Time

// statusMsg requests a transient message on the status line.
type statusMsg struct {
	text  string
	isErr bool
}

// tasksChangedMsg is sent after any task mutation so every pane showing a
// task projection can clamp its cursor.
type tasksChangedMsg struct{}

// notesChangedMsg is sent after any note mutation.
type notesChangedMsg struct{}

// settingsChangedMsg is sent after a settings update or reset.
type settingsChangedMsg struct{}

// requestClearAllMsg asks the app to confirm and run the clear-all action.
type requestClearAllMsg struct{}

// clearedAllMsg is sent after the clear-all-data action completes.
type clearedAllMsg struct{}
