package notify

import (
	"fmt"
	"sync"
	"time"
)

const reminderTitle = "Task Reminder"

// Scheduler fires task reminders at their trigger instant via the platform
// notifier. Handles are opaque; an empty handle means nothing was scheduled.
// Scheduling never fails: an unsupported platform or a non-future trigger
// yields an empty handle, not an error.
type Scheduler struct {
	mu       sync.Mutex
	notifier Notifier
	timers   map[string]*time.Timer
	seq      uint64

	// Delivery channel configuration, adjusted live from the settings
	// surface. Vibration has no terminal equivalent; it is accepted and
	// remembered so settings round-trip, but only sound affects delivery.
	sound     bool
	vibration bool

	now func() time.Time
}

// NewScheduler creates a Scheduler delivering through n with sound enabled.
func NewScheduler(n Notifier) *Scheduler {
	return &Scheduler{
		notifier:  n,
		timers:    map[string]*time.Timer{},
		sound:     true,
		vibration: true,
		now:       time.Now,
	}
}

// SetNowFunc overrides the clock used to decide whether a trigger is in the
// future. Passing nil resets it to time.Now.
func (s *Scheduler) SetNowFunc(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// Configure adjusts the delivery channel. Safe to call at any time; pending
// timers pick up the new configuration when they fire.
func (s *Scheduler) Configure(sound, vibration bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sound = sound
	s.vibration = vibration
}

// Schedule arms a reminder for the task title at the trigger instant and
// returns its cancellation handle. Returns "" without scheduling when the
// instant is not strictly in the future.
func (s *Scheduler) Schedule(title string, at time.Time, sound bool) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	delay := at.Sub(s.now())
	if delay <= 0 {
		return ""
	}

	s.seq++
	id := fmt.Sprintf("sched_%d_%d", at.UnixMilli(), s.seq)

	s.timers[id] = time.AfterFunc(delay, func() {
		s.fire(id, title, sound)
	})

	return id
}

// Cancel stops the reminder with the given handle. Unknown, already-fired,
// already-cancelled, and empty handles are silent no-ops.
func (s *Scheduler) Cancel(id string) {
	if id == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}
}

// Stop cancels every pending reminder. Called on shutdown.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}

// Pending reports how many reminders are armed.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *Scheduler) fire(id, title string, sound bool) {
	s.mu.Lock()
	delete(s.timers, id)
	withSound := sound && s.sound
	s.mu.Unlock()

	message := "Don't forget: " + title
	if withSound {
		_ = s.notifier.SendWithSound(reminderTitle, message)
		return
	}
	_ = s.notifier.Send(reminderTitle, message)
}
