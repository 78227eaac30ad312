package notify

import (
	"sync"
	"testing"
	"time"
)

// recordingNotifier captures sends for assertions and signals each delivery.
type recordingNotifier struct {
	mu        sync.Mutex
	sends     []sentNotification
	delivered chan struct{}
}

type sentNotification struct {
	title   string
	message string
	sound   bool
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{delivered: make(chan struct{}, 16)}
}

func (r *recordingNotifier) Send(title, message string) error {
	r.record(title, message, false)
	return nil
}

func (r *recordingNotifier) SendWithSound(title, message string) error {
	r.record(title, message, true)
	return nil
}

func (r *recordingNotifier) IsSupported() bool { return true }

func (r *recordingNotifier) record(title, message string, sound bool) {
	r.mu.Lock()
	r.sends = append(r.sends, sentNotification{title: title, message: message, sound: sound})
	r.mu.Unlock()
	r.delivered <- struct{}{}
}

func (r *recordingNotifier) sent() []sentNotification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]sentNotification, len(r.sends))
	copy(out, r.sends)
	return out
}

func waitDelivered(t *testing.T, r *recordingNotifier) {
	t.Helper()
	select {
	case <-r.delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification delivery")
	}
}

func TestSchedule_PastTriggerReturnsEmptyHandle(t *testing.T) {
	rec := newRecordingNotifier()
	s := NewScheduler(rec)

	fixed := time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local)
	s.SetNowFunc(func() time.Time { return fixed })

	tests := []struct {
		name string
		at   time.Time
	}{
		{name: "in the past", at: fixed.Add(-time.Hour)},
		{name: "exactly now", at: fixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if id := s.Schedule("Task", tt.at, true); id != "" {
				t.Errorf("Schedule() = %q, want empty handle", id)
			}
		})
	}

	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", s.Pending())
	}
}

func TestSchedule_FutureTriggerFires(t *testing.T) {
	rec := newRecordingNotifier()
	s := NewScheduler(rec)
	defer s.Stop()

	id := s.Schedule("Water the plants", time.Now().Add(20*time.Millisecond), true)
	if id == "" {
		t.Fatal("Schedule() returned empty handle for future trigger")
	}
	if s.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", s.Pending())
	}

	waitDelivered(t, rec)

	sent := rec.sent()
	if len(sent) != 1 {
		t.Fatalf("len(sent) = %d, want 1", len(sent))
	}
	if sent[0].title != "Task Reminder" {
		t.Errorf("title = %q, want %q", sent[0].title, "Task Reminder")
	}
	if sent[0].message != "Don't forget: Water the plants" {
		t.Errorf("message = %q, want %q", sent[0].message, "Don't forget: Water the plants")
	}
	if !sent[0].sound {
		t.Error("expected delivery with sound")
	}

	if s.Pending() != 0 {
		t.Errorf("Pending() = %d after fire, want 0", s.Pending())
	}
}

func TestCancel_StopsPendingReminder(t *testing.T) {
	rec := newRecordingNotifier()
	s := NewScheduler(rec)
	defer s.Stop()

	id := s.Schedule("Cancelled task", time.Now().Add(30*time.Millisecond), false)
	if id == "" {
		t.Fatal("Schedule() returned empty handle")
	}

	s.Cancel(id)
	if s.Pending() != 0 {
		t.Fatalf("Pending() = %d after cancel, want 0", s.Pending())
	}

	// Give the timer deadline time to pass, then confirm nothing fired.
	time.Sleep(80 * time.Millisecond)
	if got := rec.sent(); len(got) != 0 {
		t.Errorf("cancelled reminder fired anyway: %+v", got)
	}
}

func TestCancel_UnknownHandlesAreNoOps(t *testing.T) {
	s := NewScheduler(newRecordingNotifier())
	defer s.Stop()

	s.Cancel("")
	s.Cancel("sched_0_0")

	id := s.Schedule("Task", time.Now().Add(time.Hour), false)
	s.Cancel(id)
	s.Cancel(id) // second cancel of the same handle
}

func TestConfigure_SoundOffSilencesDelivery(t *testing.T) {
	rec := newRecordingNotifier()
	s := NewScheduler(rec)
	defer s.Stop()

	s.Configure(false, true)

	id := s.Schedule("Quiet task", time.Now().Add(20*time.Millisecond), true)
	if id == "" {
		t.Fatal("Schedule() returned empty handle")
	}

	waitDelivered(t, rec)

	sent := rec.sent()
	if len(sent) != 1 {
		t.Fatalf("len(sent) = %d, want 1", len(sent))
	}
	if sent[0].sound {
		t.Error("sound channel disabled, delivery should be silent")
	}
}

func TestSchedule_HandlesAreUnique(t *testing.T) {
	s := NewScheduler(newRecordingNotifier())
	defer s.Stop()

	at := time.Now().Add(time.Hour)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		id := s.Schedule("Task", at, false)
		if id == "" {
			t.Fatal("Schedule() returned empty handle")
		}
		if seen[id] {
			t.Fatalf("duplicate handle %q", id)
		}
		seen[id] = true
	}

	if s.Pending() != 20 {
		t.Fatalf("Pending() = %d, want 20", s.Pending())
	}

	s.Stop()
	if s.Pending() != 0 {
		t.Fatalf("Pending() = %d after Stop, want 0", s.Pending())
	}
}
