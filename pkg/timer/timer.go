// Package timer is the countdown state machine behind the focus timer.
//
// A Timer moves between Idle, Running, Paused and Alarm. It does not own a
// goroutine: callers drive it with Tick, which is how a running countdown
// notices that it has expired.
package timer

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultMinutes is the countdown length of a new timer.
	DefaultMinutes = 25
	// MinMinutes and MaxMinutes bound SetMinutes.
	MinMinutes = 1
	MaxMinutes = 999
)

// ErrTransition is returned when an action is not allowed in the current
// state.
var ErrTransition = errors.New("timer: invalid transition")

// State is the timer's phase.
type State int

const (
	Idle State = iota
	Running
	Paused
	Alarm
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Alarm:
		return "alarm"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Clamp limits minutes to [MinMinutes, MaxMinutes].
func Clamp(minutes int) int {
	if minutes < MinMinutes {
		return MinMinutes
	}
	if minutes > MaxMinutes {
		return MaxMinutes
	}
	return minutes
}

// Timer is a countdown. The zero value is not usable; call New.
type Timer struct {
	// Now is the clock; defaults to time.Now.
	Now func() time.Time

	mu        sync.Mutex
	state     State
	total     time.Duration
	remaining time.Duration
	deadline  time.Time
}

// New returns an idle timer of minutes, clamped.
func New(minutes int) *Timer {
	total := time.Duration(Clamp(minutes)) * time.Minute
	return &Timer{state: Idle, total: total, remaining: total}
}

func (t *Timer) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

// State returns the current phase without advancing the clock.
func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Total is the configured countdown length.
func (t *Timer) Total() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}

// Minutes is the configured length in minutes.
func (t *Timer) Minutes() int {
	return int(t.Total() / time.Minute)
}

// Start runs the countdown from Idle or resumes it from Paused.
func (t *Timer) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.state {
	case Idle, Paused:
		t.deadline = t.now().Add(t.remaining)
		t.state = Running
		return nil
	}
	return fmt.Errorf("%w: start while %s", ErrTransition, t.state)
}

// Pause freezes a running countdown. A countdown that has already run out
// goes to Alarm instead.
func (t *Timer) Pause() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Running {
		return fmt.Errorf("%w: pause while %s", ErrTransition, t.state)
	}
	if t.expire(t.now()) {
		return nil
	}
	t.remaining = t.deadline.Sub(t.now())
	t.state = Paused
	return nil
}

// Toggle starts or pauses, whichever applies.
func (t *Timer) Toggle() error {
	if t.State() == Running {
		return t.Pause()
	}
	return t.Start()
}

// Reset returns to Idle with the full configured length, from any state.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.idle()
}

func (t *Timer) idle() {
	t.state = Idle
	t.remaining = t.total
	t.deadline = time.Time{}
}

// Tick advances a running countdown to now and reports the resulting
// state. Expiry moves it to Alarm.
func (t *Timer) Tick(now time.Time) State {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == Running {
		t.expire(now)
	}
	return t.state
}

// expire moves to Alarm when the deadline has passed. Callers hold t.mu.
func (t *Timer) expire(now time.Time) bool {
	if now.Before(t.deadline) {
		return false
	}
	t.state = Alarm
	t.remaining = 0
	return true
}

// Acknowledge silences the alarm and returns to Idle.
func (t *Timer) Acknowledge() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Alarm {
		return fmt.Errorf("%w: acknowledge while %s", ErrTransition, t.state)
	}
	t.idle()
	return nil
}

// SetMinutes changes the configured length, clamped, and returns the value
// used. It is refused while running; from Paused or Alarm it resets to Idle,
// which also silences an alarm.
func (t *Timer) SetMinutes(minutes int) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == Running {
		return 0, fmt.Errorf("%w: edit while running", ErrTransition)
	}
	m := Clamp(minutes)
	t.total = time.Duration(m) * time.Minute
	t.idle()
	return m, nil
}

// Remaining is the time left at now.
func (t *Timer) Remaining(now time.Time) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remainingAt(now)
}

func (t *Timer) remainingAt(now time.Time) time.Duration {
	if t.state != Running {
		return t.remaining
	}
	left := t.deadline.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// Progress is the elapsed share of the countdown at now, 0 to 100.
func (t *Timer) Progress(now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return progress(t.total, t.remainingAt(now))
}

func progress(total, left time.Duration) int {
	if total <= 0 {
		return 0
	}
	p := int((100*(total-left) + total/2) / total)
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Status is a point-in-time view of the timer for rendering.
type Status struct {
	State     State         `json:"-"`
	Name      string        `json:"state"`
	Total     time.Duration `json:"total"`
	Remaining time.Duration `json:"remaining"`
	Progress  int           `json:"progress"`
}

// Status ticks the timer to now and reports where it stands.
func (t *Timer) Status(now time.Time) Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == Running {
		t.expire(now)
	}
	left := t.remainingAt(now)
	return Status{
		State:     t.state,
		Name:      t.state.String(),
		Total:     t.total,
		Remaining: left,
		Progress:  progress(t.total, left),
	}
}
