package timer

import (
	"errors"
	"testing"
	"time"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTimer(minutes int) (*Timer, *clock) {
	c := &clock{t: time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)}
	tm := New(minutes)
	tm.Now = c.now
	return tm, c
}

func TestRunPauseResumeExpire(t *testing.T) {
	tm, c := newTimer(1)
	if tm.State() != Idle || tm.Remaining(c.t) != time.Minute {
		t.Fatalf("new timer should be idle with the full minute")
	}
	if err := tm.Start(); err != nil {
		t.Fatal(err)
	}
	c.advance(20 * time.Second)
	if got := tm.Remaining(c.t); got != 40*time.Second {
		t.Fatalf("remaining: %s", got)
	}
	if err := tm.Pause(); err != nil {
		t.Fatal(err)
	}
	c.advance(time.Hour)
	if tm.State() != Paused || tm.Remaining(c.t) != 40*time.Second {
		t.Fatal("paused timer should not move")
	}
	if err := tm.Start(); err != nil {
		t.Fatal(err)
	}
	c.advance(39 * time.Second)
	if got := tm.Tick(c.t); got != Running {
		t.Fatalf("expected still running, got %s", got)
	}
	c.advance(time.Second)
	if got := tm.Tick(c.t); got != Alarm {
		t.Fatalf("expected alarm, got %s", got)
	}
	if tm.Remaining(c.t) != 0 || tm.Progress(c.t) != 100 {
		t.Fatal("alarm should report nothing left")
	}
	if err := tm.Acknowledge(); err != nil {
		t.Fatal(err)
	}
	if tm.State() != Idle || tm.Remaining(c.t) != time.Minute {
		t.Fatal("acknowledge should return to a full idle timer")
	}
}

func TestInvalidTransitions(t *testing.T) {
	tm, _ := newTimer(5)
	if err := tm.Pause(); !errors.Is(err, ErrTransition) {
		t.Fatalf("pause idle: %v", err)
	}
	if err := tm.Acknowledge(); !errors.Is(err, ErrTransition) {
		t.Fatalf("acknowledge idle: %v", err)
	}
	_ = tm.Start()
	if err := tm.Start(); !errors.Is(err, ErrTransition) {
		t.Fatalf("start running: %v", err)
	}
	if _, err := tm.SetMinutes(10); !errors.Is(err, ErrTransition) {
		t.Fatalf("edit running: %v", err)
	}
}

func TestPauseAfterDeadlineAlarms(t *testing.T) {
	tm, c := newTimer(1)
	_ = tm.Start()
	c.advance(2 * time.Minute)
	if err := tm.Pause(); err != nil {
		t.Fatal(err)
	}
	if tm.State() != Alarm {
		t.Fatalf("expected alarm, got %s", tm.State())
	}
	if err := tm.Start(); !errors.Is(err, ErrTransition) {
		t.Fatalf("start during alarm: %v", err)
	}
}

func TestResetFromAnyState(t *testing.T) {
	tm, c := newTimer(2)
	_ = tm.Start()
	c.advance(30 * time.Second)
	tm.Reset()
	if tm.State() != Idle || tm.Remaining(c.t) != 2*time.Minute {
		t.Fatal("reset should restore the configured length")
	}
}

func TestSetMinutesClampsAndSilences(t *testing.T) {
	tm, c := newTimer(1)
	cases := map[int]int{0: 1, -5: 1, 45: 45, 1000: 999}
	for in, want := range cases {
		got, err := tm.SetMinutes(in)
		if err != nil || got != want || tm.Minutes() != want {
			t.Errorf("SetMinutes(%d) = %d, %v", in, got, err)
		}
	}
	_, _ = tm.SetMinutes(1)
	_ = tm.Start()
	c.advance(time.Minute)
	tm.Tick(c.t)
	if _, err := tm.SetMinutes(3); err != nil {
		t.Fatal(err)
	}
	if tm.State() != Idle || tm.Remaining(c.t) != 3*time.Minute {
		t.Fatal("editing should silence the alarm")
	}
	if New(0).Minutes() != 1 {
		t.Fatal("New should clamp")
	}
}

func TestStatusAndProgress(t *testing.T) {
	tm, c := newTimer(4)
	_ = tm.Toggle()
	c.advance(time.Minute)
	s := tm.Status(c.t)
	if s.State != Running || s.Progress != 25 || s.Remaining != 3*time.Minute {
		t.Fatalf("unexpected status %+v", s)
	}
	_ = tm.Toggle()
	if tm.State() != Paused {
		t.Fatal("toggle should pause")
	}
	if got := Idle.String() + Alarm.String(); got != "idlealarm" {
		t.Fatalf("got %q", got)
	}
}
