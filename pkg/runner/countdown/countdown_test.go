package countdown

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/muesli/termenv"

	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/timer"
)

func TestRingsAndReturnsToIdle(t *testing.T) {
	color.NoColor = true
	start := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)
	tm := timer.New(1)
	tm.Now = func() time.Time { return start }

	ticks := make(chan time.Time, 2)
	ticks <- start.Add(30 * time.Second)
	ticks <- start.Add(61 * time.Second)

	var buf bytes.Buffer
	off := false
	pr, _ := io.Pipe()
	c := &Countdown{
		Timer:   tm,
		Printer: &printers.PrettyPrint{Out: &buf, Profile: termenv.Ascii},
		Input:   pr,
		Ticks:   ticks,
		TTY:     &off,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Do(ctx); err != nil {
		t.Fatal(err)
	}
	if tm.State() != timer.Idle {
		t.Fatalf("state %s after alarm, want idle", tm.State())
	}
	out := buf.String()
	if !strings.Contains(out, "running") || !strings.Contains(out, "alarm") {
		t.Fatalf("output:\n%s", out)
	}
	if strings.Contains(out, "\a") {
		t.Fatal("rang the bell without a terminal")
	}
}

func TestQuit(t *testing.T) {
	color.NoColor = true
	tm := timer.New(25)
	var buf bytes.Buffer
	off := false
	c := &Countdown{
		Timer:   tm,
		Printer: &printers.PrettyPrint{Out: &buf, Profile: termenv.Ascii},
		Input:   strings.NewReader("p\nq\n"),
		Ticks:   make(chan time.Time),
		TTY:     &off,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Do(ctx); err != nil {
		t.Fatal(err)
	}
	if tm.State() != timer.Paused {
		t.Fatalf("state %s, want paused", tm.State())
	}
	if !strings.Contains(buf.String(), "paused") {
		t.Fatalf("output:\n%s", buf.String())
	}
}
