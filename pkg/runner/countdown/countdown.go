// Package countdown runs the focus timer in the terminal.
package countdown

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"

	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/timer"
)

// Countdown drives a timer.Timer until it rings or the user quits. Input is
// read a line at a time: p pauses or resumes, r resets, q quits.
type Countdown struct {
	Timer   *timer.Timer
	Printer *printers.PrettyPrint

	// Input defaults to os.Stdin.
	Input io.Reader
	// Ticks drives redraws; nil means a one second ticker.
	Ticks <-chan time.Time
	// TTY redraws in place and rings the bell; nil detects stdout.
	TTY *bool
}

func (c *Countdown) tty() bool {
	if c.TTY != nil {
		return *c.TTY
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Do starts the timer and blocks until the alarm, a quit or ctx ends.
func (c *Countdown) Do(ctx context.Context) error {
	tty := c.tty()
	if err := c.Timer.Start(); err != nil {
		return err
	}

	ticks := c.Ticks
	if ticks == nil {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		ticks = ticker.C
	}
	keys := readKeys(ctx, c.input())

	last := timer.State(-1)
	draw := func(now time.Time) {
		s := c.Timer.Status(now)
		switch {
		case tty:
			c.Printer.Printf("\r%s ", c.Printer.Timer(s))
		case s.State != last:
			c.Printer.Printf("%s\n", c.Printer.Timer(s))
		}
		last = s.State
	}
	draw(c.now())

	for {
		select {
		case <-ctx.Done():
			c.Printer.NewLine()
			return nil
		case now := <-ticks:
			if c.Timer.Tick(now) == timer.Alarm {
				draw(now)
				if tty {
					c.Printer.Printf("\a")
				}
				c.Printer.NewLine()
				return c.Timer.Acknowledge()
			}
			draw(now)
		case key, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			switch key {
			case "p", " ":
				if err := c.Timer.Toggle(); err != nil {
					log.WithError(err).Debug("countdown: toggle")
				}
			case "r":
				c.Timer.Reset()
				if err := c.Timer.Start(); err != nil {
					return err
				}
			case "q":
				c.Printer.NewLine()
				return nil
			}
			draw(c.now())
		}
	}
}

func (c *Countdown) now() time.Time {
	if c.Timer.Now != nil {
		return c.Timer.Now()
	}
	return time.Now()
}

func (c *Countdown) input() io.Reader {
	if c.Input == nil {
		return os.Stdin
	}
	return c.Input
}

func readKeys(ctx context.Context, r io.Reader) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			key := strings.ToLower(strings.TrimSpace(scanner.Text()))
			if key == "" {
				key = " "
			}
			select {
			case out <- key[:1]:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
