package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/habits"
	"tableflip.dev/planner/pkg/timer"
	"tableflip.dev/planner/pkg/timeutil"
)

var (
	barLow  = colorful.Color{R: 0.94, G: 0.27, B: 0.27} // #EF4444
	barHigh = colorful.Color{R: 0.06, G: 0.73, B: 0.51} // #10B981
)

// Bar draws a percentage bar of n cells, shaded from red to green.
func (pp *PrettyPrint) Bar(percent, n int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := (percent*n + 50) / 100
	shade := barLow.BlendLab(barHigh, float64(percent)/100).Clamped().Hex()
	full := termenv.String(strings.Repeat("█", filled)).Foreground(pp.Profile.Color(shade)).String()
	return fmt.Sprintf("%s%s %3d%%", full, strings.Repeat("░", n-filled), percent)
}

// HabitGrid prints one row per habit of monthKey with a mark for every day:
// done, missed (past) or pending (future).
func (pp *PrettyPrint) HabitGrid(all []entity.Habit, monthKey string, today time.Time) {
	list := habits.InMonth(all, monthKey)
	first, err := timeutil.ParseMonthKey(monthKey, nil)
	if err != nil || len(list) == 0 {
		pp.none()
		return
	}
	days := timeutil.MonthDays(first)
	limit := timeutil.FormatDate(today)

	done := color.New(color.FgGreen, color.Bold)
	missed := color.New(color.Faint)
	pending := color.New(color.Faint, color.Italic)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	header := make([]string, len(days))
	for i, d := range days {
		header[i] = fmt.Sprintf("%d", d.Day()%10)
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	if pp.ShowID {
		tbl.AddRow("", "", missed.Sprint(strings.Join(header, "")))
	} else {
		tbl.AddRow("", missed.Sprint(strings.Join(header, "")))
	}
	for _, h := range list {
		var b strings.Builder
		for _, d := range days {
			key := timeutil.FormatDate(d)
			switch {
			case h.Done(key):
				b.WriteString(done.Sprint("●"))
			case key > limit:
				b.WriteString(pending.Sprint("·"))
			default:
				b.WriteString(missed.Sprint("○"))
			}
		}
		if pp.ShowID {
			tbl.AddRow(y.Sprint(h.ID), h.Name, b.String())
		} else {
			tbl.AddRow(h.Name, b.String())
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// HabitSummary prints overall, weekly and per-habit progress.
func (pp *PrettyPrint) HabitSummary(s habits.Summary) {
	bold := color.New(color.Bold)
	_, _ = bold.Fprint(pp.out(), "Overall  ")
	_, _ = fmt.Fprintln(pp.out(), pp.Bar(s.Overall, 20))
	pp.NewLine()

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, w := range s.Weeks {
		tbl.AddRow(w.Label, fmt.Sprintf("%s - %s", w.Start[8:], w.End[8:]), pp.Bar(w.Percent, 10))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()

	if len(s.PerHabit) == 0 {
		return
	}
	tbl = uitable.New()
	tbl.Separator = "  "
	for _, h := range s.PerHabit {
		tbl.AddRow(h.Habit.Name, fmt.Sprintf("%d/%d", h.Completed, h.Days), pp.Bar(h.Percent, 10), fmt.Sprintf("streak %d", h.Streak))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Timer prints a one-line countdown.
func (pp *PrettyPrint) Timer(s timer.Status) string {
	state := color.New(color.Bold)
	switch s.State {
	case timer.Alarm:
		state = color.New(color.FgRed, color.Bold, color.BlinkSlow)
	case timer.Paused:
		state = color.New(color.FgYellow)
	case timer.Running:
		state = color.New(color.FgGreen, color.Bold)
	}
	return fmt.Sprintf("%s %s %s", state.Sprintf("%-7s", s.Name), timeutil.FormatClockDown(s.Remaining), pp.Bar(s.Progress, 20))
}
