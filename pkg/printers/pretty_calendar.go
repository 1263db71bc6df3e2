package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/timeutil"
)

// Working hours shown by the day view even when empty.
const (
	dayFirstSlot = 12 // 06:00
	dayLastSlot  = 44 // 22:00
)

const width = len("11 12 13 14 15 16 17") // an example week

// Calendar prints whichever view is set.
func (pp *PrettyPrint) Calendar(v calendar.View, colorFor func(string) string) {
	pp.Title(v.Title)
	switch {
	case v.Day != nil:
		pp.Day(v.Day.Column, colorFor)
	case v.Week != nil:
		pp.Week(*v.Week, colorFor)
	case v.Month != nil:
		pp.Month(*v.Month, colorFor)
	case v.Year != nil:
		pp.Year(*v.Year)
	}
}

// Day prints the slot grid from 06:00 to 22:00, widened to any slot with a
// task.
func (pp *PrettyPrint) Day(c calendar.Column, colorFor func(string) string) {
	first, last := dayFirstSlot, dayLastSlot
	for _, b := range c.Blocks {
		if b.Slot < first {
			first = b.Slot
		}
		if end := b.Slot + b.Span - 1; end > last {
			last = end
		}
	}
	if last >= calendar.SlotsPerDay {
		last = calendar.SlotsPerDay - 1
	}

	faint := color.New(color.Faint)
	hour := color.New(color.FgWhite)
	tbl := uitable.New()
	tbl.Separator = " "
	for i := first; i <= last; i++ {
		label := timeutil.FormatDisplayTime(calendar.SlotTime(i))
		if i%2 == 1 {
			label = faint.Sprint(label)
		} else {
			label = hour.Sprint(label)
		}
		tbl.AddRow(label, pp.slotLine(c, i, colorFor))
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func (pp *PrettyPrint) slotLine(c calendar.Column, slot int, colorFor func(string) string) string {
	var parts []string
	covered := false
	for _, b := range c.Blocks {
		switch {
		case b.Slot == slot:
			swatch := "│"
			if colorFor != nil {
				swatch = pp.Swatch(colorFor(b.Task.ProjectID))
			}
			name := truncate.StringWithTail(b.Task.Name, uint(pp.width()/2), "…")
			parts = append(parts, fmt.Sprintf("%s %s %s (%s)", swatch, checkbox(b.Task.Completed), name, timeutil.FormatDuration(b.Task.Estimate())))
		case b.Covers(slot):
			covered = true
		}
	}
	if len(parts) == 0 {
		if covered {
			return color.New(color.Faint).Sprint("│")
		}
		return color.New(color.Faint).Sprint("·")
	}
	return strings.Join(parts, "  ")
}

// Week prints each day of the week with its tasks in start order.
func (pp *PrettyPrint) Week(w calendar.Week, colorFor func(string) string) {
	p := color.New()
	b := color.New(color.Bold)
	faint := color.New(color.Faint, color.Italic)
	for _, c := range w.Columns {
		printer := p
		if c.IsToday {
			printer = b
		}
		_, _ = printer.Fprintf(pp.out(), "%s %2d\n", c.Date.Weekday().String()[:3], c.Date.Day())
		if len(c.Blocks) == 0 {
			_, _ = faint.Fprintln(pp.out(), "       -")
			continue
		}
		for _, s := range c.Slots {
			for _, t := range s.Tasks {
				swatch := " "
				if colorFor != nil {
					swatch = pp.Swatch(colorFor(t.ProjectID))
				}
				clock := "       "
				if t.ScheduledTime != "" {
					clock = fmt.Sprintf("%7s", timeutil.FormatDisplayTime(t.ScheduledTime))
				}
				_, _ = p.Fprintf(pp.out(), "  %s %s %s %s\n", clock, swatch, checkbox(t.Completed), t.Name)
			}
		}
	}
	pp.NewLine()
}

// Month prints one line per day, listing up to the cell cap and a "+K more"
// marker, Sundays underlined and today bold.
func (pp *PrettyPrint) Month(m calendar.Month, colorFor func(string) string) {
	p := color.New()
	b := color.New(color.Bold)
	s := color.New(color.Underline)
	bs := color.New(color.Underline, color.Bold)
	more := color.New(color.Faint, color.Italic)

	for _, c := range m.Days() {
		if !c.InMonth {
			continue
		}
		printer := p
		if c.IsToday {
			printer = b
		}
		if c.Date.Weekday() == 0 {
			printer = s
			if c.IsToday {
				printer = bs
			}
		}
		_, _ = printer.Fprintf(pp.out(), "%2d %s", c.Date.Day(), c.Date.Weekday().String()[0:1])

		for i, t := range c.Tasks {
			if i > 0 {
				_, _ = p.Fprint(pp.out(), "      ")
			} else {
				_, _ = p.Fprint(pp.out(), "  ")
			}
			swatch := " "
			if colorFor != nil {
				swatch = pp.Swatch(colorFor(t.ProjectID))
			}
			_, _ = p.Fprintf(pp.out(), "%s %s %s\n", swatch, checkbox(t.Completed), t.Name)
		}
		if c.More > 0 {
			_, _ = more.Fprintf(pp.out(), "        +%d more\n", c.More)
		}
		if len(c.Tasks) == 0 {
			_, _ = p.Fprintln(pp.out())
		}
	}
	pp.NewLine()
}

// MonthCount prints a compact month with busy days bold, the way a mini
// calendar does.
func (pp *PrettyPrint) MonthCount(m calendar.Month) {
	tf := color.New(color.FgWhite, color.Italic)
	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	name := m.Month.Month().String()
	mid := (width - len(name)) / 2
	_, _ = tf.Fprintf(pp.out(), "%s%s%s\n", strings.Repeat(" ", mid), name, strings.Repeat(" ", width-mid-len(name)))

	for _, week := range m.Weeks {
		for _, c := range week {
			switch {
			case !c.InMonth:
				_, _ = fmt.Fprint(pp.out(), "   ")
			case c.Total == 0:
				_, _ = l1.Fprintf(pp.out(), "%2d ", c.Date.Day())
			default:
				_, _ = l2.Fprintf(pp.out(), "%2d ", c.Date.Day())
			}
		}
		_, _ = fmt.Fprintln(pp.out())
	}
	pp.NewLine()
}

// Year prints task counts per month.
func (pp *PrettyPrint) Year(y calendar.Year) {
	peak := 0
	for _, m := range y.Months {
		if m.Count > peak {
			peak = m.Count
		}
	}
	faint := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, m := range y.Months {
		bar := faint.Sprint("-")
		if m.Count > 0 {
			n := m.Count * 20 / peak
			if n == 0 {
				n = 1
			}
			bar = strings.Repeat("▇", n)
		}
		tbl.AddRow(m.Month.String(), fmt.Sprintf("%d", m.Count), bar)
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Unscheduled prints the drag source list.
func (pp *PrettyPrint) Unscheduled(tasks []entity.Task, colorFor func(string) string) {
	pp.TitleWithCount("Unscheduled", len(tasks), "task")
	pp.Tasks(tasks, colorFor)
}
