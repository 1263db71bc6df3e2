// Package today prints the dashboard.
package today

import (
	"context"
	"time"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/habits"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/timeutil"
)

// Today gathers the dashboard from the store.
type Today struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	JSON    bool

	Filter app.TaskFilter
	Limit  int
	Now    time.Time
}

// Build assembles the dashboard without printing it.
func (n *Today) Build() printers.Dashboard {
	now := n.Now
	if now.IsZero() {
		now = time.Now()
	}
	return printers.Dashboard{
		Today:    now,
		Schedule: n.Service.TodaysSchedule(),
		Upcoming: n.Service.Widget(n.Filter, n.Limit),
		Overdue:  n.Service.OverdueTasks(),
		Projects: n.Service.ProjectStats(),
		Habits:   habits.Summarize(n.Service.Habits(), timeutil.MonthKey(now), now),
		Month:    calendar.MonthView(now, n.Service.Tasks(), calendar.Options{Now: now}),
	}
}

// Do prints the dashboard.
func (n *Today) Do(_ context.Context) error {
	d := n.Build()
	if n.JSON {
		return n.Printer.JSON(d)
	}
	n.Printer.Dashboard(d, n.Service.ColorFor)
	return nil
}
