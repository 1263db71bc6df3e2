// Package cal holds the runners behind `planner cal`.
package cal

import (
	"context"
	"time"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/dnd"
	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/printers"
)

// Show prints the calendar at Granularity around On, moved Step periods.
type Show struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	JSON    bool

	Granularity calendar.Granularity
	On          time.Time
	Step        int
	// Drill opens a month of On's year from the year view.
	Drill    time.Month
	MonthCap int
	// Sidebar also lists unscheduled tasks.
	Sidebar bool
	Now     time.Time
}

// Do runs the show.
func (n *Show) Do(_ context.Context) error {
	now := n.Now
	if now.IsZero() {
		now = time.Now()
	}
	on := n.On
	if on.IsZero() {
		on = now
	}
	nav := calendar.NewNavigator(n.Granularity, on).Step(n.Step)
	if n.Drill != 0 {
		nav = nav.DrillFromYear(n.Drill)
	}
	view := calendar.Derive(nav, n.Service.Tasks(), calendar.Options{Now: now, MonthCap: n.MonthCap})
	if n.JSON {
		return n.Printer.JSON(view)
	}
	n.Printer.Calendar(view, n.Service.ColorFor)
	if n.Sidebar {
		n.Printer.Unscheduled(n.Service.Unscheduled(app.AllProjects), n.Service.ColorFor)
	}
	return nil
}

// Drop moves a task onto a calendar cell, a slot or the unscheduled list,
// the way a drag and drop would.
type Drop struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	JSON    bool

	ID     string
	Target dnd.Target
}

// Do runs the drop.
func (n *Drop) Do(ctx context.Context) error {
	t, err := dnd.Apply(ctx, n.Service, n.ID, n.Target)
	if err != nil {
		return err
	}
	if n.JSON {
		return n.Printer.JSON(t)
	}
	n.Printer.Title("Dropped on " + n.Target.String())
	n.Printer.Tasks([]entity.Task{t}, n.Service.ColorFor)
	return nil
}
