// Package habit holds the runners behind `planner habit`.
package habit

import (
	"context"
	"fmt"
	"time"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/habits"
	"tableflip.dev/planner/pkg/printers"
)

// Add creates a habit in Month.
type Add struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	JSON    bool

	Name  string
	Month string
}

// Do runs the add.
func (n *Add) Do(ctx context.Context) error {
	h, err := n.Service.AddHabit(ctx, entity.HabitDraft{Name: n.Name, MonthKey: n.Month})
	if err != nil {
		return err
	}
	if n.JSON {
		return n.Printer.JSON(h)
	}
	return (&List{Service: n.Service, Printer: n.Printer, Month: h.MonthKey}).Do(ctx)
}

// List prints the month's habit grid.
type List struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	JSON    bool

	Month string
	Today time.Time
}

// Do runs the list.
func (n *List) Do(_ context.Context) error {
	list := n.Service.HabitsForMonth(n.Month)
	if n.JSON {
		return n.Printer.JSON(list)
	}
	n.Printer.TitleWithCount("Habits "+n.Month, len(list), "habit")
	n.Printer.HabitGrid(list, n.Month, today(n.Today))
	return nil
}

func today(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

// Toggle flips completion on Date for the habit.
type Toggle struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	JSON    bool

	ID    string
	Date  string
	Today time.Time
}

// Do runs the toggle.
func (n *Toggle) Do(ctx context.Context) error {
	h, err := n.Service.ToggleHabitCompletion(ctx, n.ID, n.Date)
	if err != nil {
		return err
	}
	if n.JSON {
		return n.Printer.JSON(h)
	}
	state := "not done"
	if h.Done(n.Date) {
		state = "done"
	}
	n.Printer.Title(fmt.Sprintf("%s on %s: %s", h.Name, n.Date, state))
	n.Printer.HabitGrid([]entity.Habit{h}, h.MonthKey, today(n.Today))
	return nil
}

// Rename changes a habit's name.
type Rename struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	JSON    bool

	ID   string
	Name string
}

// Do runs the rename.
func (n *Rename) Do(ctx context.Context) error {
	h, err := n.Service.UpdateHabitName(ctx, n.ID, n.Name)
	if err != nil {
		return err
	}
	if n.JSON {
		return n.Printer.JSON(h)
	}
	n.Printer.Title("Renamed to " + h.Name)
	return nil
}

// Remove deletes habits.
type Remove struct {
	Service *app.Service
	Printer *printers.PrettyPrint

	IDs []string
}

// Do runs the delete.
func (n *Remove) Do(ctx context.Context) error {
	for _, id := range n.IDs {
		if err := n.Service.DeleteHabit(ctx, id); err != nil {
			return err
		}
	}
	n.Printer.TitleWithCount("Removed", len(n.IDs), "habit")
	return nil
}

// Copy starts month To with fresh copies of month From's habits.
type Copy struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	JSON    bool

	From string
	To   string
}

// Do runs the copy.
func (n *Copy) Do(ctx context.Context) error {
	created, err := n.Service.CopyHabitsToMonth(ctx, n.From, n.To)
	if err != nil {
		return err
	}
	if n.JSON {
		return n.Printer.JSON(created)
	}
	n.Printer.TitleWithCount(fmt.Sprintf("Copied %s to %s", n.From, n.To), len(created), "habit")
	for _, h := range created {
		n.Printer.Printf("  %s\n", h.Name)
	}
	return nil
}

// Progress prints the month's progress chart.
type Progress struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	JSON    bool

	Month string
	Today time.Time
}

// Do runs the summary.
func (n *Progress) Do(_ context.Context) error {
	s := habits.Summarize(n.Service.Habits(), n.Month, today(n.Today))
	if n.JSON {
		return n.Printer.JSON(s)
	}
	n.Printer.Title("Habit progress " + n.Month)
	n.Printer.HabitSummary(s)
	return nil
}
