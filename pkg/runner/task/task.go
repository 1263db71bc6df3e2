// Package task holds the runners behind `planner task`.
package task

import (
	"context"
	"fmt"
	"time"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/printers"
)

// Add creates a task and prints it.
type Add struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	JSON    bool

	Draft entity.TaskDraft
}

// Do runs the add.
func (n *Add) Do(ctx context.Context) error {
	t, err := n.Service.AddTask(ctx, n.Draft)
	if err != nil {
		return err
	}
	return show(n.Printer, n.JSON, n.Service, t)
}

// List prints tasks matching a date filter and, optionally, a project.
type List struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	JSON    bool

	Filter    app.TaskFilter
	ProjectID string
	// Open hides completed tasks.
	Open bool
}

// Do runs the list.
func (n *List) Do(_ context.Context) error {
	tasks := n.Service.FilterTasks(n.Filter)
	out := make([]entity.Task, 0, len(tasks))
	for _, t := range tasks {
		if n.ProjectID != "" && t.ProjectID != n.ProjectID {
			continue
		}
		if n.Open && t.Completed {
			continue
		}
		out = append(out, t)
	}
	if n.JSON {
		return n.Printer.JSON(out)
	}
	title := "Tasks"
	if n.Filter != app.FilterAll {
		title = fmt.Sprintf("Tasks (%s)", n.Filter)
	}
	n.Printer.TitleWithCount(title, len(out), "task")
	n.Printer.Tasks(out, n.Service.ColorFor)
	return nil
}

// Show prints one task with its notes.
type Show struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	JSON    bool

	ID string
}

// Do runs the show.
func (n *Show) Do(_ context.Context) error {
	t, err := n.Service.Task(n.ID)
	if err != nil {
		return err
	}
	return show(n.Printer, n.JSON, n.Service, t)
}

func show(pp *printers.PrettyPrint, asJSON bool, svc *app.Service, t entity.Task) error {
	if asJSON {
		return pp.JSON(t)
	}
	p, err := svc.Project(t.ProjectID)
	if err != nil {
		p = entity.Project{ID: t.ProjectID, Name: "(missing project)", Color: entity.FallbackColor}
	}
	pp.Task(t, p)
	return nil
}

// Edit applies a patch.
type Edit struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	JSON    bool

	ID    string
	Patch entity.TaskPatch
}

// Do runs the edit.
func (n *Edit) Do(ctx context.Context) error {
	if n.Patch.Empty() {
		return fmt.Errorf("task: %w: nothing to change", app.ErrValidation)
	}
	t, err := n.Service.UpdateTask(ctx, n.ID, n.Patch)
	if err != nil {
		return err
	}
	return show(n.Printer, n.JSON, n.Service, t)
}

// Done toggles completion for each id.
type Done struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	JSON    bool

	IDs []string
}

// Do runs the toggle.
func (n *Done) Do(ctx context.Context) error {
	out := make([]entity.Task, 0, len(n.IDs))
	for _, id := range n.IDs {
		t, err := n.Service.ToggleTaskCompletion(ctx, id)
		if err != nil {
			return err
		}
		out = append(out, t)
	}
	if n.JSON {
		return n.Printer.JSON(out)
	}
	n.Printer.Tasks(out, n.Service.ColorFor)
	return nil
}

// Remove deletes each id.
type Remove struct {
	Service *app.Service
	Printer *printers.PrettyPrint

	IDs []string
}

// Do runs the delete.
func (n *Remove) Do(ctx context.Context) error {
	for _, id := range n.IDs {
		if err := n.Service.DeleteTask(ctx, id); err != nil {
			return err
		}
	}
	n.Printer.TitleWithCount("Removed", len(n.IDs), "task")
	return nil
}

// Schedule moves a task to a date, and to a time when Clock is set.
type Schedule struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	JSON    bool

	ID    string
	Date  string
	Clock *string
}

// Do runs the reschedule.
func (n *Schedule) Do(ctx context.Context) error {
	t, err := n.Service.RescheduleTask(ctx, n.ID, n.Date, n.Clock)
	if err != nil {
		return err
	}
	if n.JSON {
		return n.Printer.JSON(t)
	}
	n.Printer.Tasks([]entity.Task{t}, n.Service.ColorFor)
	return nil
}

// Unschedule clears a task's date and time.
type Unschedule struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	JSON    bool

	ID string
}

// Do runs the unschedule.
func (n *Unschedule) Do(ctx context.Context) error {
	t, err := n.Service.UnscheduleTask(ctx, n.ID)
	if err != nil {
		return err
	}
	if n.JSON {
		return n.Printer.JSON(t)
	}
	n.Printer.Tasks([]entity.Task{t}, n.Service.ColorFor)
	return nil
}

// Rollover moves overdue open tasks to today. DryRun only lists them.
type Rollover struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	JSON    bool

	DryRun bool
}

// Do runs the rollover.
func (n *Rollover) Do(ctx context.Context) error {
	tasks := n.Service.OverdueTasks()
	if !n.DryRun {
		var err error
		if tasks, err = n.Service.RollOverdue(ctx); err != nil {
			return err
		}
	}
	if n.JSON {
		return n.Printer.JSON(tasks)
	}
	title := "Rolled over"
	if n.DryRun {
		title = "Overdue"
	}
	n.Printer.TitleWithCount(title, len(tasks), "task")
	n.Printer.Tasks(tasks, n.Service.ColorFor)
	return nil
}

// Report prints completed tasks scheduled in the window ending Until.
type Report struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	JSON    bool

	Window time.Duration
	Until  time.Time
}

// Do runs the report.
func (n *Report) Do(_ context.Context) error {
	until := n.Until
	if until.IsZero() {
		until = time.Now()
	}
	r := n.Service.Report(until.Add(-n.Window), until)
	if n.JSON {
		return n.Printer.JSON(r)
	}
	n.Printer.Report(r)
	return nil
}
