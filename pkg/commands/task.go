package commands

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/entity"
	"tableflip.dev/planner/pkg/prompt"
	"tableflip.dev/planner/pkg/runner/task"
	"tableflip.dev/planner/pkg/timeutil"
)

func addTask(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks", "t"},
		Short:   "Add, list, schedule and complete tasks.",
		Example: `
planner task add Write the report --on=tomorrow --at=09:30 -e 1h
planner task list --filter=week
planner task done <id>
`,
	}

	addTaskAdd(cmd)
	addTaskList(cmd)
	addTaskShow(cmd)
	addTaskEdit(cmd)
	addTaskDone(cmd)
	addTaskRemove(cmd)
	addTaskSchedule(cmd)
	addTaskUnschedule(cmd)
	addTaskRollover(cmd)
	addTaskReport(cmd)

	topLevel.AddCommand(cmd)
}

func addTaskAdd(parent *cobra.Command) {
	to := &options.TaskOptions{}
	io := &options.InteractiveOptions{}
	name := ""

	cmd := &cobra.Command{
		Use:   "add NAME...",
		Short: "Add a task.",
		Example: `
planner task add Call the bank
planner task add Review PR --project=<id> --priority=high --urgency=low
planner task add -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !io.Interactive && name == "" {
				return errors.New("requires a task name")
			}
			if name == "" {
				name = strings.Join(args, " ")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, s, err := openService(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			if io.Interactive {
				p := prompt.For(cmd)
				if err := p.Flags(cmd.Flags(), "name", "notes", "priority", "urgency", "estimate", "on", "at"); err != nil {
					return output.HandleError(err)
				}
				if to.ProjectID == "" && len(svc.Projects()) > 1 {
					if to.ProjectID, err = p.Project(svc.Projects()); err != nil {
						return output.HandleError(err)
					}
				}
			}
			draft, err := taskDraft(name, to, time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			r := task.Add{
				Service: svc,
				Printer: newPrinter(s, true),
				JSON:    output.JSON,
				Draft:   draft,
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Task name; defaults to the arguments.")
	options.AddTaskArgs(cmd, to)
	options.InteractiveArgs(cmd, io)
	registerProjectCompletion(cmd, "project")
	parent.AddCommand(cmd)
}

// taskDraft turns the flags into a draft. Dates and times are checked by the
// service.
func taskDraft(name string, to *options.TaskOptions, now time.Time) (entity.TaskDraft, error) {
	date, err := to.On.Date(now)
	if err != nil {
		return entity.TaskDraft{}, err
	}
	minutes, err := estimateMinutes(to.Estimate)
	if err != nil {
		return entity.TaskDraft{}, err
	}
	return entity.TaskDraft{
		Name:             name,
		Notes:            to.Notes,
		Priority:         to.Priority,
		Urgency:          to.Urgency,
		EstimatedMinutes: minutes,
		ProjectID:        to.ProjectID,
		ScheduledDate:    date,
		ScheduledTime:    to.At,
	}, nil
}

// estimateMinutes reads a human duration; empty leaves the default.
func estimateMinutes(raw string) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	d, _, err := timeutil.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return int(d / time.Minute), nil
}

func addTaskList(parent *cobra.Command) {
	ido := &options.IDOptions{}
	filter := ""
	projectID := ""
	open := false

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks.",
		Example: `
planner task list
planner task list --filter=today --open
planner task list --filter=no-date --project=<id>
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := app.ParseTaskFilter(filter)
			if err != nil {
				return output.HandleError(err)
			}
			svc, s, err := openService(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			r := task.List{
				Service:   svc,
				Printer:   newPrinter(s, ido.ShowID),
				JSON:      output.JSON,
				Filter:    f,
				ProjectID: projectID,
				Open:      open,
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "all",
		"Date filter: all, today, week, month, no-date or overdue.")
	cmd.Flags().StringVarP(&projectID, "project", "p", "", "Only tasks of this project.")
	cmd.Flags().BoolVar(&open, "open", false, "Hide completed tasks.")
	options.AddShowIDArgs(cmd, ido)
	registerProjectCompletion(cmd, "project")
	parent.AddCommand(cmd)
}

func addTaskShow(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a task with its notes.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, s, err := openService(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			r := task.Show{
				Service: svc,
				Printer: newPrinter(s, true),
				JSON:    output.JSON,
				ID:      args[0],
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}
	parent.AddCommand(cmd)
}

func addTaskEdit(parent *cobra.Command) {
	to := &options.TaskOptions{}
	name := ""
	completed := false

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a task. Only the flags given are changed.",
		Example: `
planner task edit <id> --name="Call the bank again"
planner task edit <id> --priority=high --estimate=2h
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := taskPatch(cmd, to, name, completed)
			if err != nil {
				return output.HandleError(err)
			}
			svc, s, err := openService(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			r := task.Edit{
				Service: svc,
				Printer: newPrinter(s, true),
				JSON:    output.JSON,
				ID:      args[0],
				Patch:   patch,
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name.")
	cmd.Flags().BoolVar(&completed, "completed", false, "Mark completed or, with =false, open.")
	options.AddTaskArgs(cmd, to)
	registerProjectCompletion(cmd, "project")
	parent.AddCommand(cmd)
}

// taskPatch collects the flags the user actually set.
func taskPatch(cmd *cobra.Command, to *options.TaskOptions, name string, completed bool) (entity.TaskPatch, error) {
	var p entity.TaskPatch
	flags := cmd.Flags()
	if flags.Changed("name") {
		p.Name = &name
	}
	if flags.Changed("notes") {
		p.Notes = &to.Notes
	}
	if flags.Changed("project") {
		p.ProjectID = &to.ProjectID
	}
	if flags.Changed("priority") {
		p.Priority = &to.Priority
	}
	if flags.Changed("urgency") {
		p.Urgency = &to.Urgency
	}
	if flags.Changed("completed") {
		p.Completed = &completed
	}
	if flags.Changed("estimate") {
		minutes, err := estimateMinutes(to.Estimate)
		if err != nil {
			return p, err
		}
		p.EstimatedMinutes = &minutes
	}
	if flags.Changed("on") {
		date, err := to.On.Date(time.Now())
		if err != nil {
			return p, err
		}
		p.ScheduledDate = &date
	}
	if flags.Changed("at") {
		p.ScheduledTime = &to.At
	}
	return p, nil
}

func addTaskDone(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "done ID...",
		Aliases: []string{"complete", "x"},
		Short:   "Toggle completion of tasks.",
		Example: `
planner task done <id> <id>
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, s, err := openService(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			r := task.Done{
				Service: svc,
				Printer: newPrinter(s, true),
				JSON:    output.JSON,
				IDs:     args,
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}
	parent.AddCommand(cmd)
}

func addTaskRemove(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm ID...",
		Aliases: []string{"delete"},
		Short:   "Delete tasks.",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, s, err := openService(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			r := task.Remove{
				Service: svc,
				Printer: newPrinter(s, false),
				IDs:     args,
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}
	parent.AddCommand(cmd)
}

func addTaskSchedule(parent *cobra.Command) {
	oo := &options.OnOptions{}
	at := ""

	cmd := &cobra.Command{
		Use:   "schedule ID",
		Short: "Move a task to a date. The time of day is kept unless --at is given.",
		Example: `
planner task schedule <id> --on=tomorrow
planner task schedule <id> --on=2024-3-20 --at=14:00
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if oo.OnString == "" {
				return output.HandleError(errors.New("requires --on"))
			}
			date, err := oo.Date(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			svc, s, err := openService(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			r := task.Schedule{
				Service: svc,
				Printer: newPrinter(s, true),
				JSON:    output.JSON,
				ID:      args[0],
				Date:    date,
			}
			if cmd.Flags().Changed("at") {
				r.Clock = &at
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, oo)
	cmd.Flags().StringVar(&at, "at", "", "Time of day as HH:MM; empty clears it.")
	parent.AddCommand(cmd)
}

func addTaskUnschedule(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "unschedule ID",
		Short: "Clear a task's date and time.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, s, err := openService(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			r := task.Unschedule{
				Service: svc,
				Printer: newPrinter(s, true),
				JSON:    output.JSON,
				ID:      args[0],
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}
	parent.AddCommand(cmd)
}

func addTaskRollover(parent *cobra.Command) {
	dryRun := false

	cmd := &cobra.Command{
		Use:   "rollover",
		Short: "Move overdue open tasks to today.",
		Example: `
planner task rollover --dry-run
planner task rollover
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, s, err := openService(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			r := task.Rollover{
				Service: svc,
				Printer: newPrinter(s, true),
				JSON:    output.JSON,
				DryRun:  dryRun,
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only list the overdue tasks.")
	parent.AddCommand(cmd)
}

func addTaskReport(parent *cobra.Command) {
	window := timeutil.DefaultWindow

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarise completed tasks over a window.",
		Example: `
planner task report
planner task report --window=30d
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, _, err := timeutil.ParseDuration(window)
			if err != nil {
				return output.HandleError(err)
			}
			svc, s, err := openService(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			r := task.Report{
				Service: svc,
				Printer: newPrinter(s, false),
				JSON:    output.JSON,
				Window:  d,
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&window, "window", "w", timeutil.DefaultWindow,
		`How far back to look, example: --window=1w or --window=30d.`)
	parent.AddCommand(cmd)
}
