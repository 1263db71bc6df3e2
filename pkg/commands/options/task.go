package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/entity"
)

// TaskOptions are the task fields settable from flags.
type TaskOptions struct {
	Notes     string
	ProjectID string
	Priority  entity.Level
	Urgency   entity.Level
	Estimate  string
	At        string
	On        OnOptions
}

func AddTaskArgs(cmd *cobra.Command, o *TaskOptions) {
	o.Priority, o.Urgency = entity.Medium, entity.Medium
	cmd.Flags().StringVar(&o.Notes, "notes", "",
		"Notes for the task, markdown allowed.")
	cmd.Flags().StringVarP(&o.ProjectID, "project", "p", "",
		"Project id; defaults to the first project.")
	cmd.Flags().Var(&o.Priority, "priority",
		"Priority: low, medium or high.")
	cmd.Flags().Var(&o.Urgency, "urgency",
		"Urgency: low, medium or high.")
	cmd.Flags().StringVarP(&o.Estimate, "estimate", "e", "",
		`Estimated effort, example: --estimate=45m or --estimate=1h30m.`)
	cmd.Flags().StringVar(&o.At, "at", "",
		`Time of day as HH:MM; needs --on.`)
	AddOnArgs(cmd, &o.On)
}
