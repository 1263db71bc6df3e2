package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/today"
)

func addToday(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	filter := string(app.FilterToday)
	limit := 5

	cmd := &cobra.Command{
		Use:     "today",
		Aliases: []string{"dash", "dashboard"},
		Short:   "Show today's schedule, the task widget and habit progress.",
		Example: `
planner today
planner today --filter=overdue --limit=10
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
			r := today.Today{
				Service: svc,
				Printer: newPrinter(s, ido.ShowID),
				JSON:    output.JSON,
				Filter:  f,
				Limit:   limit,
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", filter,
		"Widget filter: today, week, month, no-date or overdue.")
	cmd.Flags().IntVarP(&limit, "limit", "n", limit, "How many tasks the widget shows.")
	options.AddShowIDArgs(cmd, ido)
	topLevel.AddCommand(cmd)
}
