package commands

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/habit"
	"tableflip.dev/planner/pkg/timeutil"
)

func addHabit(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "habit",
		Aliases: []string{"habits", "h"},
		Short:   "Track daily habits month by month.",
		Example: `
planner habit add Read 20 pages
planner habit toggle <id> --on=yesterday
planner habit progress
`,
	}

	addHabitAdd(cmd)
	addHabitList(cmd)
	addHabitToggle(cmd)
	addHabitRename(cmd)
	addHabitRemove(cmd)
	addHabitCopy(cmd)
	addHabitProgress(cmd)

	topLevel.AddCommand(cmd)
}

func addHabitAdd(parent *cobra.Command) {
	mo := &options.MonthOptions{}

	cmd := &cobra.Command{
		Use:   "add NAME...",
		Short: "Add a habit to a month.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := mo.Key(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			svc, s, err := openService(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			r := habit.Add{
				Service: svc,
				Printer: newPrinter(s, true),
				JSON:    output.JSON,
				Name:    strings.Join(args, " "),
				Month:   month,
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddMonthArgs(cmd, mo)
	parent.AddCommand(cmd)
}

func addHabitList(parent *cobra.Command) {
	mo := &options.MonthOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the month's habit grid.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			month, err := mo.Key(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			svc, s, err := openService(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			r := habit.List{
				Service: svc,
				Printer: newPrinter(s, true),
				JSON:    output.JSON,
				Month:   month,
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddMonthArgs(cmd, mo)
	parent.AddCommand(cmd)
}

func addHabitToggle(parent *cobra.Command) {
	oo := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "toggle ID",
		Short: "Flip a habit's completion for a day.",
		Example: `
planner habit toggle <id>
planner habit toggle <id> --on=2024-3-2
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if oo.OnString == "" {
				oo.OnString = "today"
			}
			date, err := oo.Date(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			svc, s, err := openService(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			r := habit.Toggle{
				Service: svc,
				Printer: newPrinter(s, false),
				JSON:    output.JSON,
				ID:      args[0],
				Date:    date,
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, oo)
	parent.AddCommand(cmd)
}

func addHabitRename(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "rename ID NAME...",
		Short: "Rename a habit.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, s, err := openService(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			r := habit.Rename{
				Service: svc,
				Printer: newPrinter(s, false),
				JSON:    output.JSON,
				ID:      args[0],
				Name:    strings.Join(args[1:], " "),
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}
	parent.AddCommand(cmd)
}

func addHabitRemove(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm ID...",
		Aliases: []string{"delete"},
		Short:   "Delete habits.",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, s, err := openService(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			r := habit.Remove{
				Service: svc,
				Printer: newPrinter(s, false),
				IDs:     args,
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}
	parent.AddCommand(cmd)
}

func addHabitCopy(parent *cobra.Command) {
	from := &options.MonthOptions{}
	to := ""

	cmd := &cobra.Command{
		Use:   "copy",
		Short: options.Wrap80("Start a month with fresh copies of another month's habits. Defaults to this month into the next."),
		Example: `
planner habit copy
planner habit copy --month=2024-02 --to=2024-03
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()
			src, err := from.Key(now)
			if err != nil {
				return output.HandleError(err)
			}
			dst, err := (&options.MonthOptions{Month: to}).Key(timeutil.AddMonths(now, 1))
			if err != nil {
				return output.HandleError(err)
			}
			svc, s, err := openService(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			r := habit.Copy{
				Service: svc,
				Printer: newPrinter(s, false),
				JSON:    output.JSON,
				From:    src,
				To:      dst,
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddMonthArgs(cmd, from)
	cmd.Flags().StringVar(&to, "to", "", "Target month as YYYY-MM; defaults to next month.")
	parent.AddCommand(cmd)
}

func addHabitProgress(parent *cobra.Command) {
	mo := &options.MonthOptions{}

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Chart each habit's completion for a month.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			month, err := mo.Key(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			svc, s, err := openService(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			r := habit.Progress{
				Service: svc,
				Printer: newPrinter(s, false),
				JSON:    output.JSON,
				Month:   month,
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddMonthArgs(cmd, mo)
	parent.AddCommand(cmd)
}
