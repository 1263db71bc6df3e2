package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/dnd"
	"tableflip.dev/planner/pkg/runner/cal"
)

func addCal(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	ido := &options.IDOptions{}
	prev, next := 0, 0
	sidebar := false

	cmd := &cobra.Command{
		Use:       "cal [day|week|month|year]",
		Aliases:   []string{"calendar"},
		Short:     "Show the calendar.",
		ValidArgs: []string{"day", "week", "month", "year"},
		Example: `
planner cal
planner cal week --next=1
planner cal day --on=tomorrow
planner cal year --sidebar
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := ""
			if len(args) == 1 {
				raw = args[0]
			}
			g, err := calendar.ParseGranularity(raw)
			if err != nil {
				return output.HandleError(err)
			}
			on, err := oo.GetOn(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			return output.HandleError(showCal(cmd, cal.Show{
				Granularity: g,
				On:          on,
				Step:        next - prev,
				Sidebar:     sidebar,
			}, ido.ShowID))
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddShowIDArgs(cmd, ido)
	cmd.Flags().IntVar(&prev, "prev", 0, "Step this many periods back.")
	cmd.Flags().IntVar(&next, "next", 0, "Step this many periods forward.")
	cmd.Flags().BoolVar(&sidebar, "sidebar", false, "Also list unscheduled tasks.")

	addCalDrill(cmd)
	addCalDrop(cmd)

	topLevel.AddCommand(cmd)
}

func showCal(cmd *cobra.Command, r cal.Show, showID bool) error {
	svc, s, err := openService(cmd.Context())
	if err != nil {
		return err
	}
	r.Service = svc
	r.Printer = newPrinter(s, showID)
	r.JSON = output.JSON
	r.MonthCap = s.Calendar.MonthCap
	return r.Do(cmd.Context())
}

func addCalDrill(parent *cobra.Command) {
	oo := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "drill MONTH",
		Short: "Open a month of the year view.",
		Example: `
planner cal drill jul
planner cal drill 12 --on=2025-1-1
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := parseMonth(args[0])
			if err != nil {
				return output.HandleError(err)
			}
			on, err := oo.GetOn(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			return output.HandleError(showCal(cmd, cal.Show{
				Granularity: calendar.GranularityYear,
				On:          on,
				Drill:       month,
			}, false))
		},
	}

	options.AddOnArgs(cmd, oo)
	parent.AddCommand(cmd)
}

// parseMonth reads 1-12 or an English month name or abbreviation.
func parseMonth(raw string) (time.Month, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("month %d out of range", n)
		}
		return time.Month(n), nil
	}
	lower := strings.ToLower(raw)
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if lower == name || (len(lower) >= 3 && strings.HasPrefix(name, lower)) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown month %q", raw)
}

func addCalDrop(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "drop ID TARGET",
		Short: options.Wrap80("Move a task the way dragging it in the calendar would."),
		Long: options.Wrap80(`TARGET is a day (2024-03-20), a time slot on a day (2024-03-20@14:30)
or "unscheduled". Dropping on a day keeps the task's time of day; dropping on a
slot sets it; dropping on unscheduled clears both.`),
		Example: `
planner cal drop <id> 2024-03-20
planner cal drop <id> 2024-03-20@14:30
planner cal drop <id> unscheduled
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := dnd.ParseTarget(args[1])
			if err != nil {
				return output.HandleError(err)
			}
			svc, s, err := openService(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			r := cal.Drop{
				Service: svc,
				Printer: newPrinter(s, true),
				JSON:    output.JSON,
				ID:      args[0],
				Target:  target,
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}
	parent.AddCommand(cmd)
}
