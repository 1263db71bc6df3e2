package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/config"
	"tableflip.dev/planner/pkg/runner/countdown"
	"tableflip.dev/planner/pkg/timer"
	"tableflip.dev/planner/pkg/timeutil"
)

func addTimer(topLevel *cobra.Command) {
	minutes := 0
	duration := ""

	cmd := &cobra.Command{
		Use:     "timer",
		Aliases: []string{"focus", "pomodoro"},
		Short:   "Run a countdown. Type p to pause or resume, r to reset, q to quit.",
		Example: `
planner timer
planner timer --minutes=50
planner timer --duration=1h30m
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := config.Load()
			if err != nil {
				return output.HandleError(err)
			}
			m := s.Timer.Minutes
			switch {
			case cmd.Flags().Changed("duration"):
				d, _, err := timeutil.ParseDuration(duration)
				if err != nil {
					return output.HandleError(err)
				}
				m = int((d + time.Minute - 1) / time.Minute)
			case cmd.Flags().Changed("minutes"):
				m = minutes
			}
			r := countdown.Countdown{
				Timer:   timer.New(m),
				Printer: newPrinter(s, false),
				Input:   cmd.InOrStdin(),
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0,
		"Length in minutes, 1 to 999; defaults to timer.minutes.")
	cmd.Flags().StringVarP(&duration, "duration", "d", "",
		`Length as a duration, example: --duration=25m. Rounded up to whole minutes.`)
	cmd.MarkFlagsMutuallyExclusive("minutes", "duration")
	topLevel.AddCommand(cmd)
}
