package commands

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	teaui "tableflip.dev/planner/pkg/runner/tea"
	"tableflip.dev/planner/pkg/timer"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive calendar.",
		Long: `Open the calendar with the unscheduled sidebar. d w m y switch views, h and l
page, arrows move, space picks a task up and enter drops it, u drops it onto
the sidebar, p starts the timer, T toggles the theme and q quits.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, s, err := openService(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			// Save errors come back to the model and show in the footer.
			svc.Notify = func(err error) { log.WithError(err).Debug("ui: save failed") }
			tm, err := themeManager(s)
			if err != nil {
				return output.HandleError(err)
			}
			go func() {
				if err := svc.Follow(cmd.Context()); err != nil {
					log.WithError(err).Debug("ui: not following store changes")
				}
			}()
			return teaui.Run(cmd.Context(), svc, teaui.Options{
				Theme:    tm,
				Timer:    timer.New(s.Timer.Minutes),
				MonthCap: s.Calendar.MonthCap,
			})
		},
	}
	topLevel.AddCommand(cmd)
}
